package tferrors

// sentinel is a comparable target for errors.Is. Failures match the
// sentinel of their kind and of their category.
type sentinel struct {
	kind Kind
	raw  bool
}

func (s *sentinel) Error() string {
	if s.raw {
		return "terraform command execution failed"
	}
	return s.kind.Description()
}

// Sentinels for errors.Is. ErrState matches every state subcommand failure.
var (
	ErrInit      error = &sentinel{kind: KindInit}
	ErrPlan      error = &sentinel{kind: KindPlan}
	ErrApply     error = &sentinel{kind: KindApply}
	ErrShow      error = &sentinel{kind: KindShow}
	ErrDestroy   error = &sentinel{kind: KindDestroy}
	ErrOutput    error = &sentinel{kind: KindOutput}
	ErrWorkspace error = &sentinel{kind: KindWorkspace}
	ErrValidate  error = &sentinel{kind: KindValidate}
	ErrVersion   error = &sentinel{kind: KindVersion}
	ErrJSONParse error = &sentinel{kind: KindJSONParse}
	ErrGet       error = &sentinel{kind: KindGet}
	ErrLogin     error = &sentinel{kind: KindLogin}
	ErrLogout    error = &sentinel{kind: KindLogout}
	ErrFmt       error = &sentinel{kind: KindFmt}
	ErrGraph     error = &sentinel{kind: KindGraph}
	ErrImport    error = &sentinel{kind: KindImport}
	ErrRefresh   error = &sentinel{kind: KindRefresh}
	ErrTaint     error = &sentinel{kind: KindTaint}
	ErrUntaint   error = &sentinel{kind: KindUntaint}

	ErrState                error = &sentinel{kind: KindState}
	ErrStateList            error = &sentinel{kind: KindStateList}
	ErrStateMv              error = &sentinel{kind: KindStateMv}
	ErrStateRm              error = &sentinel{kind: KindStateRm}
	ErrStatePull            error = &sentinel{kind: KindStatePull}
	ErrStateReplaceProvider error = &sentinel{kind: KindStateReplaceProvider}

	// ErrRawCommand matches every RawCommandError.
	ErrRawCommand error = &sentinel{raw: true}
)

// Sentinel returns the errors.Is target for kind, or nil for unknown kinds.
func Sentinel(kind Kind) error {
	for _, s := range []error{
		ErrInit, ErrPlan, ErrApply, ErrShow, ErrDestroy, ErrOutput,
		ErrWorkspace, ErrValidate, ErrVersion, ErrJSONParse, ErrGet,
		ErrLogin, ErrLogout, ErrFmt, ErrGraph, ErrImport, ErrRefresh,
		ErrTaint, ErrUntaint, ErrState, ErrStateList, ErrStateMv,
		ErrStateRm, ErrStatePull, ErrStateReplaceProvider,
	} {
		if s.(*sentinel).kind == kind {
			return s
		}
	}
	return nil
}
