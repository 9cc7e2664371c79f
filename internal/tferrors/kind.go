package tferrors

import "strings"

// Kind identifies which terraform subcommand family a failure belongs to.
// The set of kinds is closed; use ParseKind to convert user input.
type Kind string

const (
	KindInit      Kind = "init"
	KindPlan      Kind = "plan"
	KindApply     Kind = "apply"
	KindShow      Kind = "show"
	KindDestroy   Kind = "destroy"
	KindOutput    Kind = "output"
	KindWorkspace Kind = "workspace"
	KindValidate  Kind = "validate"
	KindVersion   Kind = "version"
	KindJSONParse Kind = "json"
	KindGet       Kind = "get"
	KindLogin     Kind = "login"
	KindLogout    Kind = "logout"
	KindFmt       Kind = "fmt"
	KindGraph     Kind = "graph"
	KindImport    Kind = "import"
	KindRefresh   Kind = "refresh"
	KindTaint     Kind = "taint"
	KindUntaint   Kind = "untaint"

	// KindState is both a leaf kind ("terraform state" itself failed) and
	// the category of every state subcommand below.
	KindState                Kind = "state"
	KindStateList            Kind = "state list"
	KindStateMv              Kind = "state mv"
	KindStateRm              Kind = "state rm"
	KindStatePull            Kind = "state pull"
	KindStateReplaceProvider Kind = "state replace-provider"
)

type kindInfo struct {
	ident       string
	category    Kind
	description string
}

// kindTable maps every leaf kind to its parent category. Kinds outside the
// state family are their own category.
var kindTable = map[Kind]kindInfo{
	KindInit:      {"Init", KindInit, "'terraform init' failed"},
	KindPlan:      {"Plan", KindPlan, "'terraform plan' failed"},
	KindApply:     {"Apply", KindApply, "'terraform apply' failed"},
	KindShow:      {"Show", KindShow, "'terraform show' failed"},
	KindDestroy:   {"Destroy", KindDestroy, "'terraform destroy' failed"},
	KindOutput:    {"Output", KindOutput, "'terraform output' failed"},
	KindWorkspace: {"Workspace", KindWorkspace, "a workspace operation failed"},
	KindValidate:  {"Validate", KindValidate, "'terraform validate' failed"},
	KindVersion:   {"Version", KindVersion, "the terraform version could not be determined or is unsupported"},
	KindJSONParse: {"JsonParse", KindJSONParse, "JSON output from terraform could not be parsed"},
	KindGet:       {"Get", KindGet, "'terraform get' failed"},
	KindLogin:     {"Login", KindLogin, "'terraform login' failed"},
	KindLogout:    {"Logout", KindLogout, "'terraform logout' failed"},
	KindFmt:       {"Fmt", KindFmt, "'terraform fmt' failed"},
	KindGraph:     {"Graph", KindGraph, "'terraform graph' failed"},
	KindImport:    {"Import", KindImport, "'terraform import' failed"},
	KindRefresh:   {"Refresh", KindRefresh, "'terraform refresh' failed"},
	KindTaint:     {"Taint", KindTaint, "'terraform taint' failed"},
	KindUntaint:   {"Untaint", KindUntaint, "'terraform untaint' failed"},

	KindState:                {"State", KindState, "'terraform state' failed"},
	KindStateList:            {"StateList", KindState, "'terraform state list' failed"},
	KindStateMv:              {"StateMv", KindState, "'terraform state mv' failed"},
	KindStateRm:              {"StateRm", KindState, "'terraform state rm' failed"},
	KindStatePull:            {"StatePull", KindState, "'terraform state pull' failed"},
	KindStateReplaceProvider: {"StateReplaceProvider", KindState, "'terraform state replace-provider' failed"},
}

// kindOrder is the display order used by Kinds.
var kindOrder = []Kind{
	KindInit, KindPlan, KindApply, KindShow, KindDestroy, KindOutput,
	KindWorkspace, KindValidate, KindVersion, KindJSONParse, KindGet,
	KindLogin, KindLogout, KindFmt, KindGraph, KindImport, KindRefresh,
	KindTaint, KindUntaint,
	KindState, KindStateList, KindStateMv, KindStateRm, KindStatePull,
	KindStateReplaceProvider,
}

// Kinds returns every known kind in display order.
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// Valid reports whether k is a member of the taxonomy.
func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

// String returns the subcommand form of the kind, e.g. "state mv".
func (k Kind) String() string {
	return string(k)
}

// Ident returns the CamelCase identifier of the kind, e.g. "StateMv".
func (k Kind) Ident() string {
	if info, ok := kindTable[k]; ok {
		return info.ident
	}
	return ""
}

// Category returns the parent category of k. For kinds outside the state
// family the category is the kind itself. Unknown kinds return "".
func (k Kind) Category() Kind {
	if info, ok := kindTable[k]; ok {
		return info.category
	}
	return ""
}

// InCategory reports whether k is c or a child of c. Siblings never
// match: KindStateMv is not in KindStateRm.
func (k Kind) InCategory(c Kind) bool {
	cat := k.Category()
	return cat != "" && (k == c || cat == c)
}

// Description returns a one-line description of the failure kind.
func (k Kind) Description() string {
	if info, ok := kindTable[k]; ok {
		return info.description
	}
	return ""
}

// ParseKind converts user input into a Kind. It accepts the subcommand form
// ("state mv"), the CamelCase identifier ("StateMv") and separator variants
// ("state-mv", "state_mv"), case-insensitively.
func ParseKind(s string) (Kind, error) {
	want := normalizeKind(s)
	if want != "" {
		for _, k := range kindOrder {
			if normalizeKind(string(k)) == want || strings.ToLower(kindTable[k].ident) == want {
				return k, nil
			}
		}
	}
	return "", UnknownKind(s)
}

func normalizeKind(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "terraform ")
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
