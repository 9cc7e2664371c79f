package tferrors

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var (
	// Color functions with auto-detection for terminal support.
	// These fall back gracefully when colors are unavailable.
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fieldLabel  = color.New(color.FgYellow, color.Bold).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText   = color.New(color.FgCyan).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// FormatFailure renders a Failure or RawCommandError for the terminal.
// Without colors the result is identical to DisplayString; with colors only
// the labels are decorated, the field order and content are unchanged.
func FormatFailure(err error, useColors bool) string {
	if !useColors {
		return DisplayString(err)
	}
	if f := AsFailure(err); f != nil {
		return formatFailureColor(f)
	}
	if r := AsRawCommandError(err); r != nil {
		return formatRawColor(r)
	}
	return DisplayString(err)
}

// FprintFailure writes FormatFailure followed by a newline to w.
func FprintFailure(w io.Writer, err error, useColors bool) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, FormatFailure(err, useColors))
}

func formatFailureColor(f *Failure) string {
	var sb strings.Builder
	sb.WriteString(errorMsg(f.message))
	if f.command != "" {
		sb.WriteString("\n")
		sb.WriteString(fieldLabel("Command:"))
		sb.WriteString(" ")
		sb.WriteString(f.command)
	}
	if f.timed {
		sb.WriteString("\n")
		sb.WriteString(fieldLabel("Duration:"))
		fmt.Fprintf(&sb, " %.4fs", f.duration)
	}
	if f.stderr != "" {
		sb.WriteString("\n")
		sb.WriteString(fieldLabel("Details:"))
		sb.WriteString("\n")
		sb.WriteString(f.stderr)
	}
	return sb.String()
}

func formatRawColor(r *RawCommandError) string {
	var sb strings.Builder
	sb.WriteString(fieldLabel("Code:"))
	sb.WriteString(" ")
	sb.WriteString(errorMsg(strconv.Itoa(r.exitCode)))
	if r.stdout != "" {
		sb.WriteString("\n")
		sb.WriteString(fieldLabel("Stdout:"))
		sb.WriteString("\n")
		sb.WriteString(r.stdout)
	}
	sb.WriteString("\n")
	sb.WriteString(fieldLabel("Stderr:"))
	sb.WriteString("\n")
	sb.WriteString(r.stderr)
	sb.WriteString("\n")
	sb.WriteString(fieldLabel("Details:"))
	sb.WriteString("\n")
	sb.WriteString(r.detail)
	return sb.String()
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, false)
}

func formatError(err *CLIError, useColors bool) string {
	var sb strings.Builder

	if useColors {
		sb.WriteString(errorLabel("Error"))
		sb.WriteString(" [")
		sb.WriteString(categoryFmt(err.Category.String()))
		sb.WriteString("]: ")
		sb.WriteString(errorMsg(err.Message))
	} else {
		sb.WriteString("Error [")
		sb.WriteString(err.Category.String())
		sb.WriteString("]: ")
		sb.WriteString(err.Message)
	}
	sb.WriteString("\n")

	if err.Usage != "" {
		sb.WriteString("\n")
		if useColors {
			sb.WriteString(usageLabel("Usage: "))
			sb.WriteString(usageText(err.Usage))
		} else {
			sb.WriteString("Usage: ")
			sb.WriteString(err.Usage)
		}
		sb.WriteString("\n")
	}

	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		if useColors {
			sb.WriteString(fixLabel("To fix this:"))
		} else {
			sb.WriteString("To fix this:")
		}
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			if useColors {
				sb.WriteString("  ")
				sb.WriteString(bullet("•"))
				sb.WriteString(" ")
			} else {
				sb.WriteString("  • ")
			}
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError, useColors bool) {
	if err == nil {
		return
	}
	fmt.Fprint(w, formatError(err, useColors))
}
