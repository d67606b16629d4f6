package sourceable

import (
	"fmt"
	"strings"
	"unicode"
)

// HeaderWindow is the largest line index at which the managed directive
// still counts as being at the top of the file
const HeaderWindow = 5

const (
	markerComment   = "# Dotfiles configuration"
	preambleSources = "# This file sources the shared dotfiles configuration"
	preambleAdd     = "# Add your customizations below after this section"
	delimiterRule   = "# ============================================"
	delimiterTitle  = "# User customizations (preserved from original file)"

	frameworkBootstrap = "oh-my-zsh.sh"
)

// completionLabels names the tools whose guard comment reads better than
// the bare command name
var completionLabels = map[string]string{
	"scw": "Scaleway CLI",
}

// DirectiveLine returns the managed source directive for an absolute path
func DirectiveLine(sourceAbs string) string {
	return `source "` + sourceAbs + `"`
}

// isDirective matches the quoted directive, or the unquoted one when the
// path ends the line or is followed by whitespace or ';'
func isDirective(line, sourceAbs string) bool {
	if strings.Contains(line, DirectiveLine(sourceAbs)) {
		return true
	}

	unquoted := "source " + sourceAbs
	rest := line
	for {
		i := strings.Index(rest, unquoted)
		if i < 0 {
			return false
		}
		rest = rest[i+len(unquoted):]
		if rest == "" || rest[0] == ';' || unicode.IsSpace(rune(rest[0])) {
			return true
		}
	}
}

// HasDirective reports whether content sources sourceAbs, quoted or not
func HasDirective(content, sourceAbs string) bool {
	return DirectiveIndex(content, sourceAbs) >= 0
}

// DirectiveIndex returns the zero-based line index of the first managed
// directive in content, or -1
func DirectiveIndex(content, sourceAbs string) int {
	for i, line := range strings.Split(content, "\n") {
		if isDirective(line, sourceAbs) {
			return i
		}
	}
	return -1
}

func isMarker(line, sourceAbs string) bool {
	if isDirective(line, sourceAbs) || strings.Contains(line, markerComment) {
		return true
	}
	switch strings.TrimSpace(line) {
	case preambleSources, preambleAdd, delimiterRule, delimiterTitle:
		return true
	}
	return false
}

// ExtractUserCustomizations returns the part of content that was not
// written by dotlink. Marker lines are dropped together with the blank
// lines that follow them; every other line is kept in order. The result is
// trimmed and passed through Cleanup.
func ExtractUserCustomizations(content, sourceAbs string, completionTools []string) string {
	extracted, _ := extract(content, sourceAbs, completionTools)
	return extracted
}

func extract(content, sourceAbs string, completionTools []string) (string, bool) {
	var kept []string
	inManaged := false

	for _, line := range strings.Split(content, "\n") {
		if isMarker(line, sourceAbs) {
			inManaged = true
			continue
		}
		if inManaged && strings.TrimSpace(line) == "" {
			continue
		}
		inManaged = false
		kept = append(kept, line)
	}

	user := strings.TrimSpace(strings.Join(kept, "\n"))
	if user == "" {
		return "", false
	}
	return cleanup(user, completionTools)
}

// Cleanup rewrites shell snippets that third-party installers append
// unguarded:
//
//   - eval "$(<tool> autocomplete ...)" without a nearby `command -v <tool>`
//     is wrapped in an `if command -v <tool>` block
//   - an unguarded `source .../oh-my-zsh.sh` is dropped
//
// Every other line passes through unchanged. Cleanup is idempotent.
func Cleanup(content string, completionTools []string) string {
	cleaned, _ := cleanup(content, completionTools)
	return cleaned
}

func cleanup(content string, completionTools []string) (string, bool) {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	changed := false

	for i, line := range lines {
		if tool, ok := unguardedCompletion(lines, i, completionTools); ok {
			out = append(out,
				fmt.Sprintf("# %s autocomplete (if installed)", completionLabel(tool)),
				fmt.Sprintf("if command -v %s &> /dev/null; then", tool),
				"    "+strings.TrimSpace(line),
				"fi",
			)
			changed = true
			continue
		}

		if unguardedFramework(line) {
			changed = true
			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n"), changed
}

// unguardedCompletion reports whether lines[i] evals a completion script
// with no `command -v <tool>` in lines [i-2, i+5)
func unguardedCompletion(lines []string, i int, tools []string) (string, bool) {
	line := lines[i]
	if !strings.Contains(line, "eval") {
		return "", false
	}

	for _, tool := range tools {
		guard := "command -v " + tool
		if !strings.Contains(line, tool+" autocomplete") || strings.Contains(line, guard) {
			continue
		}

		start := max(0, i-2)
		end := min(len(lines), i+5)
		guarded := false
		for _, near := range lines[start:end] {
			if strings.Contains(near, guard) {
				guarded = true
				break
			}
		}
		if !guarded {
			return tool, true
		}
	}
	return "", false
}

func unguardedFramework(line string) bool {
	return strings.Contains(line, "source") &&
		strings.Contains(line, frameworkBootstrap) &&
		!strings.Contains(line, "if") &&
		!strings.Contains(line, "[[ -f")
}

func completionLabel(tool string) string {
	if label, ok := completionLabels[tool]; ok {
		return label
	}
	return tool
}

// Compose builds a sourceable file: the managed header with the directive,
// then the preserved customizations block when user is non-empty
func Compose(sourceAbs, user string) string {
	var b strings.Builder
	b.WriteString(markerComment + "\n")
	b.WriteString(preambleSources + "\n")
	b.WriteString(preambleAdd + "\n")
	b.WriteString("\n")
	b.WriteString(DirectiveLine(sourceAbs) + "\n")

	if user != "" {
		b.WriteString("\n")
		b.WriteString(delimiterRule + "\n")
		b.WriteString(delimiterTitle + "\n")
		b.WriteString(delimiterRule + "\n")
		b.WriteString(user + "\n")
	}
	return b.String()
}

// meaningfulLines counts lines that are neither blank nor comments
func meaningfulLines(content string) int {
	n := 0
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			n++
		}
	}
	return n
}
