package sourceable_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/handlers/sourceable"
	"github.com/stretchr/testify/assert"
)

const abs = "/home/u/dotfiles/zsh/zshrc"

var tools = []string{"scw"}

func TestDirectiveIndex(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty", content: "", want: -1},
		{name: "quoted", content: "# x\nsource \"" + abs + "\"\n", want: 1},
		{name: "unquoted", content: "a\nb\nsource " + abs + "\n", want: 2},
		{name: "other_source", content: "source ~/.aliases\n", want: -1},
		{name: "longer_path", content: "source " + abs + ".local\n", want: -1},
		{name: "quoted_longer_path", content: "source \"" + abs + ".local\"\n", want: -1},
		{name: "followed_by_semicolon", content: "source " + abs + "; echo ok\n", want: 0},
		{name: "trailing_comment", content: "x\nsource " + abs + " # shared\n", want: 1},
		{name: "sibling_then_directive", content: "source " + abs + ".local; source " + abs + "\n", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sourceable.DirectiveIndex(tt.content, abs))
			assert.Equal(t, tt.want >= 0, sourceable.HasDirective(tt.content, abs))
		})
	}
}

func TestComposeWithoutCustomizations(t *testing.T) {
	got := sourceable.Compose(abs, "")

	expected := "# Dotfiles configuration\n" +
		"# This file sources the shared dotfiles configuration\n" +
		"# Add your customizations below after this section\n" +
		"\n" +
		"source \"" + abs + "\"\n"
	assert.Equal(t, expected, got)
	assert.LessOrEqual(t, sourceable.DirectiveIndex(got, abs), sourceable.HeaderWindow)
}

func TestComposeWithCustomizations(t *testing.T) {
	got := sourceable.Compose(abs, "export FOO=bar")

	assert.True(t, strings.HasPrefix(got, "# Dotfiles configuration\n"))
	assert.Contains(t, got, "# User customizations (preserved from original file)\n")
	assert.True(t, strings.HasSuffix(got, "# ============================================\nexport FOO=bar\n"))
	assert.Equal(t, 4, sourceable.DirectiveIndex(got, abs))
}

func TestExtractUserCustomizations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "no_markers",
			content: "export FOO=bar\nalias ll='ls -l'\n",
			want:    "export FOO=bar\nalias ll='ls -l'",
		},
		{
			name:    "before_and_after_marker",
			content: "A1\nA2\nsource \"" + abs + "\"\n\n\nB1\n\nB2\n",
			want:    "A1\nA2\nB1\n\nB2",
		},
		{
			name:    "unquoted_directive",
			content: "A\nsource " + abs + "\n\nB\n",
			want:    "A\nB",
		},
		{
			name:    "sibling_file_is_kept",
			content: "source " + abs + "\nsource " + abs + ".local\n",
			want:    "source " + abs + ".local",
		},
		{
			name:    "composed_file_round_trip",
			content: sourceable.Compose(abs, "export FOO=bar\n\nalias g=git"),
			want:    "export FOO=bar\n\nalias g=git",
		},
		{
			name:    "legacy_header",
			content: "# Dotfiles configuration - loaded first\nsource \"" + abs + "\"\n\n# User customizations (preserved from original file)\nexport X=1\n",
			want:    "export X=1",
		},
		{
			name:    "only_managed",
			content: sourceable.Compose(abs, ""),
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sourceable.ExtractUserCustomizations(tt.content, abs, tools)
			assert.Equal(t, tt.want, got)
			assert.False(t, sourceable.HasDirective(got, abs))
			assert.NotContains(t, got, "# Dotfiles configuration")
		})
	}
}

func TestExtractAppliesCleanup(t *testing.T) {
	content := "source \"" + abs + "\"\n\neval \"$(scw autocomplete script shell=zsh)\"\n"

	got := sourceable.ExtractUserCustomizations(content, abs, tools)

	assert.Equal(t, "# Scaleway CLI autocomplete (if installed)\n"+
		"if command -v scw &> /dev/null; then\n"+
		"    eval \"$(scw autocomplete script shell=zsh)\"\n"+
		"fi", got)
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		name    string
		content string
		tools   []string
		want    string
	}{
		{
			name:    "plain_lines_unchanged",
			content: "export A=1\n\nalias x=y",
			tools:   tools,
			want:    "export A=1\n\nalias x=y",
		},
		{
			name:    "unguarded_completion",
			content: "export A=1\n  eval \"$(scw autocomplete script shell=zsh)\"\nexport B=2",
			tools:   tools,
			want: "export A=1\n" +
				"# Scaleway CLI autocomplete (if installed)\n" +
				"if command -v scw &> /dev/null; then\n" +
				"    eval \"$(scw autocomplete script shell=zsh)\"\n" +
				"fi\n" +
				"export B=2",
		},
		{
			name:    "guarded_completion",
			content: "if command -v scw &> /dev/null; then\n  eval \"$(scw autocomplete script shell=zsh)\"\nfi",
			tools:   tools,
			want:    "if command -v scw &> /dev/null; then\n  eval \"$(scw autocomplete script shell=zsh)\"\nfi",
		},
		{
			name:    "guard_after_line_within_window",
			content: "eval \"$(scw autocomplete script shell=zsh)\"\n# x\n# y\n# z\ncommand -v scw >/dev/null",
			tools:   tools,
			want:    "eval \"$(scw autocomplete script shell=zsh)\"\n# x\n# y\n# z\ncommand -v scw >/dev/null",
		},
		{
			name:    "other_tool_configured",
			content: "eval \"$(mytool autocomplete bash)\"",
			tools:   []string{"mytool"},
			want: "# mytool autocomplete (if installed)\n" +
				"if command -v mytool &> /dev/null; then\n" +
				"    eval \"$(mytool autocomplete bash)\"\n" +
				"fi",
		},
		{
			name:    "completion_tool_not_configured",
			content: "eval \"$(scw autocomplete script shell=zsh)\"",
			tools:   nil,
			want:    "eval \"$(scw autocomplete script shell=zsh)\"",
		},
		{
			name:    "unguarded_framework_dropped",
			content: "export ZSH=~/.oh-my-zsh\nsource $ZSH/oh-my-zsh.sh\nalias x=y",
			tools:   tools,
			want:    "export ZSH=~/.oh-my-zsh\nalias x=y",
		},
		{
			name:    "guarded_framework_kept",
			content: "[[ -f $ZSH/oh-my-zsh.sh ]] && source $ZSH/oh-my-zsh.sh",
			tools:   tools,
			want:    "[[ -f $ZSH/oh-my-zsh.sh ]] && source $ZSH/oh-my-zsh.sh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := sourceable.Cleanup(tt.content, tt.tools)
			assert.Equal(t, tt.want, once)
			assert.Equal(t, once, sourceable.Cleanup(once, tt.tools), "cleanup must be idempotent")
		})
	}
}
