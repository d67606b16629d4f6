package prompt_test

import (
	"testing"

	"github.com/arthur-debert/dotlink/pkg/ui/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticConfirm(t *testing.T) {
	p := prompt.Static{Answers: map[string]string{"proceed?": "yes", "abort?": "n"}}

	tests := []struct {
		question string
		def      bool
		expected bool
	}{
		{"proceed?", false, true},
		{"abort?", true, false},
		{"unasked?", true, true},
		{"unasked?", false, false},
	}

	for _, tt := range tests {
		got, err := p.Confirm(tt.question, tt.def)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, tt.question)
	}
}

func TestStaticInputAndSelect(t *testing.T) {
	p := prompt.Static{Answers: map[string]string{"name": "dots", "format": "yaml", "color": "purple"}}

	got, err := p.Input("name", "x")
	require.NoError(t, err)
	assert.Equal(t, "dots", got)

	got, err = p.Input("other", "x")
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	got, err = p.Select("format", []string{"toml", "yaml"}, "toml")
	require.NoError(t, err)
	assert.Equal(t, "yaml", got)

	got, err = p.Select("color", []string{"red", "blue"}, "red")
	require.NoError(t, err)
	assert.Equal(t, "red", got)
}

func TestNewUnderTestIsStatic(t *testing.T) {
	// go test never runs with a terminal on both stdin and stdout
	if prompt.Interactive() {
		t.Skip("running on a terminal")
	}
	assert.IsType(t, prompt.Static{}, prompt.New())
}

func TestStaticMultiSelect(t *testing.T) {
	options := []string{".zshrc", ".bashrc", ".profile"}
	p := prompt.Static{Answers: map[string]string{"files": ".bashrc, .nope ,.zshrc", "none": ""}}

	got, err := p.MultiSelect("files", options, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{".bashrc", ".zshrc"}, got)

	got, err = p.MultiSelect("none", options, options)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = p.MultiSelect("unasked", options, options[:1])
	require.NoError(t, err)
	assert.Equal(t, []string{".zshrc"}, got)
}
