package topics_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/arthur-debert/dotlink/pkg/cobrax/topics"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"topics/ownership.md":    {Data: []byte("# Ownership\n\nForeign links are never touched.\n")},
		"topics/sourceable.txt":  {Data: []byte("Shell rc files are merged.\n")},
		"topics/option-force.md": {Data: []byte("# --force\n")},
		"topics/notes.json":      {Data: []byte("{}")},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		opts       topics.Options
		wantTopics []string
	}{
		{
			name:       "default extensions",
			wantTopics: []string{"option-force", "ownership", "sourceable"},
		},
		{
			name:       "markdown only",
			opts:       topics.Options{Extensions: []string{".md"}},
			wantTopics: []string{"option-force", "ownership"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := topics.New(topicFS(), tt.opts)
			require.NoError(t, tm.Load())
			assert.Equal(t, tt.wantTopics, tm.ListTopics())
		})
	}
}

func TestGetTopic(t *testing.T) {
	tm := topics.New(topicFS(), topics.Options{})
	require.NoError(t, tm.Load())

	topic, ok := tm.GetTopic("ownership")
	require.True(t, ok)
	assert.Equal(t, "topics/ownership.md", topic.FilePath)

	for _, name := range []string{"--force", "-force", "force", "option-force"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-force", topic.Name)
	}

	_, ok = tm.GetTopic("missing")
	assert.False(t, ok)
}

func TestNilFS(t *testing.T) {
	tm := topics.New(nil, topics.Options{})
	require.NoError(t, tm.Load())
	assert.Empty(t, tm.ListTopics())

	var buf bytes.Buffer
	require.NoError(t, tm.WriteIndex(&buf, "dotlink"))
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "dotlink", Short: "root"}
	root.AddCommand(&cobra.Command{Use: "install", Short: "Install links", Run: func(*cobra.Command, []string) {}})

	_, err := topics.Initialize(root, topicFS(), topics.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestHelpCommand(t *testing.T) {
	t.Run("topic", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "sourceable"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "Shell rc files are merged.\n", out.String())
	})

	t.Run("index", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Available help topics:\n  ownership\n  sourceable\n")
		assert.Contains(t, out.String(), "Option topics:\n  --force\n")
		assert.Contains(t, out.String(), "Use 'dotlink help <topic>'")
	})

	t.Run("command", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "install"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Install links")
	})

	t.Run("unknown", func(t *testing.T) {
		root, _ := newRoot(t)
		root.SilenceUsage = true
		root.SetArgs([]string{"help", "nothing-here"})
		err := root.Execute()
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestPlainRendererPassesThrough(t *testing.T) {
	r := &topics.PlainRenderer{}
	assert.Equal(t, "# x", r.Render("# x", ".md"))

	g := topics.NewGlamourRenderer()
	assert.Equal(t, "plain text", g.Render("plain text", ".txt"))
}
