package json_test

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/install"
	"github.com/arthur-debert/dotlink/pkg/ui/display"
	"github.com/arthur-debert/dotlink/pkg/ui/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderStatusReport(t *testing.T) {
	var buf bytes.Buffer
	r, err := json.New(&buf)
	require.NoError(t, err)

	report := display.NewStatusReport("/dots", "", []install.PlanEntry{
		{Target: "~/.vimrc", State: "absent", Action: "create symlink"},
	})
	require.NoError(t, r.RenderResult(report))

	var decoded map[string]interface{}
	require.NoError(t, stdjson.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/dots", decoded["root"])
	assert.NotContains(t, decoded, "config")
	assert.EqualValues(t, 1, decoded["pending"])

	entries := decoded["entries"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, "~/.vimrc", entry["target"])
	assert.Equal(t, "pending", entry["status"])
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"coded", errors.New(errors.ErrConfigParse, "bad toml").WithDetail("path", "/dots/dotlink.toml"), "CONFIG_PARSE"},
		{"plain", fmt.Errorf("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r, err := json.New(&buf)
			require.NoError(t, err)
			require.NoError(t, r.RenderError(tt.err))

			var decoded struct {
				Error   string            `json:"error"`
				Code    string            `json:"code"`
				Details map[string]string `json:"details"`
			}
			require.NoError(t, stdjson.Unmarshal(buf.Bytes(), &decoded))
			assert.Equal(t, tt.err.Error(), decoded.Error)
			assert.Equal(t, tt.wantCode, decoded.Code)
			if tt.wantCode != "" {
				assert.Equal(t, "/dots/dotlink.toml", decoded.Details["path"])
			} else {
				assert.Empty(t, decoded.Details)
			}
		})
	}
}

func TestRenderMessage(t *testing.T) {
	var buf bytes.Buffer
	r, err := json.New(&buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderMessage("done"))
	assert.JSONEq(t, `{"message":"done"}`, buf.String())
}
