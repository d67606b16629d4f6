package display_test

import (
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/install"
	"github.com/arthur-debert/dotlink/pkg/ui/display"
	"github.com/arthur-debert/dotlink/pkg/ui/format"
	"github.com/stretchr/testify/assert"
)

func TestNewStatusReport(t *testing.T) {
	report := display.NewStatusReport("/dots", "/dots/dotlink.toml", []install.PlanEntry{
		{Target: "~/.a", UpToDate: true},
		{Target: "~/.b", Action: "create symlink"},
		{Target: "~/.c", Code: errors.ErrOwnershipConflict},
		{Target: "~/.d", Code: errors.ErrSourceMissing},
	})

	assert.Equal(t, 1, report.UpToDate)
	assert.Equal(t, 1, report.Pending)
	assert.Equal(t, 2, report.Blocked)
	assert.Equal(t, format.StateOK, report.Entries[0].Status)
	assert.Equal(t, format.StatePending, report.Entries[1].Status)
	assert.Equal(t, format.StateBlocked, report.Entries[2].Status)
	assert.Equal(t, "~/.d", report.Entries[3].Target)
}

func TestNewInstallReport(t *testing.T) {
	summary := install.Summary{
		Links:     []install.Result{{Name: "~/.a", Success: true}, {Name: "~/.b"}},
		Succeeded: 1,
		Failed:    1,
	}

	report := display.NewInstallReport("/dots", "", summary)

	assert.Equal(t, install.StatusPartial, report.Status)
	assert.Equal(t, format.StateOK, display.ResultState(summary.Links[0]))
	assert.Equal(t, format.StateBlocked, display.ResultState(summary.Links[1]))
}
