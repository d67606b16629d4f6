// Package display holds the view models rendered by the ui renderers.
package display

import (
	"github.com/arthur-debert/dotlink/pkg/install"
	"github.com/arthur-debert/dotlink/pkg/ui/format"
)

// InstallReport is the result of `dotlink install`
type InstallReport struct {
	Root       string          `json:"root"`
	ConfigPath string          `json:"config,omitempty"`
	Status     install.Status  `json:"status"`
	Summary    install.Summary `json:"summary"`
}

// NewInstallReport wraps a run summary
func NewInstallReport(root, configPath string, summary install.Summary) *InstallReport {
	return &InstallReport{
		Root:       root,
		ConfigPath: configPath,
		Status:     summary.Status(),
		Summary:    summary,
	}
}

// StatusEntry is one link in the status view
type StatusEntry struct {
	install.PlanEntry
	Status string `json:"status"`
}

// StatusReport is the result of `dotlink status`
type StatusReport struct {
	Root       string        `json:"root"`
	ConfigPath string        `json:"config,omitempty"`
	Entries    []StatusEntry `json:"entries"`

	UpToDate int `json:"up_to_date"`
	Pending  int `json:"pending"`
	Blocked  int `json:"blocked"`
}

// NewStatusReport classifies plan entries into ok, pending and blocked
func NewStatusReport(root, configPath string, entries []install.PlanEntry) *StatusReport {
	report := &StatusReport{
		Root:       root,
		ConfigPath: configPath,
		Entries:    make([]StatusEntry, 0, len(entries)),
	}

	for _, entry := range entries {
		state := EntryState(entry)
		switch state {
		case format.StateOK:
			report.UpToDate++
		case format.StatePending:
			report.Pending++
		default:
			report.Blocked++
		}
		report.Entries = append(report.Entries, StatusEntry{PlanEntry: entry, Status: state})
	}

	return report
}

// EntryState is ok when nothing would change, pending when install would
// act and blocked when install would refuse
func EntryState(entry install.PlanEntry) string {
	switch {
	case entry.UpToDate:
		return format.StateOK
	case entry.Code != "":
		return format.StateBlocked
	default:
		return format.StatePending
	}
}

// ResultState maps an install result to ok or blocked
func ResultState(result install.Result) string {
	if result.Success {
		return format.StateOK
	}
	return format.StateBlocked
}
