// Package text provides plain text output without any styling. The terminal
// renderer reuses its layout with a styler attached.
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/install"
	"github.com/arthur-debert/dotlink/pkg/ui/display"
	"github.com/arthur-debert/dotlink/pkg/ui/format"
	"github.com/mattn/go-runewidth"
)

// Styler decorates s with the named style
type Styler func(style, s string) string

func plain(_, s string) string { return s }

// Renderer writes install and status reports as aligned text
type Renderer struct {
	output io.Writer
	style  Styler
}

// New creates a plain text renderer
func New(output io.Writer) (*Renderer, error) {
	return NewStyled(output, nil)
}

// NewStyled creates a renderer that passes every fragment through style
func NewStyled(output io.Writer, style Styler) (*Renderer, error) {
	if style == nil {
		style = plain
	}
	return &Renderer{output: output, style: style}, nil
}

// RenderResult renders an *InstallReport or *StatusReport
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.InstallReport:
		return r.renderInstall(v)
	case *display.StatusReport:
		return r.renderStatus(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, r.style("Error", "Error: "+err.Error()))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, r.style("Info", msg))
	return err
}

func (r *Renderer) renderInstall(report *display.InstallReport) error {
	var b strings.Builder
	s := report.Summary

	b.WriteString(r.style("Header", fmt.Sprintf("Install %s from %s", report.Status, report.Root)) + "\n")

	if len(s.Directories) > 0 {
		b.WriteString(r.style("SubHeader", "Directories") + "\n")
		r.writeResults(&b, s.Directories)
	}

	b.WriteString(r.style("SubHeader", fmt.Sprintf("Links: %d created, %d failed", s.Succeeded, s.Failed)) + "\n")
	r.writeResults(&b, s.Links)

	if len(s.Commands) > 0 {
		b.WriteString(r.style("SubHeader", "Commands") + "\n")
		r.writeResults(&b, s.Commands)
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) writeResults(b *strings.Builder, results []install.Result) {
	width := 0
	for _, res := range results {
		width = max(width, runewidth.StringWidth(res.Name))
	}

	for _, res := range results {
		state := display.ResultState(res)
		line := fmt.Sprintf("  %s %s  %s",
			r.stateMark(state),
			r.style("FilePath", pad(res.Name, width)),
			r.style("Handler", "["+res.Handler+"]"))
		if !res.Success {
			line += " " + r.style("Error", res.Message)
		}
		b.WriteString(line + "\n")
	}
}

func (r *Renderer) renderStatus(report *display.StatusReport) error {
	var b strings.Builder

	header := "Status of " + report.Root
	if report.ConfigPath != "" {
		header += " (config: " + report.ConfigPath + ")"
	}
	b.WriteString(r.style("Header", header) + "\n")

	targetWidth, stateWidth := 0, 0
	for _, e := range report.Entries {
		targetWidth = max(targetWidth, runewidth.StringWidth(e.Target))
		stateWidth = max(stateWidth, runewidth.StringWidth(e.State))
	}

	for _, e := range report.Entries {
		detail := e.Action
		switch e.Status {
		case format.StateOK:
			detail = r.style("Success", "up to date")
		case format.StateBlocked:
			detail = r.style("Error", fmt.Sprintf("[%s] %s", e.Code, e.Message))
		}
		fmt.Fprintf(&b, "  %s %s  %s  %s\n",
			r.stateMark(e.Status),
			r.style("FilePath", pad(e.Target, targetWidth)),
			r.style("Muted", pad(e.State, stateWidth)),
			detail)
	}

	b.WriteString(r.style("SubHeader",
		fmt.Sprintf("%d up to date, %d pending, %d blocked", report.UpToDate, report.Pending, report.Blocked)) + "\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) stateMark(state string) string {
	symbol := format.StateSymbol(state)
	switch state {
	case format.StateOK:
		return r.style("Success", symbol)
	case format.StatePending:
		return r.style("Warning", symbol)
	default:
		return r.style("Error", symbol)
	}
}

// pad right-pads to a display width before styling so colors and wide
// runes never skew alignment
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
