package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/reapfs/reap/internal/remove"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	summaryStyle = lipgloss.NewStyle().Bold(true)
)

// Summary renders the final human-readable report for a finished run.
func Summary(res remove.Result, cfg remove.Config) string {
	var b strings.Builder

	if cfg.DryRun {
		b.WriteString(warnStyle.Render("Dry run finished.") + "\n")
	}

	noun := "items"
	if res.Deleted == 1 {
		noun = "item"
	}
	verb := "removed"
	if cfg.DryRun {
		verb = "would be removed"
	}
	b.WriteString(fmt.Sprintf("%s %d total %s %s in %s (%d scanned).\n",
		summaryStyle.Render("Summary:"), res.Deleted, noun, verb,
		res.Elapsed.Round(time.Millisecond), res.Scanned))

	if res.Aborted {
		b.WriteString(warnStyle.Render("Run aborted before completion.") + "\n")
	}
	if res.Errors > 0 {
		b.WriteString(errStyle.Render(fmt.Sprintf("Errors: %d error(s) encountered.", res.Errors)) + "\n")
	} else if !res.Aborted {
		b.WriteString(okStyle.Render("Completed with no errors.") + "\n")
	}

	return b.String()
}
