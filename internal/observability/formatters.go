// Package observability provides formatted CLI output for pipeline progress
// and verification results.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/trustproof/internal/pipeline"
	"github.com/jonathan/trustproof/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// stageLabels maps stage identifiers to display names.
var stageLabels = map[pipeline.Stage]string{
	pipeline.StageIntake:      "Intake",
	pipeline.StagePurchase:    "Purchase",
	pipeline.StageText:        "Text",
	pipeline.StageConsistency: "Consistency",
	pipeline.StageMedia:       "Media",
	pipeline.StageScore:       "Score",
}

// statusMarks maps stage statuses to progress markers.
var statusMarks = map[pipeline.Status]string{
	pipeline.StatusPending:   "·",
	pipeline.StatusActive:    "…",
	pipeline.StatusCompleted: "✓",
	pipeline.StatusSkipped:   "−",
	pipeline.StatusFailed:    "✗",
}

// Printer handles formatted output for the CLI.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStageEvent outputs one stage transition as a progress line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStageEvent(ev pipeline.Event) {
	label := stageLabels[ev.Stage]
	if label == "" {
		label = string(ev.Stage)
	}
	mark := statusMarks[ev.Status]

	if ev.Status.Terminal() && ev.ElapsedMillis > 0 {
		fmt.Fprintf(p.out, "%s %-12s %s (%dms)\n", mark, label, ev.Status, ev.ElapsedMillis)
		return
	}
	fmt.Fprintf(p.out, "%s %-12s %s\n", mark, label, ev.Status)
}

// PrintResult outputs a human-readable summary of the terminal verdict.
func (p *Printer) PrintResult(result *types.VerificationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Trust Score:  %d / 100\n", result.FinalTrustScore))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", result.ReviewStatus))
	if result.TrustLevel != "" {
		sb.WriteString(fmt.Sprintf("Trust Level:  %s\n", result.TrustLevel))
	}
	sb.WriteString("\n")
	sb.WriteString("Breakdown:\n")
	sb.WriteString(fmt.Sprintf("  Purchase Verification    %s\n", result.Breakdown.PurchaseVerification))
	sb.WriteString(fmt.Sprintf("  Text Authenticity        %s\n", result.Breakdown.TextAuthenticity))
	sb.WriteString(fmt.Sprintf("  Experience Consistency   %s\n", result.Breakdown.ExperienceConsistency))
	sb.WriteString(fmt.Sprintf("  Media Authenticity       %s", result.Breakdown.MediaAuthenticity))

	p.printBox("Verification Result", sb.String())
}

// PrintError outputs a terminal pipeline failure with the failing stage.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintError(err error) {
	if perr, ok := err.(*pipeline.PipelineError); ok {
		label := stageLabels[perr.Stage]
		if label == "" {
			label = "Pipeline"
		}
		fmt.Fprintf(p.out, "✗ %s stage failed: %v\n", label, err)
		return
	}
	fmt.Fprintf(p.out, "✗ Verification failed: %v\n", err)
}
