package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ProgressBar represents a simple progress bar for determinate operations
type ProgressBar struct {
	writer  io.Writer
	total   int
	current int
	width   int
	message string
	noColor bool
}

// ProgressBarOptions configures progress bar behavior
type ProgressBarOptions struct {
	Total   int
	Width   int // Default: 30
	NoColor bool
}

// NewProgressBar creates a new progress bar
func NewProgressBar(w io.Writer, opts ProgressBarOptions) *ProgressBar {
	width := opts.Width
	if width == 0 {
		width = 30
	}

	return &ProgressBar{
		writer:  w,
		total:   opts.Total,
		width:   width,
		noColor: opts.NoColor,
	}
}

// Report moves the bar to current of total with a stage message. Its signature
// matches build.Options.ProgressFunc.
func (p *ProgressBar) Report(current, total int, message string) {
	p.total = total
	p.current = min(current, total)
	p.message = message
	p.render()
}

// Finish completes the progress bar with a success message
func (p *ProgressBar) Finish(message string) {
	p.current = p.total
	p.message = ""
	p.render()
	fmt.Fprintln(p.writer)
	WriteSuccess(p.writer, message, p.noColor)
}

// Abort ends the bar line without marking it complete
func (p *ProgressBar) Abort() {
	fmt.Fprintln(p.writer)
}

func (p *ProgressBar) render() {
	if p.total == 0 {
		return
	}

	percent := float64(p.current) / float64(p.total)
	filledWidth := int(float64(p.width) * percent)

	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if p.noColor {
		cyan.DisableColor()
		gray.DisableColor()
	}

	var bar strings.Builder
	bar.WriteString("[")
	cyan.Fprint(&bar, strings.Repeat("█", filledWidth))
	gray.Fprint(&bar, strings.Repeat("░", p.width-filledWidth))
	bar.WriteString("]")

	message := ""
	if p.message != "" {
		message = " " + p.message
	}

	// \033[K clears what a longer previous message left behind
	fmt.Fprintf(p.writer, "\r%s %d/%d%s\033[K", bar.String(), p.current, p.total, message)
}
