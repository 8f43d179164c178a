package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBarReport(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, ProgressBarOptions{Width: 10, NoColor: true})

	bar.Report(2, 5, "Resolving library types")
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\r["))
	assert.Contains(t, out, "████░░░░░░")
	assert.Contains(t, out, "2/5 Resolving library types")

	buf.Reset()
	bar.Report(9, 5, "overflow")
	assert.Contains(t, buf.String(), "5/5 overflow", "current is clamped to total")
}

func TestProgressBarFinish(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, ProgressBarOptions{Width: 4, NoColor: true})

	bar.Report(1, 4, "Loading")
	bar.Finish("Generated ReactPackageProvider.g.cs")

	out := buf.String()
	assert.Contains(t, out, "[████] 4/4")
	assert.True(t, strings.HasSuffix(out, "✓ Generated ReactPackageProvider.g.cs\n"))
}

func TestProgressBarWithoutTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, ProgressBarOptions{NoColor: true})

	bar.Report(0, 0, "nothing")
	assert.Empty(t, buf.String())

	bar.Abort()
	assert.Equal(t, "\n", buf.String())
}
