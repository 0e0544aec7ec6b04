package output

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSeverityStyle(t *testing.T) {
	errStyle := SeverityStyle(SeverityError)
	assert.True(t, errStyle.GetBold())
	assert.Equal(t, ColorBoldRed, errStyle.GetForeground())

	warnStyle := SeverityStyle(SeverityWarning)
	assert.False(t, warnStyle.GetBold())
	assert.Equal(t, ColorYellow, warnStyle.GetForeground())

	assert.Equal(t, lipgloss.NoColor{}, SeverityStyle("other").GetForeground())
}

func TestFormatIssueLine(t *testing.T) {
	line := FormatIssueLine(SeverityWarning, "content", "no content globs configured")
	assert.Contains(t, line, "warning")
	assert.Contains(t, line, "content")
	assert.Contains(t, line, "no content globs configured")
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("done"), "done")
	assert.Contains(t, FormatCheckmark("done"), "✔")
}

func TestTable(t *testing.T) {
	tbl := NewTable("CLASS", "FILES").
		Row("bg-white", "2").
		Row("text-sm", "1")

	assert.Equal(t, 2, tbl.Len())
	out := tbl.String()
	assert.Contains(t, out, "CLASS")
	assert.Contains(t, out, "bg-white")
	assert.Contains(t, out, "text-sm")
}
