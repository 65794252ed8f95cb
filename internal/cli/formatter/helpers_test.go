package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences so assertions are
// terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeAge(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"seconds", now.Add(-10 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-2 * time.Hour), "2h ago"},
		{"3 days", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"2 weeks", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeAge(tt.input, now))
		})
	}
}

func TestTruncID(t *testing.T) {
	got := stripANSI(TruncID("a1b2c3d4-e5f6-7890-abcd-ef1234567890"))
	assert.Equal(t, "a1b2c3d4", got)
	assert.Equal(t, "short", stripANSI(TruncID("short")))
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("problems", "content here")
	assert.Contains(t, result, "PROBLEMS")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestFit(t *testing.T) {
	assert.Equal(t, "JAN  ", fit("JAN", 5))
	assert.Equal(t, "JANU", fit("JANUARY", 4))
	assert.Equal(t, "", fit("X", 0))
}

func TestParseHex(t *testing.T) {
	r, g, b, ok := parseHex("#FFFF00")
	assert.True(t, ok)
	assert.Equal(t, []float64{255, 255, 0}, []float64{r, g, b})

	_, _, _, ok = parseHex("#fff")
	assert.True(t, ok)
	_, _, _, ok = parseHex("teal")
	assert.False(t, ok)
}
