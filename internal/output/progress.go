package output

import (
	"fmt"
	"strings"
)

// ScoreBar renders a visual progress bar for a 0-100 score.
// Example: "███████████████░░░░░ 75/100"
func ScoreBar(score int, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := score * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(string) string
	switch {
	case score >= 75:
		style = func(s string) string { return StyleSuccess.Render(s) }
	case score >= 50:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleError.Render(s) }
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%d/100", score)))
}

// GradeBadge renders a grade label in the colour of its band.
func GradeBadge(grade string) string {
	label := "[" + grade + "]"
	switch grade {
	case "Elite":
		return StyleElite.Render(label)
	case "Good":
		return StyleSuccess.Render(label)
	case "Risky":
		return StyleWarning.Render(label)
	default:
		return StyleError.Render(label)
	}
}

// Check renders a found/missing marker.
func Check(ok bool) string {
	if ok {
		return StyleSuccess.Render("✓ found")
	}
	return StyleError.Render("✗ missing")
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
