package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampBar(pct float64, width int) (float64, int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}
	return pct, width
}

func barBlocks(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

// RenderProgress renders a level progress bar like [████░░░░]  45%.
// The bar warms from blue to green as the next level approaches.
func RenderProgress(pct float64, width int) string {
	pct, width = clampBar(pct, width)

	style := StyleBlue
	switch {
	case pct >= 0.9:
		style = StyleGreen
	case pct >= 0.5:
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(barBlocks(pct, width)), pct*100)
}

// RenderCompactBar renders the bare blocks without brackets or a percentage.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct, width = clampBar(pct, width)
	bar := barBlocks(pct, width)
	if dim {
		return StyleDim.Render(bar)
	}
	return StylePurple.Render(bar)
}
