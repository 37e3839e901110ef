package export

import (
	"fmt"
	"strings"
)

const (
	background = "#0a0a0a"
	cellFill   = "#1f3b2c"
	blankFill  = "#141414"
	headFill   = "#ff00ff"
	glyphFill  = "#00ff88"
)

// SpaceTimeSVG draws one row per recorded configuration, top to bottom. Each
// tape cell is a square of side cell; the cell under the head is highlighted.
// rows and heads must have the same length.
func SpaceTimeSVG(rows []string, heads []int, cell int) string {
	if len(rows) == 0 || len(rows) != len(heads) {
		return ""
	}
	if cell < 4 {
		cell = 4
	}

	cols := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > cols {
			cols = n
		}
	}
	if cols == 0 {
		cols = 1
	}

	width := cols * cell
	height := len(rows) * cell

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	fontSize := float64(cell) * 0.7
	sb.WriteString(fmt.Sprintf(`<g font-family="monospace" font-size="%.1f" text-anchor="middle">
`, fontSize))

	for y, row := range rows {
		for x, c := range []rune(row) {
			fill := cellFill
			if c == '_' {
				fill = blankFill
			}
			if x == heads[y] {
				fill = headFill
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, x*cell, y*cell, cell, cell, fill))
			if c == '_' {
				continue
			}
			cx := float64(x*cell) + float64(cell)/2
			cy := float64(y*cell) + float64(cell)*0.75
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s">%s</text>
`, cx, cy, glyphFill, escape(c)))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// HeadPathSVG plots head position (x) against step (y, downwards) as a
// polyline scaled to width by height.
func HeadPathSVG(heads []int, width, height int, strokeColor string) string {
	if len(heads) < 2 {
		return ""
	}

	maxHead := 0
	for _, h := range heads {
		if h > maxHead {
			maxHead = h
		}
	}
	if maxHead == 0 {
		maxHead = 1
	}
	steps := float64(len(heads) - 1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor))

	for i, h := range heads {
		x := float64(h) / float64(maxHead) * float64(width)
		y := float64(i) / steps * float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func escape(c rune) string {
	switch c {
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '&':
		return "&amp;"
	case '"':
		return "&quot;"
	}
	return string(c)
}
