package view

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Shift translates a block horizontally by offset columns and clips it to
// [0, width). Positive offsets move the block right.
func Shift(block string, offset, width int) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = shiftLine(line, offset, width)
	}
	return strings.Join(lines, "\n")
}

func shiftLine(line string, offset, width int) string {
	if width <= 0 {
		return ""
	}
	if offset >= width || -offset >= width {
		return strings.Repeat(" ", width)
	}

	var out string
	switch {
	case offset > 0:
		out = strings.Repeat(" ", offset) + ansi.Truncate(line, width-offset, "")
	case offset < 0:
		out = ansi.Cut(line, -offset, -offset+width)
	default:
		out = ansi.Truncate(line, width, "")
	}
	return pad(out, width)
}

// Place draws the part of block that remains visible after translating it
// by offset columns over base, within [0, width).
func Place(base, block string, offset, width int) string {
	x := offset
	if x < 0 {
		x = 0
	}
	end := offset + width
	if end > width {
		end = width
	}
	if end <= x {
		return base
	}

	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = ansi.Cut(shiftLine(line, offset, width), x, end)
	}
	return Overlay(base, strings.Join(lines, "\n"), x)
}

// Overlay draws top over base starting at column x. Lines of base beyond
// the height of top are left untouched.
func Overlay(base, top string, x int) string {
	if x < 0 {
		x = 0
	}
	bl := strings.Split(base, "\n")
	tl := strings.Split(top, "\n")
	for len(bl) < len(tl) {
		bl = append(bl, "")
	}
	for i, t := range tl {
		b := bl[i]
		tw := ansi.StringWidth(t)
		bw := ansi.StringWidth(b)
		left := pad(ansi.Truncate(b, x, ""), x)
		right := ""
		if bw > x+tw {
			right = ansi.Cut(b, x+tw, bw)
		}
		bl[i] = left + t + right
	}
	return strings.Join(bl, "\n")
}

// Fit pads or truncates a block to exactly height lines.
func Fit(block string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(block, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func pad(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
