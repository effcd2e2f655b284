package data

import "strings"

// RenderDigit draws an image of intensities in [0, 1] as ASCII art with
// width pixels per line, darker characters for brighter pixels.
func RenderDigit(pixels []float64, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	for i, px := range pixels {
		b.WriteByte(shade(px))
		if (i+1)%width == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func shade(px float64) byte {
	switch {
	case px > 0.75:
		return '@'
	case px > 0.5:
		return '#'
	case px > 0.25:
		return '+'
	case px > 0.1:
		return '.'
	default:
		return ' '
	}
}
