package engine

import (
	"strings"

	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
)

const (
	openGlyph     = '.'
	obstacleGlyph = '#'
	visitedGlyph  = 'o'
	pathGlyph     = '*'
	startGlyph    = 'S'
	targetGlyph   = 'T'
)

// RenderText draw the snapshot one row per line, y grows downwards. later layers win: visited < path < start/target.
func RenderText(s GridSnapshot, path []da.Position) string {
	if s.Width <= 0 || s.Height <= 0 {
		return ""
	}

	rows := make([][]byte, s.Height)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(string(openGlyph), s.Width))
	}

	put := func(pos da.Position, glyph byte) {
		if pos.X < 0 || pos.Y < 0 || pos.X >= s.Width || pos.Y >= s.Height {
			return
		}
		rows[pos.Y][pos.X] = glyph
	}

	for _, pos := range s.Obstacles {
		put(pos, obstacleGlyph)
	}
	for _, pos := range s.Visited {
		put(pos, visitedGlyph)
	}
	for _, pos := range path {
		put(pos, pathGlyph)
	}
	put(s.Start, startGlyph)
	put(s.Target, targetGlyph)

	var sb strings.Builder
	sb.Grow(s.Height * (s.Width + 1))
	for _, row := range rows {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}
