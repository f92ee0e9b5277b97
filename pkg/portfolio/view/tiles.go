// Package view holds the per-page presentation state of the portfolio:
// photo tiles, the active tab, the lightbox and the dark-mode flag.
package view

import "github.com/tendant/simple-portfolio/pkg/portfolio"

// Tile is one image of a photo project. Index is the image's position in
// its project, used to open the lightbox at the right slide.
type Tile struct {
	Src     string                 `json:"src"`
	Project portfolio.PhotoProject `json:"project"`
	Index   int                    `json:"index"`
}

// Flatten expands projects into tiles, project order then image order.
func Flatten(projects []portfolio.PhotoProject) []Tile {
	n := 0
	for _, p := range projects {
		n += len(p.Images)
	}

	tiles := make([]Tile, 0, n)
	for _, p := range projects {
		for i, src := range p.Images {
			tiles = append(tiles, Tile{Src: src, Project: p, Index: i})
		}
	}
	return tiles
}

// breakpoints maps a maximum viewport width to a column count.
var breakpoints = []struct {
	maxWidth int
	columns  int
}{
	{900, 1},
	{1200, 2},
	{1600, 3},
}

// DefaultColumns is the column count above the widest breakpoint.
const DefaultColumns = 4

// Columns returns the masonry column count for a viewport width. A
// non-positive width means unknown and yields DefaultColumns.
func Columns(width int) int {
	if width <= 0 {
		return DefaultColumns
	}
	for _, bp := range breakpoints {
		if width <= bp.maxWidth {
			return bp.columns
		}
	}
	return DefaultColumns
}

// Distribute deals items round-robin into cols columns, the way the masonry
// grid fills its columns left to right.
func Distribute[T any](items []T, cols int) [][]T {
	if cols < 1 {
		cols = 1
	}
	out := make([][]T, cols)
	for i, item := range items {
		out[i%cols] = append(out[i%cols], item)
	}
	return out
}
