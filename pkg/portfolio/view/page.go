package view

import (
	"fmt"

	"github.com/tendant/simple-portfolio/pkg/portfolio"
)

// Page is the state of one rendered portfolio page. It is owned by a
// single request and never shared.
type Page struct {
	bundle   portfolio.ContentBundle
	tab      Tab
	lightbox Lightbox
	hovered  int
	dark     bool
}

// NewPage returns a page on the photos tab with the lightbox closed.
func NewPage(bundle portfolio.ContentBundle) *Page {
	return &Page{bundle: bundle, tab: TabPhotos, hovered: -1}
}

// Bundle returns the content the page was built from.
func (p *Page) Bundle() portfolio.ContentBundle { return p.bundle }

// Tab returns the visible section.
func (p *Page) Tab() Tab { return p.tab }

// Lightbox returns the page's lightbox for in-place transitions.
func (p *Page) Lightbox() *Lightbox { return &p.lightbox }

// Dark reports whether dark mode is on.
func (p *Page) Dark() bool { return p.dark }

// Hovered returns the hovered tile index, or -1.
func (p *Page) Hovered() int { return p.hovered }

// Tiles flattens the bundle's photo projects.
func (p *Page) Tiles() []Tile {
	return Flatten(p.bundle.PhotoProjects)
}

// SetTab switches sections. The bundle is left untouched.
func (p *Page) SetTab(t Tab) {
	p.tab = t
}

// ToggleDark flips the dark-mode flag.
func (p *Page) ToggleDark() {
	p.dark = !p.dark
}

// Hover marks tile i as hovered.
func (p *Page) Hover(i int) error {
	if n := len(p.Tiles()); i < 0 || i >= n {
		return fmt.Errorf("%w: tile %d of %d", ErrSlideOutOfRange, i, n)
	}
	p.hovered = i
	return nil
}

// ClearHover clears the hovered tile.
func (p *Page) ClearHover() {
	p.hovered = -1
}

// OpenTile opens the lightbox on the project of tile i at that tile's image.
func (p *Page) OpenTile(i int) error {
	tiles := p.Tiles()
	if i < 0 || i >= len(tiles) {
		return fmt.Errorf("%w: tile %d of %d", ErrSlideOutOfRange, i, len(tiles))
	}
	t := tiles[i]
	return p.lightbox.Select(t.Project, t.Index)
}
