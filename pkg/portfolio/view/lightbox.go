package view

import (
	"errors"
	"fmt"

	"github.com/tendant/simple-portfolio/pkg/portfolio"
)

var (
	// ErrInvalidTransition indicates an input the lightbox does not accept in its current state
	ErrInvalidTransition = errors.New("invalid lightbox transition")

	// ErrSlideOutOfRange indicates a slide index outside the open slide list
	ErrSlideOutOfRange = errors.New("slide index out of range")
)

// Slide is one lightbox image with the title of the project it belongs to.
type Slide struct {
	Src   string
	Title string
}

// Lightbox is either closed, or open on a slide list at an index with a
// caption title. The zero value is closed.
type Lightbox struct {
	open   bool
	slides []Slide
	index  int
	title  string
}

// IsOpen reports whether the lightbox is showing.
func (l *Lightbox) IsOpen() bool { return l.open }

// Slides returns the open slide list.
func (l *Lightbox) Slides() []Slide { return l.slides }

// Index returns the active slide position.
func (l *Lightbox) Index() int { return l.index }

// Title returns the caption title.
func (l *Lightbox) Title() string { return l.title }

// Current returns the active slide. It is the zero Slide when closed.
func (l *Lightbox) Current() Slide {
	if !l.open || l.index < 0 || l.index >= len(l.slides) {
		return Slide{}
	}
	return l.slides[l.index]
}

// Select opens the lightbox on project's images at idx.
func (l *Lightbox) Select(project portfolio.PhotoProject, idx int) error {
	if l.open {
		return fmt.Errorf("%w: select while open", ErrInvalidTransition)
	}
	if idx < 0 || idx >= len(project.Images) {
		return fmt.Errorf("%w: %d of %d", ErrSlideOutOfRange, idx, len(project.Images))
	}

	slides := make([]Slide, len(project.Images))
	for i, src := range project.Images {
		slides[i] = Slide{Src: src, Title: project.Title}
	}

	l.open = true
	l.slides = slides
	l.index = idx
	l.title = project.Title
	return nil
}

// Navigate moves to slide i; the caption follows the slide's project title.
func (l *Lightbox) Navigate(i int) error {
	if !l.open {
		return fmt.Errorf("%w: navigate while closed", ErrInvalidTransition)
	}
	if i < 0 || i >= len(l.slides) {
		return fmt.Errorf("%w: %d of %d", ErrSlideOutOfRange, i, len(l.slides))
	}
	l.index = i
	l.title = l.slides[i].Title
	return nil
}

// Close returns the lightbox to the closed state.
func (l *Lightbox) Close() error {
	if !l.open {
		return fmt.Errorf("%w: close while closed", ErrInvalidTransition)
	}
	*l = Lightbox{}
	return nil
}

// Prev returns the slide before the current one, wrapping around.
func (l *Lightbox) Prev() int {
	if len(l.slides) == 0 {
		return 0
	}
	return (l.index - 1 + len(l.slides)) % len(l.slides)
}

// Next returns the slide after the current one.
func (l *Lightbox) Next() int {
	if len(l.slides) == 0 {
		return 0
	}
	return (l.index + 1) % len(l.slides)
}

// Caption renders "<title> (<n>/<total>)".
func (l *Lightbox) Caption() string {
	if !l.open {
		return ""
	}
	title := l.title
	if title == "" {
		title = "No Title"
	}
	return fmt.Sprintf("%s (%d/%d)", title, l.index+1, len(l.slides))
}
