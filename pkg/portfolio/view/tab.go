package view

import "fmt"

// Tab selects which section of the page is visible.
type Tab string

const (
	TabPhotos Tab = "photos"
	TabVideos Tab = "videos"
)

// ParseTab parses a tab name. The empty string is the default tab.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case "", TabPhotos:
		return TabPhotos, nil
	case TabVideos:
		return TabVideos, nil
	default:
		return TabPhotos, fmt.Errorf("unknown tab %q", s)
	}
}

// Label is the navigation text for the tab.
func (t Tab) Label() string {
	if t == TabVideos {
		return "VIDEOS"
	}
	return "PHOTOGRAPHY"
}
