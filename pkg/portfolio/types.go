package portfolio

// Content types queried from the source.
const (
	ContentTypePhotoProject = "photoProject"
	ContentTypeVideoProject = "videoProject"
)

// PhotoProject is a titled, ordered set of images.
type PhotoProject struct {
	Title  string   `json:"title"`
	Images []string `json:"images"`
}

// VideoProject is a single video with its poster image.
type VideoProject struct {
	Title  string `json:"title"`
	Src    string `json:"src"`
	Poster string `json:"poster"`
}

// ContentBundle is the unit handed from the Provider to the page.
type ContentBundle struct {
	PhotoProjects []PhotoProject `json:"photoProjects"`
	VideoProjects []VideoProject `json:"videoProjects"`
}

// Entry is one raw record as returned by a Source. Field values are
// string, Asset, []Asset, Link, or whatever else the source decoded.
type Entry struct {
	ID          string
	ContentType string
	Fields      map[string]any
}

// Asset is a resolved file reference. FileURL holds the stored path, which
// is usually protocol-relative ("//images.example.net/...").
type Asset struct {
	ID          string
	Title       string
	FileURL     string
	ContentType string
}

// Link is a reference the source could not resolve.
type Link struct {
	ID       string
	LinkType string
}

// EntryQuery selects entries of one content type. Select lists field paths
// in the form "fields.<name>"; an empty Select returns every field.
type EntryQuery struct {
	ContentType string
	Select      []string
}

// Selects reports whether the named field is part of the query.
func (q EntryQuery) Selects(field string) bool {
	if len(q.Select) == 0 {
		return true
	}
	for _, s := range q.Select {
		if s == "fields."+field || s == "fields" {
			return true
		}
	}
	return false
}

// AssetMeta describes a locally hosted asset.
type AssetMeta struct {
	Key         string
	Size        int64
	ContentType string
	ETag        string
}
