package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-portfolio/pkg/portfolio"
	"github.com/tendant/simple-portfolio/pkg/portfolio/view"
)

// TileResponse is one entry of the flattened photo grid
type TileResponse struct {
	Src          string `json:"src"`
	ProjectTitle string `json:"project_title"`
	Index        int    `json:"index"`
}

// ContentHandler serves the portfolio content as JSON
type ContentHandler struct {
	provider portfolio.Provider
}

// NewContentHandler creates a new content handler
func NewContentHandler(provider portfolio.Provider) *ContentHandler {
	return &ContentHandler{provider: provider}
}

// Routes returns the routes for content
func (h *ContentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/content", h.GetContent)
	r.Get("/content/photos", h.GetPhotoProjects)
	r.Get("/content/videos", h.GetVideoProjects)
	r.Get("/tiles", h.GetTiles)

	return r
}

// GetContent returns the full content bundle. It never fails: an
// unconfigured or failing source yields the mock bundle.
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.provider.FetchAllContent(r.Context()))
}

// GetPhotoProjects returns the photo projects only
func (h *ContentHandler) GetPhotoProjects(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.provider.FetchPhotoProjects(r.Context()))
}

// GetVideoProjects returns the video projects only
func (h *ContentHandler) GetVideoProjects(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.provider.FetchVideoProjects(r.Context()))
}

// GetTiles returns the photo projects flattened into grid tiles
func (h *ContentHandler) GetTiles(w http.ResponseWriter, r *http.Request) {
	bundle := h.provider.FetchAllContent(r.Context())
	tiles := view.Flatten(bundle.PhotoProjects)

	resp := make([]TileResponse, len(tiles))
	for i, t := range tiles {
		resp[i] = TileResponse{Src: t.Src, ProjectTitle: t.Project.Title, Index: t.Index}
	}
	render.JSON(w, r, resp)
}
