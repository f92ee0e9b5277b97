package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/tendant/simple-portfolio/pkg/portfolio"
)

// ContentfulServer is a fake Content Delivery API serving fixed projects.
// Asset URLs are served protocol-relative, as Contentful does.
type ContentfulServer struct {
	*httptest.Server

	Photos []portfolio.PhotoProject
	Videos []portfolio.VideoProject

	// FailContentType makes queries for that content type answer 500
	FailContentType string

	requests atomic.Int64
}

// NewContentfulServer starts a fake Contentful space. The server is closed
// when the test ends.
func NewContentfulServer(t *testing.T, photos []portfolio.PhotoProject, videos []portfolio.VideoProject) *ContentfulServer {
	t.Helper()
	s := &ContentfulServer{Photos: photos, Videos: videos}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Requests returns the number of entry queries served
func (s *ContentfulServer) Requests() int64 {
	return s.requests.Load()
}

type link struct {
	Sys struct {
		Type     string `json:"type"`
		LinkType string `json:"linkType"`
		ID       string `json:"id"`
	} `json:"sys"`
}

type asset struct {
	Sys struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"sys"`
	Fields struct {
		File struct {
			URL string `json:"url"`
		} `json:"file"`
	} `json:"fields"`
}

type item struct {
	Sys struct {
		ID          string `json:"id"`
		ContentType struct {
			Sys struct {
				ID string `json:"id"`
			} `json:"sys"`
		} `json:"contentType"`
	} `json:"sys"`
	Fields map[string]any `json:"fields"`
}

type collection struct {
	Sys      map[string]string `json:"sys"`
	Total    int               `json:"total"`
	Items    []item            `json:"items"`
	Includes struct {
		Asset []asset `json:"Asset"`
	} `json:"includes"`
}

func (s *ContentfulServer) serve(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)

	contentType := r.URL.Query().Get("content_type")
	if contentType != "" && contentType == s.FailContentType {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"sys":{"type":"Error","id":"ServerError"},"message":"fixture failure"}`)
		return
	}

	c := collection{Sys: map[string]string{"type": "Array"}}
	addAsset := func(url string) link {
		var a asset
		a.Sys.ID = fmt.Sprintf("asset-%d", len(c.Includes.Asset))
		a.Sys.Type = "Asset"
		a.Fields.File.URL = strings.TrimPrefix(strings.TrimPrefix(url, "https:"), "http:")
		c.Includes.Asset = append(c.Includes.Asset, a)

		var l link
		l.Sys.Type, l.Sys.LinkType, l.Sys.ID = "Link", "Asset", a.Sys.ID
		return l
	}
	addItem := func(fields map[string]any) {
		var it item
		it.Sys.ID = fmt.Sprintf("entry-%d", len(c.Items))
		it.Sys.ContentType.Sys.ID = contentType
		it.Fields = fields
		c.Items = append(c.Items, it)
	}

	switch contentType {
	case portfolio.ContentTypePhotoProject:
		for _, p := range s.Photos {
			images := make([]link, len(p.Images))
			for i, src := range p.Images {
				images[i] = addAsset(src)
			}
			addItem(map[string]any{"title": p.Title, "images": images})
		}
	case portfolio.ContentTypeVideoProject:
		for _, v := range s.Videos {
			addItem(map[string]any{"title": v.Title, "video": addAsset(v.Src), "poster": addAsset(v.Poster)})
		}
	}
	c.Total = len(c.Items)

	w.Header().Set("Content-Type", "application/vnd.contentful.delivery.v1+json")
	json.NewEncoder(w).Encode(c)
}
