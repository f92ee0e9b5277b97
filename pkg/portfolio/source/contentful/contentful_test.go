package contentful

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-portfolio/pkg/portfolio"
)

const photoResponse = `{
  "sys": {"type": "Array"},
  "total": 2, "skip": 0, "limit": 100,
  "items": [
    {
      "sys": {"id": "p1", "type": "Entry", "contentType": {"sys": {"id": "photoProject", "type": "Link", "linkType": "ContentType"}}},
      "fields": {
        "title": "Coast",
        "images": [
          {"sys": {"type": "Link", "linkType": "Asset", "id": "a1"}},
          {"sys": {"type": "Link", "linkType": "Asset", "id": "a2"}}
        ]
      }
    },
    {
      "sys": {"id": "p2", "type": "Entry", "contentType": {"sys": {"id": "photoProject", "type": "Link", "linkType": "ContentType"}}},
      "fields": {
        "title": "Desert",
        "images": [{"sys": {"type": "Link", "linkType": "Asset", "id": "a3"}}]
      }
    }
  ],
  "includes": {
    "Asset": [
      {"sys": {"id": "a1", "type": "Asset"}, "fields": {"title": "one", "file": {"url": "//images.ctfassets.net/sp/a1/1.jpg", "contentType": "image/jpeg"}}},
      {"sys": {"id": "a2", "type": "Asset"}, "fields": {"title": "two", "file": {"url": "//images.ctfassets.net/sp/a2/2.jpg", "contentType": "image/jpeg"}}},
      {"sys": {"id": "a3", "type": "Asset"}, "fields": {"title": "three", "file": {"url": "//images.ctfassets.net/sp/a3/3.jpg", "contentType": "image/jpeg"}}}
    ]
  }
}`

const videoResponse = `{
  "sys": {"type": "Array"},
  "total": 1,
  "items": [
    {
      "sys": {"id": "v1", "type": "Entry", "contentType": {"sys": {"id": "videoProject"}}},
      "fields": {
        "title": "Reel",
        "video": {"sys": {"type": "Link", "linkType": "Asset", "id": "m1"}},
        "poster": {"sys": {"type": "Link", "linkType": "Asset", "id": "m2"}}
      }
    }
  ],
  "includes": {
    "Asset": [
      {"sys": {"id": "m1", "type": "Asset"}, "fields": {"file": {"url": "//videos.ctfassets.net/sp/m1/reel.mp4", "contentType": "video/mp4"}}},
      {"sys": {"id": "m2", "type": "Asset"}, "fields": {"file": {"url": "//images.ctfassets.net/sp/m2/reel.jpg", "contentType": "image/jpeg"}}}
    ]
  }
}`

const notFoundResponse = `{
  "sys": {"type": "Error", "id": "InvalidQuery"},
  "message": "The query you sent was invalid. Probably a filter or ordering specification is not applicable to the type of a field.",
  "requestId": "req-42"
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		SpaceID:     "space1",
		AccessToken: "token1",
		Host:        srv.URL,
		HTTPClient:  srv.Client(),
	})
}

func TestClient_GetEntries_ResolvesAssets(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/vnd.contentful.delivery.v1+json")
		io.WriteString(w, photoResponse)
	})

	entries, err := client.GetEntries(context.Background(), portfolio.EntryQuery{
		ContentType: portfolio.ContentTypePhotoProject,
		Select:      []string{"fields.title", "fields.images"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/spaces/space1/environments/master/entries", gotPath)
	assert.Equal(t, "Bearer token1", gotAuth)
	assert.Equal(t, []string{"photoProject"}, gotQuery["content_type"])
	assert.Equal(t, []string{"sys.id,fields.title,fields.images"}, gotQuery["select"])
	assert.Equal(t, []string{"1000"}, gotQuery["limit"])

	require.Len(t, entries, 2)
	assert.Equal(t, "p1", entries[0].ID)
	assert.Equal(t, "photoProject", entries[0].ContentType)
	assert.Equal(t, "Coast", entries[0].Fields["title"])

	images, ok := entries[0].Fields["images"].([]any)
	require.True(t, ok)
	require.Len(t, images, 2)
	assert.Equal(t, portfolio.Asset{ID: "a1", Title: "one", FileURL: "//images.ctfassets.net/sp/a1/1.jpg", ContentType: "image/jpeg"}, images[0])
}

func TestClient_WithProvider(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("content_type") {
		case portfolio.ContentTypePhotoProject:
			io.WriteString(w, photoResponse)
		case portfolio.ContentTypeVideoProject:
			io.WriteString(w, videoResponse)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	p, err := portfolio.New(
		portfolio.WithSource(client),
		portfolio.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)

	bundle := p.FetchAllContent(context.Background())
	require.Len(t, bundle.PhotoProjects, 2)
	assert.Equal(t, []string{
		"https://images.ctfassets.net/sp/a1/1.jpg",
		"https://images.ctfassets.net/sp/a2/2.jpg",
	}, bundle.PhotoProjects[0].Images)
	require.Len(t, bundle.VideoProjects, 1)
	assert.Equal(t, portfolio.VideoProject{
		Title:  "Reel",
		Src:    "https://videos.ctfassets.net/sp/m1/reel.mp4",
		Poster: "https://images.ctfassets.net/sp/m2/reel.jpg",
	}, bundle.VideoProjects[0])
}

func TestClient_GetEntries_APIError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, notFoundResponse)
	})

	_, err := client.GetEntries(context.Background(), portfolio.EntryQuery{ContentType: "videoProject"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "InvalidQuery", apiErr.ID)
	assert.Equal(t, "req-42", apiErr.RequestID)
}

func TestClient_GetEntries_UnresolvedLink(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"sys":{"type":"Array"},"items":[{"sys":{"id":"v1","contentType":{"sys":{"id":"videoProject"}}},
			"fields":{"title":"Reel","video":{"sys":{"type":"Link","linkType":"Asset","id":"gone"}}}}]}`)
	})

	entries, err := client.GetEntries(context.Background(), portfolio.EntryQuery{ContentType: "videoProject"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, portfolio.Link{ID: "gone", LinkType: "Asset"}, entries[0].Fields["video"])
}

func TestClient_GetEntries_Malformed(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>maintenance</html>`)
	})

	_, err := client.GetEntries(context.Background(), portfolio.EntryQuery{ContentType: "photoProject"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode entries")
}

func TestClient_Configured(t *testing.T) {
	assert.False(t, New(Config{}).Configured())
	assert.False(t, New(Config{SpaceID: "space"}).Configured())
	assert.False(t, New(Config{AccessToken: "token"}).Configured())
	assert.True(t, New(Config{SpaceID: "space", AccessToken: "token"}).Configured())
}

func TestClient_PartialCredentialsServeMock(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"sys":{"type":"Error","id":"AccessTokenInvalid"},"message":"invalid token"}`)
	}))
	t.Cleanup(srv.Close)

	for _, cfg := range []Config{
		{SpaceID: "space", Host: srv.URL, HTTPClient: srv.Client()},
		{AccessToken: "token", Host: srv.URL, HTTPClient: srv.Client()},
	} {
		p, err := portfolio.New(
			portfolio.WithSource(New(cfg)),
			portfolio.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		)
		require.NoError(t, err)
		assert.Equal(t, portfolio.MockBundle(), p.FetchAllContent(context.Background()))
	}
	assert.Zero(t, calls)
}

func TestClient_EntriesURL(t *testing.T) {
	c := New(Config{SpaceID: "sp", AccessToken: "t", Environment: "staging", Host: PreviewHost})
	u := c.entriesURL(portfolio.EntryQuery{ContentType: "photoProject"})
	assert.Equal(t, "https://preview.contentful.com/spaces/sp/environments/staging/entries?content_type=photoProject&include=1&limit=1000", u)
}
