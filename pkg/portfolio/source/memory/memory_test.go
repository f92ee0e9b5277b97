package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-portfolio/pkg/portfolio"
)

func TestSource_GetEntries(t *testing.T) {
	s := New(
		portfolio.Entry{ContentType: portfolio.ContentTypePhotoProject, Fields: map[string]any{"title": "Coast", "notes": "x"}},
		portfolio.Entry{ID: "v1", ContentType: portfolio.ContentTypeVideoProject, Fields: map[string]any{"title": "Reel"}},
	)

	entries, err := s.GetEntries(context.Background(), portfolio.EntryQuery{
		ContentType: portfolio.ContentTypePhotoProject,
		Select:      []string{"fields.title"},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.Equal(t, map[string]any{"title": "Coast"}, entries[0].Fields)

	// returned fields are copies
	entries[0].Fields["title"] = "changed"
	again, err := s.GetEntries(context.Background(), portfolio.EntryQuery{ContentType: portfolio.ContentTypePhotoProject})
	require.NoError(t, err)
	assert.Equal(t, "Coast", again[0].Fields["title"])
	assert.Equal(t, "x", again[0].Fields["notes"])
}

func TestSource_FailContentType(t *testing.T) {
	s := New()
	boom := errors.New("boom")

	s.FailContentType(portfolio.ContentTypeVideoProject, boom)
	_, err := s.GetEntries(context.Background(), portfolio.EntryQuery{ContentType: portfolio.ContentTypeVideoProject})
	assert.ErrorIs(t, err, boom)

	s.FailContentType(portfolio.ContentTypeVideoProject, nil)
	entries, err := s.GetEntries(context.Background(), portfolio.EntryQuery{ContentType: portfolio.ContentTypeVideoProject})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().GetEntries(ctx, portfolio.EntryQuery{ContentType: portfolio.ContentTypePhotoProject})
	assert.ErrorIs(t, err, context.Canceled)
}
