package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-portfolio/pkg/portfolio"
)

// Source is an in-memory implementation of portfolio.Source
type Source struct {
	mu      sync.RWMutex
	entries []portfolio.Entry
	errs    map[string]error
}

// New creates a new in-memory source holding the given entries
func New(entries ...portfolio.Entry) *Source {
	s := &Source{errs: make(map[string]error)}
	s.Add(entries...)
	return s
}

// Add appends entries. Entries without an ID get a random one.
func (s *Source) Add(entries ...portfolio.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		s.entries = append(s.entries, e)
	}
}

// FailContentType makes queries for contentType return err. A nil err
// clears the failure.
func (s *Source) FailContentType(contentType string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.errs, contentType)
		return
	}
	s.errs[contentType] = err
}

// Configured is always true for an in-memory source
func (s *Source) Configured() bool {
	return true
}

// GetEntries returns copies of the matching entries in insertion order
func (s *Source) GetEntries(ctx context.Context, query portfolio.EntryQuery) ([]portfolio.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err, ok := s.errs[query.ContentType]; ok {
		return nil, err
	}

	var result []portfolio.Entry
	for _, e := range s.entries {
		if e.ContentType != query.ContentType {
			continue
		}
		fields := make(map[string]any, len(e.Fields))
		for name, v := range e.Fields {
			if query.Selects(name) {
				fields[name] = v
			}
		}
		result = append(result, portfolio.Entry{ID: e.ID, ContentType: e.ContentType, Fields: fields})
	}
	return result, nil
}
