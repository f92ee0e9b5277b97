package portfolio

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

var (
	photoQuery = EntryQuery{
		ContentType: ContentTypePhotoProject,
		Select:      []string{"fields.title", "fields.images"},
	}
	videoQuery = EntryQuery{
		ContentType: ContentTypeVideoProject,
		Select:      []string{"fields.title", "fields.video", "fields.poster"},
	}
)

// provider implements the Provider interface
type provider struct {
	source Source
	logger *slog.Logger
}

// Option represents a functional option for configuring the provider
type Option func(*provider)

// WithSource sets the content source. Without one the provider always
// serves the mock bundle.
func WithSource(source Source) Option {
	return func(p *provider) {
		p.source = source
	}
}

// WithLogger sets the logger used for fallback diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(p *provider) {
		p.logger = logger
	}
}

// New creates a new provider with the given options
func New(options ...Option) (Provider, error) {
	p := &provider{}

	for _, option := range options {
		if option != nil {
			option(p)
		}
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p, nil
}

func (p *provider) FetchPhotoProjects(ctx context.Context) []PhotoProject {
	projects := []PhotoProject{}
	if p.source == nil {
		return projects
	}

	entries, err := p.source.GetEntries(ctx, photoQuery)
	if err != nil {
		p.logger.Warn("Photo projects not available, returning none",
			"err", &QueryError{ContentType: photoQuery.ContentType, Op: "get entries", Err: err})
		return projects
	}

	for _, e := range entries {
		project, err := parsePhotoProject(e)
		if err != nil {
			p.logger.Warn("Malformed photo project, returning none", "err", err)
			return []PhotoProject{}
		}
		projects = append(projects, project)
	}
	return projects
}

func (p *provider) FetchVideoProjects(ctx context.Context) []VideoProject {
	projects := []VideoProject{}
	if p.source == nil {
		return projects
	}

	entries, err := p.source.GetEntries(ctx, videoQuery)
	if err != nil {
		p.logger.Warn("Video projects not available, returning none",
			"err", &QueryError{ContentType: videoQuery.ContentType, Op: "get entries", Err: err})
		return projects
	}

	for _, e := range entries {
		project, err := parseVideoProject(e)
		if err != nil {
			p.logger.Warn("Malformed video project, returning none", "err", err)
			return []VideoProject{}
		}
		projects = append(projects, project)
	}
	return projects
}

func (p *provider) FetchAllContent(ctx context.Context) ContentBundle {
	if p.source == nil || !p.source.Configured() {
		p.logger.Info("Content source not configured, using mock data")
		return MockBundle()
	}

	var bundle ContentBundle
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverFetch("photo", &err)
		bundle.PhotoProjects = p.FetchPhotoProjects(gctx)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverFetch("video", &err)
		bundle.VideoProjects = p.FetchVideoProjects(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		p.logger.Error("Error fetching content, using mock data", "err", err)
		return MockBundle()
	}
	return bundle
}

// recoverFetch converts a panic in a sub-fetch into ErrFetchPanicked.
func recoverFetch(kind string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s projects: %v", ErrFetchPanicked, kind, r)
	}
}
