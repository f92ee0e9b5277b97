package portfolio

import "context"

// Provider supplies normalized project content to the page. None of its
// operations fail; errors are logged and absorbed.
type Provider interface {
	// FetchPhotoProjects returns every photo project, or an empty slice on error.
	FetchPhotoProjects(ctx context.Context) []PhotoProject

	// FetchVideoProjects returns every video project, or an empty slice on error.
	FetchVideoProjects(ctx context.Context) []VideoProject

	// FetchAllContent returns both collections, falling back to MockBundle
	// when the source is unconfigured or the concurrent fetch fails.
	FetchAllContent(ctx context.Context) ContentBundle
}
