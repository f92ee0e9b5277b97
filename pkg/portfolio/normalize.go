package portfolio

import (
	"fmt"
	"strings"
)

const assetScheme = "https:"

// NormalizeAssetURL turns a stored asset path into an absolute https URL.
// Protocol-relative paths get the scheme prepended; https URLs pass
// through; anything else is rejected.
func NormalizeAssetURL(path string) (string, error) {
	path = strings.TrimSpace(path)
	switch {
	case strings.HasPrefix(path, "//") && len(path) > 2:
		return assetScheme + path, nil
	case strings.HasPrefix(path, assetScheme+"//") && len(path) > len(assetScheme)+2:
		return path, nil
	case path == "":
		return "", fmt.Errorf("%w: empty path", ErrInvalidAssetURL)
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetURL, path)
	}
}
