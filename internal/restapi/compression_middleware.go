package restapi

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// CompressionConfig holds configuration options for response compression
type CompressionConfig struct {
	// MinSize is the smallest response, in bytes, that gets compressed.
	MinSize int
	// Level is the gzip level, 1 to 9.
	Level int
	// ContentTypes limits compression to these types.
	ContentTypes []string
}

// DefaultCompressionConfig compresses JSON, HTML and SVG larger than 1KB.
// PNG charts are already compressed and are skipped.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize: 1024,
		Level:   6,
		ContentTypes: []string{
			"application/json",
			"text/html",
			"text/css",
			"text/javascript",
			"image/svg+xml",
		},
	}
}

// NewCompressionMiddleware creates a compression middleware with the given configuration.
// An empty ContentTypes list falls back to DefaultCompressionConfig's.
func NewCompressionMiddleware(config CompressionConfig) func(http.Handler) http.Handler {
	contentTypes := config.ContentTypes
	if len(contentTypes) == 0 {
		contentTypes = DefaultCompressionConfig().ContentTypes
	}
	wrapper, err := gzhttp.NewWrapper(
		gzhttp.MinSize(config.MinSize),
		gzhttp.CompressionLevel(config.Level),
		gzhttp.ContentTypes(contentTypes),
	)

	return func(next http.Handler) http.Handler {
		if err != nil {
			// Fallback to default if configuration fails
			return gzhttp.GzipHandler(next)
		}
		return wrapper(next)
	}
}

// CompressionMiddleware applies gzip compression with default settings
func CompressionMiddleware(next http.Handler) http.Handler {
	return NewCompressionMiddleware(DefaultCompressionConfig())(next)
}
