package images

import (
	"fmt"
	"net/url"
	"strings"
)

// Options carries settings some providers need
type Options struct {
	AWSRegion string
}

// GetProvider returns the provider for source: s3://bucket/key, an http(s)
// URL, or a local directory. An empty source yields a nil provider.
func GetProvider(source string, opts Options) (Provider, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, nil
	}

	switch {
	case strings.HasPrefix(source, "s3://"):
		u, err := url.Parse(source)
		if err != nil {
			return nil, fmt.Errorf("invalid s3 source %q: %w", source, err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("s3 source must look like s3://bucket/key, got %q", source)
		}
		return NewS3(u.Host, key, opts.AWSRegion), nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return NewRemote(source, nil), nil
	default:
		return NewDirectory(source), nil
	}
}
