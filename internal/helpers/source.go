package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
)

// maxSourceSize caps how much content is read from a VCL or certificate source.
const maxSourceSize = 8 << 20

// ReadSource returns the content found at location.
//
// Supported forms:
//   - http:// and https:// URLs are fetched with the given client
//   - file:// URIs and plain paths are read from the local filesystem
func ReadSource(ctx context.Context, client *http.Client, location string) (string, error) {
	if strings.TrimSpace(location) == "" {
		return "", errors.New("no source location given")
	}

	u, err := url.Parse(location)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return fetchSource(ctx, client, u.String())
		case "file":
			if u.Host != "" && u.Host != "localhost" {
				return "", fmt.Errorf("unsupported file URI %s: host %q is not local, use file:///absolute/path or a plain path", location, u.Host)
			}
			path := u.Path
			if path == "" {
				path = u.Opaque
			}
			return readFile(path)
		}
	}

	return readFile(location)
}

func readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("unable to read %s: %w", path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, maxSourceSize))
	if err != nil {
		return "", fmt.Errorf("unable to read %s: %w", path, err)
	}

	return string(b), nil
}

func fetchSource(ctx context.Context, client *http.Client, location string) (string, error) {
	if client == nil {
		client = cleanhttp.DefaultClient()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", fmt.Errorf("unable to build request for %s: %w", location, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unable to fetch %s: unsuccessful status code: %s", location, resp.Status)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
	if err != nil {
		return "", fmt.Errorf("unable to fetch %s: %w", location, err)
	}

	return string(b), nil
}
