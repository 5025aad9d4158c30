package resolver

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Firefox/120.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Safari/537.36",
}

// ResolutionError means a URL could not be confirmed to serve image
// content. It always names the original URL, not the redirect target.
type ResolutionError struct {
	URL string
	Err error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("URL did not resolve to a valid image: %s", e.URL)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Resolver checks that untrusted URLs actually serve images before they
// are handed to the analysis service, following redirects to the final
// location. One Resolver reuses a single HTTP session across all lookups.
type Resolver struct {
	http *http.Client
}

func New() *Resolver {
	return &Resolver{http: &http.Client{Timeout: 30 * time.Second}}
}

// Resolve fetches rawURL with browser-like headers and returns the
// post-redirect URL when the response carries an image content type.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &ResolutionError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Referer", rawURL)

	resp, err := r.http.Do(req)
	if err != nil {
		return "", &ResolutionError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !strings.Contains(resp.Header.Get("Content-Type"), "image") {
		return "", &ResolutionError{URL: rawURL}
	}
	return resp.Request.URL.String(), nil
}
