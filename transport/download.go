package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// filenameRe extracts the filename from a Content-Disposition header.
// Quoted, bare and RFC 5987 filename* forms are all accepted.
var filenameRe = regexp.MustCompile(`filename(\*)?=(?:"([^"]+)"|([^;\s]+))`)

// Download fetches an authenticated file export and streams it into w.
// The platform cannot hand downloads to the browser's native mechanism
// because that cannot attach an Authorization header, so exports always
// go through this manual fetch. The returned name comes from the
// Content-Disposition header, with a timestamped fallback.
func (c *Client) Download(ctx context.Context, path string, w io.Writer) (filename string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.api.Endpoint(path), nil)
	if err != nil {
		return "", fmt.Errorf("building download request: %w", err)
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("User-Agent", c.api.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return "", c.decodeError(resp.StatusCode, raw)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("writing download: %w", err)
	}

	return parseFilename(resp.Header.Get("Content-Disposition")), nil
}

// parseFilename pulls the filename out of a Content-Disposition value,
// generating a name when the header is missing or unparseable
func parseFilename(disposition string) string {
	if m := filenameRe.FindStringSubmatch(disposition); m != nil {
		name := m[2]
		if name == "" {
			name = m[3]
		}
		if m[1] == "*" {
			// filename* carries a charset'lang' prefix and percent encoding
			if i := strings.LastIndex(name, "'"); i >= 0 {
				name = name[i+1:]
			}
			if decoded, err := url.PathUnescape(name); err == nil {
				name = decoded
			}
		}
		if name != "" {
			return name
		}
	}
	return fmt.Sprintf("export-%s.dat", time.Now().Format("20060102-150405"))
}
