// Package webhook posts run summaries to an HTTP endpoint.
package webhook

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client is used for every delivery.
var Client = &http.Client{Timeout: 30 * time.Second}

// Send posts body to the given URL as application/json. Custom headers are
// applied after the default Content-Type, so callers can override it.
// Header values are expanded with os.ExpandEnv to support $VAR secrets.
func Send(url string, body []byte, headers map[string]string) error {
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, os.ExpandEnv(v))
	}

	resp, err := Client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// checkStatus returns an error if the response status code is not 2xx.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, readSnippet(resp.Body))
	}
	return nil
}

// readSnippet reads up to 200 bytes from r for inclusion in error messages.
func readSnippet(r io.Reader) string {
	buf := make([]byte, 200)
	n, _ := io.ReadFull(r, buf)
	if n == 0 {
		return "(empty body)"
	}
	s := string(buf[:n])
	if n == 200 {
		s += "..."
	}
	return s
}
