package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	errNoHTTPClient = errors.New("http client not configured")
	errEmptyPayload = errors.New("response payload is empty")
)

// FetchJSON performs a single bounded GET and decodes the JSON body into out.
// Non-2xx responses are errors. There is deliberately no retry: each source
// gets exactly one attempt per run and the caller substitutes its fallback
// value on failure.
func FetchJSON(ctx context.Context, client *http.Client, url string, out any) error {
	if client == nil {
		return errNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
