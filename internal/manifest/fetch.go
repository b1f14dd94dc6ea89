package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

const userAgent = "larkspur-installer"

// DefaultHTTPClient is used by Fetch when no client is supplied.
var DefaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

// Fetch retrieves and decodes the manifest from url and validates its
// invariants.
func Fetch(ctx context.Context, client *http.Client, url string) (*Manifest, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = DefaultHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf(messages.ManifestCreateRequestFmt, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf(messages.ManifestFetchFailedFmt, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Warnf("error closing manifest response body: %v", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(messages.ManifestFetchStatusFmt, resp.Status)
	}

	var m Manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf(messages.ManifestDecodeFailedFmt, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	log.Debugf("fetched manifest with %d products from %s", len(m.Products), url)
	return &m, nil
}
