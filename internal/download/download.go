// Package download fetches product artifacts in full before they are
// handed to an install strategy. Extraction never starts on a partial
// stream; failures surface as a single opaque error and retrying is the
// caller's responsibility.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

const userAgent = "larkspur-installer"

// maxArtifactBytes caps a single artifact download.
const maxArtifactBytes = int64(2 * 1024 * 1024 * 1024)

// DefaultHTTPClient is used by the package-level ToFile helper.
var DefaultHTTPClient = &http.Client{Timeout: 15 * time.Minute}

// Client downloads artifacts over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a Client backed by httpClient, or DefaultHTTPClient
// when nil.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = DefaultHTTPClient
	}
	return &Client{httpClient: httpClient}
}

// ToFile downloads url into dstFile, replacing any existing content.
func (c *Client) ToFile(ctx context.Context, url, dstFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log.Debugf("starting download from %s", url)

	out, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf(messages.DownloadCreateFileFmt, dstFile, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			log.Warnf("error closing file %q: %v", dstFile, cerr)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf(messages.DownloadCreateRequestFmt, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf(messages.DownloadFailedFmt, url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Warnf("error closing response body: %v", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(messages.DownloadStatusFmt, url, resp.Status)
	}

	n, err := io.Copy(out, io.LimitReader(resp.Body, maxArtifactBytes+1))
	if err != nil {
		return fmt.Errorf(messages.DownloadFailedFmt, url, err)
	}
	if n > maxArtifactBytes {
		return fmt.Errorf(messages.DownloadTooLargeFmt, url, maxArtifactBytes)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf(messages.DownloadCreateFileFmt, dstFile, err)
	}

	log.Infof("downloaded %d bytes to %s", n, dstFile)
	return nil
}
