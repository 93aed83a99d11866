package source

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/time/rate"
)

var ErrUnexpectedStatus = goerr.New("unexpected HTTP status")

// DefaultInterval is the minimum pause between two requests to the same
// data source.
const DefaultInterval = 250 * time.Millisecond

// Fetcher downloads raw datasets. Requests are paced so paginated feeds are
// not hammered.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher returns a Fetcher that waits at least interval between
// requests. A nil client uses http.DefaultClient.
func NewFetcher(client *http.Client, interval time.Duration) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	ctxlog.From(ctx).Debug("download", "url", url)

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, goerr.Wrap(err, "wait for rate limiter", goerr.V("url", url))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "build request", goerr.V("url", url))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "send request", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.Wrap(ErrUnexpectedStatus, "download",
			goerr.V("url", url), goerr.V("status", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "read response body", goerr.V("url", url))
	}

	return data, nil
}
