package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"net/http"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// Client fetches and decodes GTFS-RT protobuf feeds over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a GTFS-RT HTTP client.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{}}
}

// FetchFeed fetches one GTFS-RT feed and decodes it. Returns (nil, nil)
// for an empty URL so optional feeds can simply be left unconfigured.
func (c *Client) FetchFeed(ctx context.Context, url string) (*gtfsrtpb.FeedMessage, error) {
	if url == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	fm := &gtfsrtpb.FeedMessage{}
	if err := proto.Unmarshal(body, fm); err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return fm, nil
}
