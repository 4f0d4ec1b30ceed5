package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/graphscape/graphscape/pkg/debug"
	"github.com/graphscape/graphscape/pkg/model"
)

// FetchTimeout bounds a single snapshot fetch.
const FetchTimeout = 30 * time.Second

// Query carries the server-side shaping parameters for a snapshot fetch.
type Query struct {
	Layout   string // layout hint forwarded to the service
	Filter   string // serialized filter expression
	MaxNodes int    // 0 means no cap
}

// HTTPSource fetches graph snapshots from a remote service.
type HTTPSource struct {
	base   string
	client *http.Client
}

// NewHTTPSource builds a source for the given base URL.
func NewHTTPSource(base string) *HTTPSource {
	return &HTTPSource{
		base:   strings.TrimSuffix(base, "/"),
		client: &http.Client{Timeout: FetchTimeout},
	}
}

// graphURL builds {base}/graph with the query parameters set.
func (s *HTTPSource) graphURL(q Query) string {
	v := url.Values{}
	if q.Layout != "" {
		v.Set("layout", q.Layout)
	}
	if q.Filter != "" {
		v.Set("filter", q.Filter)
	}
	if q.MaxNodes > 0 {
		v.Set("maxNodes", strconv.Itoa(q.MaxNodes))
	}
	u := s.base + "/graph"
	if len(v) > 0 {
		u += "?" + v.Encode()
	}
	return u
}

// Fetch retrieves a snapshot. Timeouts and non-2xx responses map to
// ErrUnavailable so callers can fall back to the placeholder graph.
func (s *HTTPSource) Fetch(ctx context.Context, q Query) (model.GraphData, error) {
	u := s.graphURL(q)
	debug.Log("datasource: GET %s", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.GraphData{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return model.GraphData{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return model.GraphData{}, fmt.Errorf("%w: %s returned %d", ErrUnavailable, u, resp.StatusCode)
	}

	var data model.GraphData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return model.GraphData{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return data, nil
}

// Ping checks reachability with a HEAD request, falling back to GET for
// servers that reject HEAD.
func (s *HTTPSource) Ping(ctx context.Context) error {
	for _, method := range []string{http.MethodHead, http.MethodGet} {
		req, err := http.NewRequestWithContext(ctx, method, s.base+"/graph", nil)
		if err != nil {
			return err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode == http.StatusMethodNotAllowed {
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}
		return nil
	}
	return fmt.Errorf("%w: no accepted method", ErrUnavailable)
}
