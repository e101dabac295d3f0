package status

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Recognized status values. Anything else is ignored by the alerter.
const (
	Full   = "full"
	Null   = "null"
	NoData = "no_data"
)

// ErrEmptyDocument is returned when the data source answers with an empty body or an empty object.
var ErrEmptyDocument = errors.New("empty status document")

// Snapshot maps region name to status string. It is fetched fresh each tick.
type Snapshot map[string]string

// Lookup returns the status of region. A missing region reads as "".
func (s Snapshot) Lookup(region string) (string, bool) {
	v, ok := s[region]
	return v, ok
}

type Fetcher struct {
	url    string
	client *http.Client
}

// NewFetcher returns a Fetcher for url. A zero timeout leaves requests unbounded.
func NewFetcher(url string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch performs one GET against the data source and decodes the document.
func (f *Fetcher) Fetch(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", f.url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch data from %s: status %d", f.url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", f.url, err)
	}

	snapshot, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from %s: %w", f.url, err)
	}
	return snapshot, nil
}

// Decode parses a status document. The document must be a non-empty JSON
// object. Non-string values are kept in their JSON text form (null becomes "")
// so they never match a recognized status.
func Decode(body []byte) (Snapshot, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyDocument
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid status document: %w", err)
	}
	// A literal JSON null decodes into a nil map.
	if len(raw) == 0 {
		return nil, ErrEmptyDocument
	}

	snapshot := make(Snapshot, len(raw))
	for region, v := range raw {
		snapshot[region] = stringify(v)
	}
	return snapshot, nil
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
