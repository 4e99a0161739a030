package history

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

var errUnexpectedStatus = errors.New("unexpected status from history recorder")

// Client reports lookups to a History Recorder Service over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a Client posting to endpoint, e.g.
// http://localhost:3001/HistorialCiudades.
func NewClient(httpClient *http.Client, endpoint string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

type recordRequest struct {
	Ciudad string `json:"ciudad"`
}

type recordResponse struct {
	Mensaje string `json:"mensaje"`
	Error   string `json:"error"`
}

// Record makes a single attempt to record city. Any status other than
// 201 Created is returned as an error.
func (c *Client) Record(ctx context.Context, city string) error {
	body, err := json.Marshal(recordRequest{Ciudad: city})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post history record: %w", err)
	}
	defer resp.Body.Close()

	var out recordResponse
	// The body is informational; a decode failure does not change the outcome.
	_ = json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode != http.StatusCreated {
		if out.Error != "" {
			return fmt.Errorf("%w: %d: %s", errUnexpectedStatus, resp.StatusCode, out.Error)
		}
		return fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}
	return nil
}
