package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"example/describe/internal/model"
)

const (
	apiVersion = "2023-10-01"
	features   = "caption,tags"
)

// Analysis holds the normalized caption and tags plus the raw response.
type Analysis struct {
	Caption *model.Caption
	Tags    []model.Tag
	Raw     map[string]any
}

// Client calls the image-analysis REST service, requesting caption and tag
// generation for each image.
type Client struct {
	endpoint string
	key      string
	http     *http.Client
}

func NewClient(endpoint, key string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// AnalyzeFile streams the image file at path to the analyze operation.
func (c *Client) AnalyzeFile(ctx context.Context, path string) (*Analysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.analyze(ctx, f, "application/octet-stream")
}

// AnalyzeURL submits a resolved image URL to the analyze operation.
func (c *Client) AnalyzeURL(ctx context.Context, imageURL string) (*Analysis, error) {
	body, err := json.Marshal(map[string]string{"url": imageURL})
	if err != nil {
		return nil, err
	}
	return c.analyze(ctx, bytes.NewReader(body), "application/json")
}

func (c *Client) analyze(ctx context.Context, body io.Reader, contentType string) (*Analysis, error) {
	u := fmt.Sprintf("%s/computervision/imageanalysis:analyze?api-version=%s&features=%s",
		c.endpoint, apiVersion, features)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Kind: TransportSend, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Kind: TransportReceive, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{Status: resp.StatusCode, Message: serviceMessage(data)}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding analysis response: %w", err)
	}
	return Normalize(raw), nil
}

// serviceMessage pulls the error description out of the service's error
// body, falling back to the body text itself.
func serviceMessage(data []byte) string {
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return strings.TrimSpace(string(data))
}
