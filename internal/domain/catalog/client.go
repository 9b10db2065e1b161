// Thin client for the learning-platform API. The reader only needs titles
// and content strings from it.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"readaloud/internal/domain/resource"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// The API wraps every payload in a {"success": ..., "data": ...} envelope.
type listResponse struct {
	Success bool            `json:"success"`
	Data    []resource.Item `json:"data"`
}

type itemResponse struct {
	Success bool          `json:"success"`
	Data    resource.Item `json:"data"`
}

type pathResponse struct {
	Success bool          `json:"success"`
	Data    resource.Path `json:"data"`
}

// ListResources fetches every resource the platform exposes.
func (c *Client) ListResources() ([]resource.Item, error) {
	url := c.baseURL + "/api/resources"

	body, err := c.get(url)
	if err != nil {
		return nil, err
	}

	var response listResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return response.Data, nil
}

// GetResource fetches a single resource by id.
func (c *Client) GetResource(id string) (*resource.Item, error) {
	url := fmt.Sprintf("%s/api/resource/%s", c.baseURL, id)

	body, err := c.get(url)
	if err != nil {
		return nil, err
	}

	var response itemResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return &response.Data, nil
}

// GetPath fetches a learner's learning path.
func (c *Client) GetPath(learnerID string) (*resource.Path, error) {
	url := fmt.Sprintf("%s/api/learner/%s/path", c.baseURL, learnerID)

	body, err := c.get(url)
	if err != nil {
		return nil, err
	}

	var response pathResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return &response.Data, nil
}

func (c *Client) get(url string) ([]byte, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
