package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// Photo lookups are best-effort; anything slower than this degrades to
	// the placeholder image.
	lookupTimeout = 5 * time.Second
)

// Client handles communication with the Google Places API, used only to
// resolve a representative photo for a destination.
type Client struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// NewClient creates a new client instance.
// apiKey should be loaded securely (e.g., from environment variable)
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		log.Println("Warning: Google Places API key is empty. Destination photos will use placeholders.")
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type textSearchParams struct {
	Query string `url:"query"`
	Key   string `url:"key"`
}

type textSearchResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Results      []struct {
		PlaceID string `json:"place_id"`
		Photos  []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
}

// FindPhotoReference looks up a place by name and city and returns the
// photo_reference of its first photo. An empty string with a nil error means
// the lookup succeeded but no photo exists; the caller substitutes a
// placeholder either way.
func (c *Client) FindPhotoReference(ctx context.Context, placeName, city string) (string, error) {
	if c.APIKey == "" {
		return "", errors.New("google places API key is not set")
	}

	params, err := query.Values(textSearchParams{
		Query: fmt.Sprintf("%s, %s, India", placeName, city),
		Key:   c.APIKey,
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding text search params")
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	fullURL := fmt.Sprintf("%s/textsearch/json?%s", c.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "creating text search request")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "executing text search request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", errors.Errorf("text search failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var search textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return "", errors.Wrap(err, "decoding text search response")
	}
	if search.Status != "OK" || len(search.Results) == 0 {
		return "", errors.Errorf("text search returned status %s: %s", search.Status, search.ErrorMessage)
	}

	if len(search.Results[0].Photos) == 0 {
		log.Printf("No photos in first result for: %s", placeName)
		return "", nil
	}
	return search.Results[0].Photos[0].PhotoReference, nil
}

type photoParams struct {
	MaxWidth       string `url:"maxwidth"`
	PhotoReference string `url:"photoreference"`
	Key            string `url:"key"`
}

// FetchPhoto streams the actual photo bytes for a photo_reference. The
// caller owns the returned body.
func (c *Client) FetchPhoto(ctx context.Context, photoReference, maxWidth string) (io.ReadCloser, string, error) {
	if c.APIKey == "" {
		return nil, "", errors.New("google places API key is not set")
	}

	params, err := query.Values(photoParams{
		MaxWidth:       maxWidth,
		PhotoReference: photoReference,
		Key:            c.APIKey,
	})
	if err != nil {
		return nil, "", errors.Wrap(err, "encoding photo params")
	}

	fullURL := fmt.Sprintf("%s/photo?%s", c.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, "", errors.Wrap(err, "creating photo request")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, "", errors.Wrap(err, "executing photo request")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, "", errors.Errorf("photo fetch failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return resp.Body, contentType, nil
}
