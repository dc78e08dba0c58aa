package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/devtrio/wanderswipe/internal/model"
	"github.com/devtrio/wanderswipe/util"
	"github.com/pkg/errors"
)

const (
	defaultBaseURL         = "https://api.mistral.ai/v1"
	defaultModel           = "mistral-small"
	defaultRequestInterval = 2 * time.Second
	defaultMaxRetries      = 2
	defaultBaseDelay       = 1 * time.Second
	defaultMaxJitter       = 1 * time.Second

	destinationMaxTokens    = 1000
	recommendationMaxTokens = 300

	// Only the most recent existing names are sent as dedup guidance,
	// keeping the prompt bounded.
	existingNamesWindow = 15
)

var (
	ErrMissingAPIKey = errors.New("no Mistral API key configured")
	ErrInvalidAPIKey = errors.New("Invalid API key")
	ErrRateLimited   = errors.New("Rate limit exceeded")
	ErrParseFailure  = errors.New("failed to parse AI response as valid JSON array")
)

// APIError covers non-2xx statuses that are neither 401 nor 429.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mistral API error: status code %d", e.StatusCode)
}

// Client handles communication with the Mistral chat-completion API. A single
// instance is shared process-wide; its request pacing serializes effective
// request rate across all callers.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	Client  *http.Client

	// Pacing and retry knobs, exported so tests can tighten them.
	RequestInterval time.Duration
	MaxRetries      int
	BaseDelay       time.Duration
	MaxJitter       time.Duration

	mu   sync.Mutex
	next time.Time
}

// NewClient creates a new client instance.
// apiKey should be loaded securely (e.g., from environment variable)
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		log.Println("Warning: Mistral API key is empty. AI generation will not work.")
	}
	return &Client{
		APIKey:          apiKey,
		BaseURL:         defaultBaseURL,
		Model:           defaultModel,
		Client:          &http.Client{Timeout: 30 * time.Second},
		RequestInterval: defaultRequestInterval,
		MaxRetries:      defaultMaxRetries,
		BaseDelay:       defaultBaseDelay,
		MaxJitter:       defaultMaxJitter,
	}
}

// waitForRateLimit reserves the next dispatch slot and sleeps until it is
// reached, so two back-to-back calls are always at least RequestInterval
// apart even when issued from concurrent goroutines.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	c.mu.Lock()
	start := time.Now()
	if start.Before(c.next) {
		start = c.next
	}
	c.next = start.Add(c.RequestInterval)
	c.mu.Unlock()

	wait := time.Until(start)
	if wait <= 0 {
		return nil
	}
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retryWithBackoff runs op up to MaxRetries times, applying the rate-limit
// wait before each attempt. Only a rate-limited failure is retried; any
// other error aborts immediately.
func (c *Client) retryWithBackoff(ctx context.Context, op func() error) error {
	var lastErr error
	for attempt := 0; attempt < c.MaxRetries; attempt++ {
		if err := c.waitForRateLimit(ctx); err != nil {
			return err
		}

		lastErr = op()
		if lastErr == nil {
			return nil
		}

		isLastAttempt := attempt == c.MaxRetries-1
		if errors.Is(lastErr, ErrRateLimited) && !isLastAttempt {
			delay := c.BaseDelay * time.Duration(1<<attempt)
			if c.MaxJitter > 0 {
				delay += time.Duration(rand.Int63n(int64(c.MaxJitter)))
			}
			log.Printf("Rate limit hit, retrying in %v...", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		return lastErr
	}
	return lastErr
}

// --- Chat Completion Structures ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// completion sends one chat-completion request and returns the raw content
// of the first choice.
func (c *Client) completion(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	payload := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "marshalling chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "creating chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "executing chat request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading chat response body")
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Mistral API error: status %d, body: %s", resp.StatusCode, string(respBody))
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return "", ErrInvalidAPIKey
		case http.StatusTooManyRequests:
			return "", ErrRateLimited
		default:
			return "", &APIError{StatusCode: resp.StatusCode}
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.Wrap(err, "decoding chat response")
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("chat response contained no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

const destinationSystemPrompt = "You are a travel expert. Return only a valid JSON array of travel destinations. " +
	"No text or explanation outside the JSON. Ensure all destinations are in the specified locations only."

// GenerateDestinations produces a validated, filtered, size-bounded batch of
// destination candidates for the given constraints.
func (c *Client) GenerateDestinations(ctx context.Context, req model.GenerationRequest, count int) ([]model.GeneratedDestination, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var result []model.GeneratedDestination
	err := c.retryWithBackoff(ctx, func() error {
		prompt := destinationPrompt(req, count)

		content, err := c.completion(ctx, destinationSystemPrompt, prompt, destinationMaxTokens)
		if err != nil {
			return err
		}

		parsed, err := parseDestinationArray(content)
		if err != nil {
			return err
		}

		filtered := strictLocationFilter(parsed, req.Locations)
		if len(filtered) > count {
			filtered = filtered[:count]
		}
		result = filtered
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

const recommendationSystemPrompt = "You are a helpful travel advisor. Provide personalized, friendly recommendations."

// GenerateRecommendations returns free-text travel advice based on liked
// destinations and categories of interest. The raw response is the result;
// no JSON parsing applies.
func (c *Client) GenerateRecommendations(ctx context.Context, likedDestinations, categories []string) (string, error) {
	if c.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	prompt := fmt.Sprintf(
		"Based on these liked destinations: %s and interests in %s, provide 3-4 personalized travel recommendations. Keep it conversational and helpful.",
		strings.Join(likedDestinations, ", "), strings.Join(categories, ", "))

	var result string
	err := c.retryWithBackoff(ctx, func() error {
		content, err := c.completion(ctx, recommendationSystemPrompt, prompt, recommendationMaxTokens)
		if err != nil {
			return err
		}
		result = content
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// strictLocationFilter keeps only destinations whose city exactly matches
// one of the requested cities, compared case-insensitively. An empty filter
// list passes everything through.
func strictLocationFilter(destinations []model.GeneratedDestination, locations []string) []model.GeneratedDestination {
	if len(locations) == 0 {
		return destinations
	}

	filtered := make([]model.GeneratedDestination, 0, len(destinations))
	for _, dest := range destinations {
		city := strings.TrimSpace(dest.Location.City)
		if city == "" {
			log.Printf("Rejected destination %q - missing city information", dest.Name)
			continue
		}
		if util.ContainsFold(locations, city) {
			filtered = append(filtered, dest)
		}
	}
	return filtered
}
