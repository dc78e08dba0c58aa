package mistral

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/devtrio/wanderswipe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	require.NoError(t, err)
	return body
}

// testClient returns a client pointed at url with pacing and backoff
// tightened so tests run fast.
func testClient(url string) *Client {
	c := NewClient("test-key")
	c.BaseURL = url
	c.RequestInterval = 0
	c.BaseDelay = 10 * time.Millisecond
	c.MaxJitter = 5 * time.Millisecond
	return c
}

func TestGenerateDestinationsStrictLocationFilter(t *testing.T) {
	content := `[
		{"name":"X","description":"d","tags":["t"],"location":{"city":"Pune","country":"India"}},
		{"name":"Y","description":"d","tags":["t"],"location":{"city":"Mumbai","country":"India"}}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatBody(t, content))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	got, err := client.GenerateDestinations(context.Background(), model.GenerationRequest{Locations: []string{"Mumbai"}}, 8)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Y", got[0].Name)
}

func TestGenerateDestinationsDropsInvalidElements(t *testing.T) {
	content := `[
		{"name":"No Tags","description":"d","tags":[],"location":{"city":"Mumbai","country":"India"}},
		{"name":"No City","description":"d","tags":["t"],"location":{"country":"India"}},
		{"name":"  ","description":"d","tags":["t"],"location":{"city":"Mumbai","country":"India"}},
		{"name":"Good","description":"d","tags":["t"],"location":{"city":"Mumbai","country":"India"}}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatBody(t, content))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	got, err := client.GenerateDestinations(context.Background(), model.GenerationRequest{Locations: []string{"Mumbai"}}, 8)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Good", got[0].Name)
}

func TestGenerateDestinationsCleansWrappedJSON(t *testing.T) {
	content := "```json\n[{\"name\":\"A\",\"description\":\"d\",\"tags\":[\"x\"],\"location\":{\"city\":\"Mumbai\",\"country\":\"India\"},},]\n```"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatBody(t, content))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	got, err := client.GenerateDestinations(context.Background(), model.GenerationRequest{Locations: []string{"Mumbai"}}, 8)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, []string{"x"}, got[0].Tags)
}

func TestGenerateDestinationsParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatBody(t, "I could not come up with anything today, sorry."))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.GenerateDestinations(context.Background(), model.GenerationRequest{}, 8)
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestGenerateDestinationsTruncatesToCount(t *testing.T) {
	dests := make([]map[string]any, 6)
	for i := range dests {
		dests[i] = map[string]any{
			"name":        string(rune('A' + i)),
			"description": "d",
			"tags":        []string{"t"},
			"location":    map[string]string{"city": "Mumbai", "country": "India"},
		}
	}
	raw, err := json.Marshal(dests)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatBody(t, string(raw)))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	got, err := client.GenerateDestinations(context.Background(), model.GenerationRequest{Locations: []string{"Mumbai"}}, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestGenerateDestinationsMissingAPIKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	client.APIKey = ""
	_, err := client.GenerateDestinations(context.Background(), model.GenerationRequest{}, 8)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, calls)
}

func TestGenerateDestinationsInvalidAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.GenerateDestinations(context.Background(), model.GenerationRequest{}, 8)
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
}

func TestGenerateDestinationsDoesNotRetryServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.GenerateDestinations(context.Background(), model.GenerationRequest{}, 8)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestGenerateDestinationsRetriesRateLimit(t *testing.T) {
	content := `[{"name":"A","description":"d","tags":["t"],"location":{"city":"Mumbai","country":"India"}}]`

	var mu sync.Mutex
	var attempts []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts = append(attempts, time.Now())
		n := len(attempts)
		mu.Unlock()

		if n == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(chatBody(t, content))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	client.BaseDelay = 50 * time.Millisecond
	client.MaxJitter = 0

	got, err := client.GenerateDestinations(context.Background(), model.GenerationRequest{Locations: []string{"Mumbai"}}, 8)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, attempts, 2)
	assert.GreaterOrEqual(t, attempts[1].Sub(attempts[0]), client.BaseDelay)
}

func TestGenerateDestinationsRateLimitOnFinalAttempt(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.GenerateDestinations(context.Background(), model.GenerationRequest{}, 8)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, client.MaxRetries, calls)
}

func TestRequestPacingBetweenCalls(t *testing.T) {
	content := `[{"name":"A","description":"d","tags":["t"],"location":{"city":"Mumbai","country":"India"}}]`

	var mu sync.Mutex
	var dispatches []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		dispatches = append(dispatches, time.Now())
		mu.Unlock()
		w.Write(chatBody(t, content))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	client.RequestInterval = 200 * time.Millisecond

	ctx := context.Background()
	req := model.GenerationRequest{Locations: []string{"Mumbai"}}
	_, err := client.GenerateDestinations(ctx, req, 1)
	require.NoError(t, err)
	_, err = client.GenerateDestinations(ctx, req, 1)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, dispatches, 2)
	assert.GreaterOrEqual(t, dispatches[1].Sub(dispatches[0]), client.RequestInterval)
}

func TestGenerateRecommendations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, recommendationMaxTokens, req.MaxTokens)
		w.Write(chatBody(t, "Try the beaches of Goa next."))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	got, err := client.GenerateRecommendations(context.Background(), []string{"Baga Beach"}, []string{"Beach"})
	require.NoError(t, err)
	assert.Equal(t, "Try the beaches of Goa next.", got)
}

func TestAggressiveCleanJSON(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"code fence", "```json\n[{\"name\":\"A\"}]\n```"},
		{"leading prose", "Here are your destinations:\n[{\"name\":\"A\"}]"},
		{"trailing comma", `[{"name":"A",},]`},
		{"surrounding text", "sure!\n[{\"name\":\"A\"}]\nenjoy"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cleaned := aggressiveCleanJSON(tc.content)
			var parsed []map[string]any
			require.NoError(t, json.Unmarshal([]byte(cleaned), &parsed))
			require.Len(t, parsed, 1)
			assert.Equal(t, "A", parsed[0]["name"])
		})
	}
}

func TestNormalizeDestinationDefaults(t *testing.T) {
	var r rawDestination
	require.NoError(t, json.Unmarshal([]byte(`{"tags":"not-an-array"}`), &r))

	dest := normalizeDestination(r)
	assert.Equal(t, "Unnamed Place", dest.Name)
	assert.Equal(t, "A wonderful place to visit", dest.Description)
	assert.Equal(t, []string{"Cultural", "Local"}, dest.Tags)
	assert.Equal(t, "India", dest.Location.Country)
	assert.Empty(t, dest.Location.City)
}
