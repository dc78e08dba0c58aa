package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devtrio/wanderswipe/config"
	"github.com/devtrio/wanderswipe/internal/cache"
	deps "github.com/devtrio/wanderswipe/internal/debs"
	"github.com/devtrio/wanderswipe/internal/model"
	"github.com/devtrio/wanderswipe/internal/store"
	"github.com/devtrio/wanderswipe/util/websockets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	dests []model.GeneratedDestination
	err   error
}

func (s *stubGenerator) GenerateDestinations(context.Context, model.GenerationRequest, int) ([]model.GeneratedDestination, error) {
	return s.dests, s.err
}

func (s *stubGenerator) GenerateRecommendations(context.Context, []string, []string) (string, error) {
	return "Try Hampi for history lovers.", nil
}

type stubPhotos struct{}

func (stubPhotos) FindPhotoReference(context.Context, string, string) (string, error) {
	return "", nil
}

func newTestAPI(t *testing.T, gen *stubGenerator) *API {
	t.Helper()

	st := store.New(cache.NewMemory(), gen, stubPhotos{})
	st.Load(context.Background())

	return &API{
		Config: &config.Config{Port: 0},
		Deps: &deps.Dependencies{
			Store:     st,
			WebSocket: websockets.NewWebSocketManager(),
		},
	}
}

func doRequest(t *testing.T, api *API, method, path string, body any) (*httptest.ResponseRecorder, ServerResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	api.setUpServerHandler().ServeHTTP(rec, req)

	var resp ServerResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestGetDestinationsReturnsSeedDeck(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})

	rec, resp := doRequest(t, api, http.MethodGet, "/destinations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", resp.Status)

	var dests []model.Destination
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &dests))
	assert.Len(t, dests, 10)
}

func TestSwipeRecordsLike(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})
	target := api.Deps.Store.Destinations()[0]

	rec, _ := doRequest(t, api, http.MethodPost, "/destinations/swipe", model.SwipeAction{
		DestinationID: target.ID,
		Action:        "like",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	liked := api.Deps.Store.LikedDestinations()
	require.Len(t, liked, 1)
	assert.Equal(t, target.ID, liked[0].ID)
	assert.Equal(t, 1, api.Deps.Store.SwipeCount())
}

func TestSwipeRejectsUnknownAction(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})

	rec, resp := doRequest(t, api, http.MethodPost, "/destinations/swipe", model.SwipeAction{
		DestinationID: 1,
		Action:        "superlike",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation failed", resp.Message)
}

func TestSwipeUnknownDestination(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})

	rec, _ := doRequest(t, api, http.MethodPost, "/destinations/swipe", model.SwipeAction{
		DestinationID: 999999,
		Action:        "like",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateDestinations(t *testing.T) {
	gen := &stubGenerator{dests: []model.GeneratedDestination{
		{
			Name:        "Elephanta Caves",
			Description: "Rock-cut cave temples on an island near Mumbai.",
			Tags:        []string{"Historic"},
			Location:    model.Location{City: "Mumbai", Country: "India"},
		},
	}}
	api := newTestAPI(t, gen)

	rec, resp := doRequest(t, api, http.MethodPost, "/destinations/generate", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "created", resp.Status)
	assert.Len(t, api.Deps.Store.Destinations(), 11)
}

func TestGenerateDestinationsCooldown(t *testing.T) {
	gen := &stubGenerator{dests: []model.GeneratedDestination{
		{
			Name:        "Elephanta Caves",
			Description: "d",
			Tags:        []string{"Historic"},
			Location:    model.Location{City: "Mumbai", Country: "India"},
		},
	}}
	api := newTestAPI(t, gen)

	rec, _ := doRequest(t, api, http.MethodPost, "/destinations/generate", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := doRequest(t, api, http.MethodPost, "/destinations/generate", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Please wait 15 seconds between generations to avoid rate limits.", resp.Message)
}

func TestFiltersRoundTrip(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})

	filters := model.DefaultFilters()
	filters.Locations = []string{"Goa"}
	filters.PlaceTypes = []string{"Beach"}

	rec, _ := doRequest(t, api, http.MethodPut, "/destinations/filters", filters)
	require.Equal(t, http.StatusOK, rec.Code)

	_, resp := doRequest(t, api, http.MethodGet, "/destinations/filters", nil)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var got model.ActiveFilters
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, []string{"Goa"}, got.Locations)
	assert.Equal(t, []string{"Beach"}, got.PlaceTypes)

	// The visible deck now honors the new filters.
	_, resp = doRequest(t, api, http.MethodGet, "/destinations", nil)
	raw, err = json.Marshal(resp.Data)
	require.NoError(t, err)
	var dests []model.Destination
	require.NoError(t, json.Unmarshal(raw, &dests))
	for _, d := range dests {
		assert.Equal(t, "Goa", d.Location.City)
	}
}

func TestGetRecommendations(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})

	rec, resp := doRequest(t, api, http.MethodGet, "/destinations/recommendations", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Try Hampi for history lovers.", data["recommendations"])
}

func TestProfileLifecycleOverHTTP(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})

	rec, resp := doRequest(t, api, http.MethodPost, "/profiles", model.UserProfile{Name: "Alex", Age: 30})
	require.Equal(t, http.StatusCreated, rec.Code)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var created model.UserProfile
	require.NoError(t, json.Unmarshal(raw, &created))
	require.NotEmpty(t, created.ID)

	rec, _ = doRequest(t, api, http.MethodPost, "/profiles/"+created.ID+"/select", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alex", api.Deps.Store.CurrentProfile().Name)

	rec, _ = doRequest(t, api, http.MethodPost, "/profiles/no-such-id/select", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, api, http.MethodDelete, "/profiles/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, created.ID, api.Deps.Store.CurrentProfile().ID)
}

func TestUpsertProfileRequiresName(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})

	rec, _ := doRequest(t, api, http.MethodPost, "/profiles", model.UserProfile{Age: 30})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClearCacheResetsDeck(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})
	target := api.Deps.Store.Destinations()[0]

	doRequest(t, api, http.MethodPost, "/destinations/swipe", model.SwipeAction{DestinationID: target.ID, Action: "like"})
	require.Len(t, api.Deps.Store.LikedDestinations(), 1)

	rec, _ := doRequest(t, api, http.MethodDelete, "/destinations/cache", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, api.Deps.Store.LikedDestinations())
	assert.Len(t, api.Deps.Store.Destinations(), 10)
}

func TestProxyImageRequiresReference(t *testing.T) {
	api := newTestAPI(t, &stubGenerator{})
	api.Deps.Places = nil

	req := httptest.NewRequest(http.MethodGet, "/images/proxy", nil)
	rec := httptest.NewRecorder()
	api.setUpServerHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
