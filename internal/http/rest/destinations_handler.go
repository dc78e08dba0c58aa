package rest

import (
	"io"
	"net/http"

	"github.com/devtrio/wanderswipe/internal/http/mistral"
	"github.com/devtrio/wanderswipe/internal/model"
	"github.com/devtrio/wanderswipe/internal/store"
	"github.com/devtrio/wanderswipe/util"
	"github.com/devtrio/wanderswipe/util/tracing"
	"github.com/devtrio/wanderswipe/util/values"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

func (api *API) DestinationRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodGet, "/", Handler(api.GetDestinations))
	mux.Method(http.MethodPost, "/generate", Handler(api.GenerateDestinations))
	mux.Method(http.MethodPost, "/swipe", Handler(api.SwipeDestination))
	mux.Method(http.MethodGet, "/liked", Handler(api.GetLikedDestinations))
	mux.Method(http.MethodGet, "/saved", Handler(api.GetSavedDestinations))
	mux.Method(http.MethodGet, "/recommendations", Handler(api.GetRecommendations))
	mux.Method(http.MethodGet, "/filters", Handler(api.GetFilters))
	mux.Method(http.MethodPut, "/filters", Handler(api.UpdateFilters))
	mux.Method(http.MethodDelete, "/cache", Handler(api.ClearCache))

	return mux
}

// GetDestinations returns the swipeable deck filtered by the active
// filters, or the full list when ?all=true.
func (api *API) GetDestinations(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	var destinations []model.Destination
	if r.URL.Query().Get("all") == "true" {
		destinations = api.Deps.Store.Destinations()
	} else {
		destinations = api.Deps.Store.VisibleDestinations()
	}

	return &ServerResponse{
		Message:    "Destinations retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       destinations,
	}
}

type generateRequest struct {
	Filters *model.ActiveFilters `json:"filters,omitempty"`
}

func (api *API) GenerateDestinations(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req generateRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	added, err := api.Deps.Store.GenerateNewDestinations(r.Context(), req.Filters)
	if err != nil {
		message := api.Deps.Store.GenerationError()
		if message == "" {
			message = "Failed to generate destinations. Please try again."
		}

		status := values.Error
		switch {
		case errors.Is(err, store.ErrCooldownActive), errors.Is(err, mistral.ErrRateLimited):
			status = values.TooManyRequests
		case errors.Is(err, store.ErrGenerationInProgress):
			status = values.Conflict
		case errors.Is(err, store.ErrNoNewDestinations):
			status = values.Unprocessable
		case errors.Is(err, mistral.ErrInvalidAPIKey), errors.Is(err, mistral.ErrMissingAPIKey):
			status = values.BadGateway
		}
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    "Destinations generated successfully",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data:       added,
	}
}

func (api *API) SwipeDestination(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.SwipeAction
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "validation failed", values.BadRequestBody, &tc)
	}

	dest, ok := api.Deps.Store.DestinationByID(req.DestinationID)
	if !ok {
		return respondWithError(nil, "destination not found", values.NotFound, &tc)
	}

	switch req.Action {
	case "like":
		api.Deps.Store.LikeDestination(dest)
	case "save":
		api.Deps.Store.SaveDestination(dest)
	case "dislike":
		api.Deps.Store.DislikeDestination(dest)
	}

	match := api.Deps.Store.IncrementSwipeCount()

	return &ServerResponse{
		Message:    "Swipe recorded successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: map[string]any{
			"swipe_count": api.Deps.Store.SwipeCount(),
			"match":       match,
		},
	}
}

func (api *API) GetLikedDestinations(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	return &ServerResponse{
		Message:    "Liked destinations retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       api.Deps.Store.LikedDestinations(),
	}
}

func (api *API) GetSavedDestinations(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	return &ServerResponse{
		Message:    "Saved destinations retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       api.Deps.Store.SavedDestinations(),
	}
}

func (api *API) GetRecommendations(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	recommendations := api.Deps.Store.GetPersonalizedRecommendations(r.Context())

	return &ServerResponse{
		Message:    "Recommendations retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       map[string]string{"recommendations": recommendations},
	}
}

func (api *API) GetFilters(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	return &ServerResponse{
		Message:    "Filters retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       api.Deps.Store.ActiveFilters(),
	}
}

func (api *API) UpdateFilters(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.ActiveFilters
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	api.Deps.Store.SetActiveFilters(req)

	return &ServerResponse{
		Message:    "Filters updated successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       api.Deps.Store.ActiveFilters(),
	}
}

// ClearCache wipes all persisted state and rebuilds the initial deck.
func (api *API) ClearCache(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	api.Deps.Store.ClearCache()
	api.Deps.Store.Load(r.Context())

	return &ServerResponse{
		Message:    "Cache cleared successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}
