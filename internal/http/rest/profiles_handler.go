package rest

import (
	"net/http"

	"github.com/devtrio/wanderswipe/internal/model"
	"github.com/devtrio/wanderswipe/internal/store"
	"github.com/devtrio/wanderswipe/util"
	"github.com/devtrio/wanderswipe/util/tracing"
	"github.com/devtrio/wanderswipe/util/values"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

const maxPhotoUploadSize = 10 << 20

func (api *API) ProfileRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodGet, "/", Handler(api.GetProfiles))
	mux.Method(http.MethodPost, "/", Handler(api.UpsertProfile))
	mux.Method(http.MethodGet, "/current", Handler(api.GetCurrentProfile))
	mux.Method(http.MethodPost, "/{id}/select", Handler(api.SelectProfile))
	mux.Method(http.MethodDelete, "/{id}", Handler(api.DeleteProfile))
	mux.Method(http.MethodPost, "/photo", Handler(api.UploadProfilePhoto))
	mux.Method(http.MethodGet, "/matches", Handler(api.GetMatches))
	mux.Method(http.MethodPost, "/matches/{id}/accept", Handler(api.AcceptMatch))
	mux.Method(http.MethodPost, "/matches/{id}/reject", Handler(api.RejectMatch))

	return mux
}

func (api *API) GetProfiles(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	return &ServerResponse{
		Message:    "Profiles retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       api.Deps.Store.Profiles(),
	}
}

func (api *API) GetCurrentProfile(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	return &ServerResponse{
		Message:    "Current profile retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       api.Deps.Store.CurrentProfile(),
	}
}

func (api *API) UpsertProfile(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.UserProfile
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "validation failed", values.BadRequestBody, &tc)
	}

	profile := api.Deps.Store.AddOrUpdateProfile(req)

	return &ServerResponse{
		Message:    "Profile saved successfully",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data:       profile,
	}
}

func (api *API) SelectProfile(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	id := chi.URLParam(r, "id")
	if err := api.Deps.Store.SelectProfile(id); err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return respondWithError(err, "profile not found", values.NotFound, &tc)
		}
		return respondWithError(err, "failed to select profile", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Profile selected successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       api.Deps.Store.CurrentProfile(),
	}
}

func (api *API) DeleteProfile(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	api.Deps.Store.DeleteProfile(chi.URLParam(r, "id"))

	return &ServerResponse{
		Message:    "Profile deleted successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       api.Deps.Store.CurrentProfile(),
	}
}

// UploadProfilePhoto stores a multipart photo upload and, when a profile_id
// field is present, attaches the resulting URL to that profile.
func (api *API) UploadProfilePhoto(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	if err := r.ParseMultipartForm(maxPhotoUploadSize); err != nil {
		return respondWithError(err, "unable to parse upload", values.BadRequestBody, &tc)
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		return respondWithError(err, "photo file is required", values.BadRequestBody, &tc)
	}
	defer file.Close()

	photoURL, err := api.Deps.Cloudinary.UploadImage(r.Context(), file, "wanderswipe/profiles")
	if err != nil {
		return respondWithError(err, "failed to upload photo", values.Error, &tc)
	}

	if profileID := r.FormValue("profile_id"); profileID != "" {
		for _, p := range api.Deps.Store.Profiles() {
			if p.ID == profileID {
				p.ProfilePic = photoURL
				api.Deps.Store.AddOrUpdateProfile(p)
				break
			}
		}
	}

	return &ServerResponse{
		Message:    "Photo uploaded successfully",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data:       map[string]string{"url": photoURL},
	}
}

func (api *API) GetMatches(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	return &ServerResponse{
		Message:    "Matches retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: map[string]any{
			"matched_users":     api.Deps.Store.MatchedUsers(),
			"accepted_user_ids": api.Deps.Store.AcceptedUserIDs(),
			"rejected_user_ids": api.Deps.Store.RejectedUserIDs(),
		},
	}
}

func (api *API) AcceptMatch(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	api.Deps.Store.AcceptUser(chi.URLParam(r, "id"))

	return &ServerResponse{
		Message:    "Match accepted",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       api.Deps.Store.AcceptedUserIDs(),
	}
}

func (api *API) RejectMatch(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	api.Deps.Store.RejectUser(chi.URLParam(r, "id"))

	return &ServerResponse{
		Message:    "Match rejected",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       api.Deps.Store.RejectedUserIDs(),
	}
}
