package rest

import (
	"io"
	"log"
	"net/http"

	"github.com/devtrio/wanderswipe/util/values"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

const defaultProxyMaxWidth = "800"

func (api *API) ImageRoutes() chi.Router {
	mux := chi.NewRouter()
	mux.Get("/proxy", api.ProxyImage)
	return mux
}

// ProxyImage streams a place photo to the browser so the photo API key
// never reaches the client. Responses bypass the JSON envelope.
func (api *API) ProxyImage(w http.ResponseWriter, r *http.Request) {
	photoReference := r.URL.Query().Get("photoReference")
	if photoReference == "" {
		writeErrorResponse(w, errors.New("photoReference query parameter is required"), values.BadRequestBody, "photoReference query parameter is required")
		return
	}

	maxWidth := r.URL.Query().Get("maxWidth")
	if maxWidth == "" {
		maxWidth = defaultProxyMaxWidth
	}

	body, contentType, err := api.Deps.Places.FetchPhoto(r.Context(), photoReference, maxWidth)
	if err != nil {
		writeErrorResponse(w, err, values.BadGateway, "failed to fetch photo")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, body); err != nil {
		log.Printf("Error streaming photo: %v", err)
	}
}
