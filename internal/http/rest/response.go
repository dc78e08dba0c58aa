package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/devtrio/wanderswipe/util"
	"github.com/devtrio/wanderswipe/util/tracing"
)

type ServerResponse struct {
	Message    string `json:"message"`
	Status     string `json:"status"`
	StatusCode int    `json:"-"`
	Data       any    `json:"data,omitempty"`
}

func writeJSONResponse(w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

func writeErrorResponse(w http.ResponseWriter, err error, status string, message string) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}

	resp := ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
	body, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		http.Error(w, message, http.StatusInternalServerError)
		return
	}
	writeJSONResponse(w, body, resp.StatusCode)
}

func respondWithError(err error, message string, status string, tc *tracing.Context) *ServerResponse {
	if err != nil {
		log.Printf("[%s]: %s: %v", tc.RequestID, message, err)
	} else {
		log.Printf("[%s]: %s", tc.RequestID, message)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}
