package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gamewatchr/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "gamewatchr"
	internalMessage  = "internal server error"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorClass struct {
	sentinel   error
	httpStatus int
	reason     string
	status     string
}

// errorClasses is checked in order; the first sentinel in the chain wins.
var errorClasses = []errorClass{
	{usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
	{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"},
	{usecase.ErrNotFound, http.StatusNotFound, "notFound", "NOT_FOUND"},
	{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
	{usecase.ErrStorageUnavailable, http.StatusServiceUnavailable, "storageUnavailable", "UNAVAILABLE"},
}

var internalClass = errorClass{httpStatus: http.StatusInternalServerError, reason: "internalError", status: "INTERNAL"}

func classify(err error) errorClass {
	for _, c := range errorClasses {
		if errors.Is(err, c.sentinel) {
			return c
		}
	}
	return internalClass
}

func writeJSON(w http.ResponseWriter, status int, payload googleResponseEnvelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, googleResponseEnvelope{APIVersion: googleAPIVersion, Data: data})
}

// writeError maps err onto its class. Unclassified errors are reported as a
// generic internal error so their text never reaches the client.
func writeError(_ context.Context, w http.ResponseWriter, err error) {
	class := classify(err)
	message := internalMessage
	if class != internalClass {
		message = err.Error()
	}
	writeClassified(w, class, message)
}

func writeInternalError(_ context.Context, w http.ResponseWriter) {
	writeClassified(w, internalClass, internalMessage)
}

func writeClassified(w http.ResponseWriter, class errorClass, message string) {
	writeJSON(w, class.httpStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    class.httpStatus,
			Message: message,
			Status:  class.status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: class.reason, Message: message}},
		},
	})
}
