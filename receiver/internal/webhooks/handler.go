package webhooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
)

var statusReasons = map[int]string{
	http.StatusOK:                  "OK",
	http.StatusBadRequest:          "Bad request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusNotFound:            "Not Found",
	http.StatusNotAcceptable:       "Not Acceptable",
	http.StatusInternalServerError: "Internal Server Error",
}

// writeResponse writes a plain-text response of the form
// "<status>: <reason>\n<detail>\n". The detail line is omitted when empty.
func writeResponse(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	body := fmt.Sprintf("%d: %s\n", status, statusReasons[status])
	if detail != "" {
		body += detail + "\n"
	}
	w.Write([]byte(body)) // nolint: errcheck
}

// Handler is an implementation of the http.Handler interface that can handle
// GitLab build webhooks by delegating to a transport-agnostic Service
// interface.
type Handler struct {
	// Service is a transport-agnostic webhook handler.
	Service Service
}

// NewHandler returns an implementation of the http.Handler interface that can
// handle GitLab build webhooks.
func NewHandler(service Service) *Handler {
	return &Handler{
		Service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}

	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		writeResponse(
			w,
			http.StatusBadRequest,
			"No room specified. Did you forget the ?room query parameter?",
		)
		return
	}

	contentType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || contentType != "application/json" {
		w.Header().Set("Accept", "application/json")
		writeResponse(w, http.StatusNotAcceptable, "")
		return
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		writeResponse(w, http.StatusBadRequest, "Request body not JSON")
		return
	}
	payload := Payload{}
	if err = json.Unmarshal(bodyBytes, &payload); err != nil {
		writeResponse(w, http.StatusBadRequest, "Request body not JSON")
		return
	}

	message, err := h.Service.Handle(r.Context(), roomID, payload)
	if err != nil {
		// Every dispatch failure is an operator-facing problem. Log the full
		// context once here; the response body carries no internal detail.
		log.Println(err)
		if errors.Is(err, ErrUnknownProject) {
			writeResponse(w, http.StatusNotFound, "No such project")
			return
		}
		detail := ""
		dispatchErr := &dispatchError{}
		if errors.As(err, &dispatchErr) {
			detail = dispatchErr.detail
		}
		writeResponse(w, http.StatusInternalServerError, detail)
		return
	}

	writeResponse(w, http.StatusOK, message)
}
