package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// MessageResponse acknowledges a successful write
type MessageResponse struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// SendJSON writes data as a JSON body with the given status
func SendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// SendError writes an ErrorResponse with the given status
func SendError(w http.ResponseWriter, status int, message, details string) {
	SendJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// sendFailure maps a request failure onto a response: oversized bodies are
// 413, everything else is a 400 labelled with message.
func sendFailure(w http.ResponseWriter, message string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		SendError(w, http.StatusRequestEntityTooLarge, "Payload too large",
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}
	SendError(w, http.StatusBadRequest, message, err.Error())
}

func isFormRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/x-www-form-urlencoded"
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	// The body must hold exactly one value
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errors.New("invalid JSON: unexpected data after top-level value")
	}
	return nil
}

// formValues returns every value submitted for field, accepting both the
// plain and the bracketed array spelling.
func formValues(r *http.Request, field string) []string {
	values := append([]string{}, r.PostForm[field]...)
	return append(values, r.PostForm[field+"[]"]...)
}
