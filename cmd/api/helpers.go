// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

// envelope is the JSON wrapper used for error responses, e.g. {"error": "..."}.
// Book responses are written bare.
type envelope map[string]any

// readIDParam extracts the ":id" URL parameter added by httprouter.
// Ids are opaque to the API, so only an empty value is rejected.
func (app *applicationDependencies) readIDParam(r *http.Request) (string, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id := params.ByName("id")
	if id == "" {
		return "", errors.New("invalid id parameter")
	}
	return id, nil
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n') // Trailing newline makes curl output nicer.

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// writeNDJSON streams records as newline-delimited JSON, flushing after each
// one. The 200 status is committed with the first record, so an error before
// that still gets a proper error response. An error after that can only end
// the stream early.
//
// The stream has no length bound, so the server's write deadline is lifted
// once it starts.
func (app *applicationDependencies) writeNDJSON(w http.ResponseWriter, r *http.Request, records iter.Seq2[any, error]) {
	rc := http.NewResponseController(w)
	enc := json.NewEncoder(w)
	started := false

	start := func() {
		if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
			app.logError(r, err)
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(http.StatusOK)
		started = true
	}

	for record, err := range records {
		if err != nil {
			if !started {
				app.serverErrorResponse(w, r, err)
				return
			}
			app.logError(r, fmt.Errorf("stream aborted: %w", err))
			return
		}
		if !started {
			start()
		}
		if err := enc.Encode(record); err != nil {
			app.logError(r, err)
			return
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			app.logError(r, err)
			return
		}
	}

	// An empty collection is still a successful, empty stream.
	if !started {
		start()
	}
}

// readJSON decodes a single JSON value from the request body into dst.
// It enforces a 1 MB size limit and ensures the body contains exactly one
// JSON value (no trailing data). Keys dst has no field for are ignored.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	// Cap the request body to 1 MB to prevent large-payload attacks.
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)

	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		default:
			return err
		}
	}

	// Ensure there is no second JSON value in the body.
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}
