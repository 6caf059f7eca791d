package httputil

import (
	"encoding/json"
	"net/http"
	"strconv"

	errs "github.com/matzehuels/collabgraph/pkg/errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// WriteError writes err as an [ErrorBody]. Errors without a code are
// reported as INTERNAL_ERROR.
func WriteError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	WriteJSON(w, errs.HTTPStatus(code), ErrorBody{Code: code, Message: errs.UserMessage(err)})
}

// QueryInt returns the integer query parameter name, or def when absent.
// A value that is not an integer is an INVALID_INPUT error.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidInput, "query parameter %s must be an integer, got %q", name, raw)
	}
	return n, nil
}
