package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	nonstandard "github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/taskboards/boards/internal/errors"
	"github.com/taskboards/boards/internal/logger"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the "notblank" tag registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("notblank", nonstandard.NotBlank); err != nil {
			panic(err)
		}
	})
	return validate
}

// WriteErrorAndStatusCode writes only the status carried by err; errors
// are never enumerated to the caller. Unknown errors are logged and become 500.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	code := errors.StatusCode(err)
	if code == http.StatusInternalServerError {
		logger.Log.Error("internal error", "error", err)
	}
	w.WriteHeader(code)
}

// DecodeValidate decodes a JSON body and validates it against its struct tags.
// Malformed JSON is a 400, failed validation a 422.
func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	if err := Validator().Struct(body); err != nil {
		logger.Log.Debug("request validation failed", "error", err)
		return errors.ErrValidationFailed
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("request body is not json", "error", err)
		return errors.ErrBadRequest
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding response", "error", err)
	}
}
