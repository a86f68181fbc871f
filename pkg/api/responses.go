package api

import (
	"errors"
	"net/http"

	"github.com/cubahno/schemock/pkg/mocker"
	"github.com/cubahno/schemock/pkg/schema"
)

// ErrorResponse is the body of every failed request.
// Data carries the offending value when generated output fails validation.
type ErrorResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// MockResponse is the body of a successful mock request.
type MockResponse struct {
	Data []any `json:"data"`
}

// GeneratorsResponse lists the custom generator names.
type GeneratorsResponse struct {
	Generators []string `json:"generators"`
}

var badRequestErrors = []error{
	mocker.ErrInvalidConfig,
	mocker.ErrNilSchema,
	mocker.ErrUnknownGenerator,
	mocker.ErrPathConflict,
	mocker.ErrInvalidCount,
	schema.ErrUnsupportedSchema,
	ErrInvalidRequest,
}

// errorStatus maps generation errors to HTTP status codes.
func errorStatus(err error) int {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
