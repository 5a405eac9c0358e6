package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMarshalJSON(t *testing.T) {
	tests := []struct {
		name             string
		err              *AppError
		expectedCode     string
		expectedCategory string
		expectedStatus   int
	}{
		{
			name:             "validation error",
			err:              NewValidationError("limit must be an integer"),
			expectedCode:     "VALIDATION_ERROR",
			expectedCategory: "validation",
			expectedStatus:   http.StatusBadRequest,
		},
		{
			name:             "validation error with field map",
			err:              NewValidationErrorWithMap(map[string]string{"material_impact.co2": "must be in [0,100], got 150"}),
			expectedCode:     "VALIDATION_ERROR",
			expectedCategory: "validation",
			expectedStatus:   http.StatusBadRequest,
		},
		{
			name:             "not found error",
			err:              NewNotFoundError("product", "abc-123"),
			expectedCode:     "NOT_FOUND",
			expectedCategory: "not_found",
			expectedStatus:   http.StatusNotFound,
		},
		{
			name:             "rate limit error",
			err:              NewRateLimitError("60"),
			expectedCode:     "RATE_LIMIT_EXCEEDED",
			expectedCategory: "rate_limit",
			expectedStatus:   http.StatusTooManyRequests,
		},
		{
			name:             "timeout error without cause",
			err:              NewTimeoutError("request timed out", nil),
			expectedCode:     "TIMEOUT_ERROR",
			expectedCategory: "timeout",
			expectedStatus:   http.StatusGatewayTimeout,
		},
		{
			name:             "internal error without cause",
			err:              NewInternalError("something broke", nil),
			expectedCode:     "INTERNAL_ERROR",
			expectedCategory: "internal",
			expectedStatus:   http.StatusInternalServerError,
		},
		{
			name:             "configuration error without cause",
			err:              NewConfigurationError("missing data dir", nil),
			expectedCode:     "CONFIGURATION_ERROR",
			expectedCategory: "configuration",
			expectedStatus:   http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.err)
			require.NoError(t, err, "error responses must always marshal")

			var payload map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &payload))

			assert.Equal(t, tt.expectedCode, payload["code"])
			assert.Equal(t, tt.expectedCategory, payload["category"])
			assert.Equal(t, float64(tt.expectedStatus), payload["http_status"])
			assert.NotEmpty(t, payload["message"])
		})
	}
}

func TestAppErrorMarshalJSON_FieldDetails(t *testing.T) {
	appErr := NewValidationErrorWithMap(map[string]string{
		"material_impact.co2": "must be in [0,100], got 150",
		"certification_bonus": "must be non-negative, got -2",
	})

	data, err := json.Marshal(appErr)
	require.NoError(t, err)

	var payload struct {
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))

	assert.Equal(t, "must be in [0,100], got 150", payload.Details["material_impact.co2"])
	assert.Equal(t, "must be non-negative, got -2", payload.Details["certification_bonus"])
}

func TestNotFoundErrorDetails(t *testing.T) {
	appErr := NewNotFoundError("product", "abc-123")

	data, err := json.Marshal(appErr)
	require.NoError(t, err)

	var payload struct {
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))

	assert.Equal(t, "product", payload.Details["resource"])
	assert.Equal(t, "abc-123", payload.Details["id"])
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name             string
		input            error
		expectedCategory ErrorCategory
		expectedStatus   int
	}{
		{
			name:             "app error passes through",
			input:            NewValidationError("bad input"),
			expectedCategory: CategoryValidation,
			expectedStatus:   http.StatusBadRequest,
		},
		{
			name:             "json syntax error becomes validation",
			input:            json.Unmarshal([]byte(`{"x": `), &struct{}{}),
			expectedCategory: CategoryValidation,
			expectedStatus:   http.StatusBadRequest,
		},
		{
			name:             "unknown error becomes internal",
			input:            assert.AnError,
			expectedCategory: CategoryInternal,
			expectedStatus:   http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ToAppError(tt.input)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.expectedCategory, appErr.Category)
			assert.Equal(t, tt.expectedStatus, appErr.HTTPStatus)

			_, err := json.Marshal(appErr)
			assert.NoError(t, err)
		})
	}
}
