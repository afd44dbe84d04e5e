package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pribylovaa/go-catalog-service/internal/service"
	"github.com/pribylovaa/go-catalog-service/internal/storage"

	"github.com/stretchr/testify/require"
)

func TestToHTTP_Mapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"empty_name", service.ErrEmptyName, http.StatusBadRequest, "bad_request"},
		{"invalid_email", service.ErrInvalidEmail, http.StatusBadRequest, "bad_request"},
		{"weak_password", service.ErrWeakPassword, http.StatusBadRequest, "bad_request"},
		{"email_taken", service.ErrEmailTaken, http.StatusBadRequest, "bad_request"},
		{"product_fields", service.ErrProductFields, http.StatusBadRequest, "bad_request"},
		{"invalid_credentials", service.ErrInvalidCredentials, http.StatusBadRequest, "bad_request"},
		{"bad_request", ErrBadRequest, http.StatusBadRequest, "bad_request"},
		{"invalid_token", service.ErrInvalidToken, http.StatusUnauthorized, "unauthenticated"},
		{"invalid_refresh", service.ErrInvalidRefreshToken, http.StatusUnauthorized, "unauthenticated"},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"not_found", storage.ErrNotFound, http.StatusNotFound, "not_found"},
		{"unknown", errors.New("pg: connection refused"), http.StatusInternalServerError, "internal"},
		{"nil", nil, http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		status, resp := ToHTTP(tc.err)
		require.Equal(t, tc.wantStatus, status, tc.name)
		require.Equal(t, tc.wantCode, resp.Error.Code, tc.name)
	}
}

// Обёрнутая по пути "op: op: err" доменная ошибка маппится по корню,
// а в message уходит текст корня — без op-префиксов.
func TestToHTTP_UnwrapsOpChain(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("service.RegisterUser: %w",
		fmt.Errorf("validate: %w", service.ErrWeakPassword))

	status, resp := ToHTTP(wrapped)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, service.ErrWeakPassword.Error(), resp.Error.Message)
}

// Текст неопознанной ошибки не пересекает границу процесса.
func TestToHTTP_InternalHidesDetails(t *testing.T) {
	t.Parallel()

	_, resp := ToHTTP(errors.New("pq: duplicate key value violates unique constraint"))
	require.Equal(t, "internal error", resp.Error.Message)
	require.NotContains(t, resp.Error.Message, "pq:")
}

func TestWriteError_BodyAndRequestID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("X-Request-Id", "rid-123")
	rec := httptest.NewRecorder()

	WriteError(rec, req, service.ErrInvalidCredentials)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "bad_request", resp.Error.Code)
	require.Equal(t, service.ErrInvalidCredentials.Error(), resp.Error.Message)
	require.Equal(t, "rid-123", resp.Error.RequestID)
}
