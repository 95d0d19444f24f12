package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMiddleware(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)
	userID := uuid.New()
	token, err := svc.GenerateToken(userID, "", []string{RoleApplicant})
	require.NoError(t, err)

	var seen *Claims
	handler := HTTPMiddleware(svc, []string{"/healthz"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "skip path", path: "/healthz", want: http.StatusNoContent},
		{name: "missing header", path: "/v1/profile", want: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/v1/profile", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "bad token", path: "/v1/profile", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid token", path: "/v1/profile", header: "bearer " + token, want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, seen)
	assert.Equal(t, userID, seen.UserID)
}
