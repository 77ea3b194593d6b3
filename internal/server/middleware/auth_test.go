package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	userID uuid.UUID
	err    error
	seen   string
}

type stubClaims struct{ id uuid.UUID }

func (c stubClaims) GetUserID() uuid.UUID { return c.id }

func (v *stubValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	v.seen = tokenString
	if v.err != nil {
		return nil, v.err
	}
	return stubClaims{id: v.userID}, nil
}

func protectedHandler(t *testing.T, wantID uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserID(r)
		require.NoError(t, err)
		assert.Equal(t, wantID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_ValidTokenPassesUserID(t *testing.T) {
	userID := uuid.New()
	validator := &stubValidator{userID: userID}
	handler := AuthMiddleware(validator)(protectedHandler(t, userID))

	req := httptest.NewRequest("GET", "/search/status", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token-abc", validator.seen)
}

func TestAuthMiddleware_RejectsRequests(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
	}{
		{"no header", "", nil},
		{"wrong scheme", "Basic dXNlcjpwYXNz", nil},
		{"missing token", "Bearer ", nil},
		{"too many parts", "Bearer a b", nil},
		{"validator rejects", "Bearer bad-token", errors.New("expired")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := &stubValidator{userID: uuid.New(), err: tt.err}
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("next handler must not run")
			})
			handler := AuthMiddleware(validator)(next)

			req := httptest.NewRequest("GET", "/search/status", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthMiddleware_BearerPrefixCaseInsensitive(t *testing.T) {
	userID := uuid.New()
	handler := AuthMiddleware(&stubValidator{userID: userID})(protectedHandler(t, userID))

	req := httptest.NewRequest("GET", "/history", nil)
	req.Header.Set("Authorization", "bearer token-abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/history", nil)

	_, err := GetUserID(req)

	assert.Error(t, err)
}
