package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hosterlink/hosterlink-api/internal/auth"
	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/policy"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

func newMiddlewareFixture(t *testing.T, ttl time.Duration) (auth.TokenService, http.Handler, *policy.Actor) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := auth.NewTokenService(key, &key.PublicKey, "HosterLink", "hosterlink-api", ttl)

	var captured policy.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		require.True(t, ok)
		captured = actor
		w.WriteHeader(http.StatusOK)
	})
	return tokens, AuthMiddleware(tokens)(next), &captured
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	_, handler, _ := newMiddlewareFixture(t, time.Hour)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, utils.ErrCodeUnauthorized, body.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	tokens, handler, _ := newMiddlewareFixture(t, -time.Minute)

	token, _, err := tokens.Issue(&models.User{ID: primitive.NewObjectID(), Role: models.RoleTenant})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, utils.ErrCodeTokenExpired, body.Code)
}

func TestAuthMiddlewareInjectsActor(t *testing.T) {
	tokens, handler, captured := newMiddlewareFixture(t, time.Hour)

	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleOwner}
	token, _, err := tokens.Issue(user)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, user.ID, captured.ID)
	require.Equal(t, models.RoleOwner, captured.Role)
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	_, handler, _ := newMiddlewareFixture(t, time.Hour)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, utils.ErrCodeUnauthorized, body.Code)
}
