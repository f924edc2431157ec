package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/policy"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

func actorOf(role models.Role) policy.Actor {
	return policy.Actor{ID: primitive.NewObjectID(), Role: role}
}

func requireAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok, "expected *utils.AppError, got %T: %v", err, err)
	require.Equal(t, status, appErr.StatusCode)
	require.Equal(t, code, appErr.Code)
}

func requireForbidden(t *testing.T, err error) {
	t.Helper()
	requireAppError(t, err, http.StatusForbidden, utils.ErrCodeForbidden)
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)
}
