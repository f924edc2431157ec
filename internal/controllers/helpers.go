package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/hosterlink/hosterlink-api/internal/middleware"
	"github.com/hosterlink/hosterlink-api/internal/policy"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

var validate = validator.New()

// decodeAndValidate parses the JSON body into req and runs struct
// validation. It writes the error response itself; callers just return
// on false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return false
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", fieldErrors(err), err,
		)
		return false
	}
	return true
}

// fieldErrors flattens validator output into field -> failed-rule pairs.
func fieldErrors(err error) map[string]string {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// requireActor pulls the validated identity injected by AuthMiddleware.
func requireActor(w http.ResponseWriter, r *http.Request) (policy.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing authentication", nil,
		)
	}
	return actor, ok
}

// pageParams reads ?page= and ?pageSize=. Out-of-range values are left
// for the service-side clamp.
func pageParams(r *http.Request) (int64, int64) {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	pageSize, _ := strconv.ParseInt(q.Get("pageSize"), 10, 64)
	return page, pageSize
}
