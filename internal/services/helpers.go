package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hosterlink/hosterlink-api/internal/utils"
)

// parseID converts a client-supplied hex id. Malformed ids are a
// validation failure, never a lookup.
func parseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, utils.NewValidation("invalid id", utils.ErrInvalidID)
	}
	return id, nil
}

// Denied reads are reported as not-found so an unauthorized caller cannot
// probe which ids exist. Denied mutations on resources the caller could
// name explicitly are a plain forbidden.
func errHiddenRecord(what string) error {
	return utils.NewNotFound(what + " not found")
}

func errForbidden() error {
	return utils.NewForbidden("You do not have permission to perform this action")
}

// mapMiss translates a store-level miss into the response taxonomy.
func mapMiss(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errHiddenRecord(what)
	}
	return utils.NewInternal(err)
}
