package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// MapError converts driver errors into domain errors. Missing documents map
// to ErrNotFound; every other store failure maps to ErrPersistence so
// callers can distinguish "no data" from "store broken".
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrPersistence, err)
}
