// Package planstore persists composed plans as opaque records keyed by an
// externally generated id and an optional client id. Implementations know
// nothing about plan semantics.
package planstore

import (
	"context"
	"errors"

	"github.com/mapleplan/mapleplan/internal/domain"
)

// ErrNotFound is returned when no record matches the requested id or
// client id.
var ErrNotFound = errors.New("plan not found")

// MaxRecords caps how many records a store keeps; older records are
// dropped first.
const MaxRecords = 200

// Store is the persistence surface the server works against.
type Store interface {
	Save(ctx context.Context, record domain.PlanRecord) error
	GetByID(ctx context.Context, id string) (domain.PlanRecord, error)
	GetLatestByClientID(ctx context.Context, clientID string) (domain.PlanRecord, error)
}
