// Package storage defines the Storage interface: the contract the record
// manager view uses to reach the hospital collection.
//
// WHY AN INTERFACE?
// ─────────────────
// The view should not know or care how the collection is reached. By
// depending only on this interface:
//
//   - The HTTP backend (storage/hospitalapi) can be swapped without touching
//     the view.
//
//   - Tests can pass a fake that satisfies the interface and count calls.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/hospital-admin/internal/types"
)

// ErrRemoteCall is the only failure kind a Storage reports. Network errors,
// non-2xx responses and undecodable bodies all wrap it; callers check it
// with errors.Is and never need to tell them apart.
var ErrRemoteCall = errors.New("remote call failed")

// Storage is the collection contract.
type Storage interface {
	// GetHospitals returns every record in collection order.
	// Returns an empty slice (not nil) if there are none.
	GetHospitals(ctx context.Context) ([]types.Hospital, error)

	// AddHospital creates a record with the caller-supplied id.
	AddHospital(ctx context.Context, hospital types.Hospital) error

	// UpdateHospital replaces the record whose id matches hospital.ID.
	UpdateHospital(ctx context.Context, hospital types.Hospital) error

	// DeleteHospitalByID removes a record and returns the collection's
	// confirmation message verbatim.
	DeleteHospitalByID(ctx context.Context, id string) (string, error)

	// GetHospitalByID fetches a single record. A missing record is an error.
	GetHospitalByID(ctx context.Context, id string) (types.Hospital, error)
}
