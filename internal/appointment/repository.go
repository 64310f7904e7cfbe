package appointment

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrMedicNotFound   = errors.New("medic not found")
	ErrPatientNotFound = errors.New("patient not found")

	// Load failures. Callers decide whether a missing collection is fatal.
	ErrNotFound = errors.New("collection not found")
	ErrCorrupt  = errors.New("collection is corrupt")

	ErrWriteFailure = errors.New("collection could not be written")
)

// LoadError reports which collection failed to load and why.
type LoadError struct {
	Collection string
	Err        error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Collection, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// CollectionNames are the file, key or table names of the three collections.
type CollectionNames struct {
	Medics       string
	Patients     string
	Appointments string
}

// Repository moves whole collections between the store and durable storage.
type Repository interface {
	LoadMedics(ctx context.Context) ([]Medic, error)
	LoadPatients(ctx context.Context) ([]Patient, error)
	LoadAppointments(ctx context.Context) ([]Appointment, error)

	// SaveAppointments replaces the persisted appointments with appts.
	// Either all of them are stored or none are.
	SaveAppointments(ctx context.Context, appts []Appointment) error
}

// ReferenceWriter stores the reference collections. Only the seed command
// writes them.
type ReferenceWriter interface {
	SaveMedics(ctx context.Context, medics []Medic) error
	SavePatients(ctx context.Context, patients []Patient) error
}

// NotFound builds the LoadError for a collection that does not exist.
func NotFound(collection string) error {
	return &LoadError{Collection: collection, Err: ErrNotFound}
}

// Corrupt builds the LoadError for a collection that cannot be decoded.
func Corrupt(collection string, cause error) error {
	return &LoadError{Collection: collection, Err: fmt.Errorf("%w: %v", ErrCorrupt, cause)}
}
