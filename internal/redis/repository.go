package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hackgods/appointment-agenda/internal/appointment"
)

// blobStore is the slice of *redis.Client the repository needs.
type blobStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Repository stores each collection as a single JSON value, so a save is
// one SET and replaces the whole collection at once.
type Repository struct {
	client blobStore
	prefix string
	names  appointment.CollectionNames
}

func NewRepository(client blobStore, prefix string, names appointment.CollectionNames) *Repository {
	return &Repository{client: client, prefix: prefix, names: names}
}

func (r *Repository) LoadMedics(ctx context.Context) ([]appointment.Medic, error) {
	return load[appointment.Medic](ctx, r, r.names.Medics)
}

func (r *Repository) LoadPatients(ctx context.Context) ([]appointment.Patient, error) {
	return load[appointment.Patient](ctx, r, r.names.Patients)
}

func (r *Repository) LoadAppointments(ctx context.Context) ([]appointment.Appointment, error) {
	return load[appointment.Appointment](ctx, r, r.names.Appointments)
}

func (r *Repository) SaveAppointments(ctx context.Context, appts []appointment.Appointment) error {
	return save(ctx, r, r.names.Appointments, appts)
}

func (r *Repository) SaveMedics(ctx context.Context, medics []appointment.Medic) error {
	return save(ctx, r, r.names.Medics, medics)
}

func (r *Repository) SavePatients(ctx context.Context, patients []appointment.Patient) error {
	return save(ctx, r, r.names.Patients, patients)
}

func (r *Repository) key(collection string) string {
	return r.prefix + collection
}

func load[T any](ctx context.Context, r *Repository, collection string) ([]T, error) {
	data, err := r.client.Get(ctx, r.key(collection)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appointment.NotFound(collection)
		}
		return nil, &appointment.LoadError{Collection: collection, Err: fmt.Errorf("get %s: %w", r.key(collection), err)}
	}
	return appointment.DecodeCollection[T](data, collection)
}

func save[T any](ctx context.Context, r *Repository, collection string, records []T) error {
	data, err := appointment.EncodeCollection(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w: %v", collection, appointment.ErrWriteFailure, err)
	}
	if err := r.client.Set(ctx, r.key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w: %v", r.key(collection), appointment.ErrWriteFailure, err)
	}
	return nil
}
