package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLSTATE for a missing relation.
const pgUndefinedTable = "42P01"

// PgRepository keeps each collection in its own table. The pos column
// preserves collection order.
type PgRepository struct {
	pool  *pgxpool.Pool
	names CollectionNames
}

func NewPgRepository(pool *pgxpool.Pool, names CollectionNames) *PgRepository {
	return &PgRepository{pool: pool, names: names}
}

// EnsureSchema creates the three tables when they do not exist yet.
func (r *PgRepository) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			pos  INTEGER NOT NULL,
			id   BIGINT PRIMARY KEY,
			name TEXT NOT NULL
		)`, r.table(r.names.Medics)),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			pos  INTEGER NOT NULL,
			id   BIGINT PRIMARY KEY,
			name TEXT NOT NULL
		)`, r.table(r.names.Patients)),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			pos        INTEGER PRIMARY KEY,
			medic_id   BIGINT NOT NULL,
			patient_id BIGINT NOT NULL,
			month      SMALLINT NOT NULL CHECK (month BETWEEN 1 AND 12),
			day        SMALLINT NOT NULL CHECK (day BETWEEN 1 AND 31),
			hour       SMALLINT NOT NULL CHECK (hour BETWEEN 1 AND 23)
		)`, r.table(r.names.Appointments)),
	}

	for _, stmt := range stmts {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Helpers

func scanMedic(row pgx.Row) (Medic, error) {
	var m Medic
	err := row.Scan(&m.ID, &m.Name)
	return m, err
}

func scanPatient(row pgx.Row) (Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name)
	return p, err
}

func scanAppointment(row pgx.Row) (Appointment, error) {
	var a Appointment
	err := row.Scan(&a.MedicID, &a.PatientID, &a.Month, &a.Day, &a.Hour)
	return a, err
}

func (r *PgRepository) table(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func queryCollection[T any](ctx context.Context, pool *pgxpool.Pool, collection, query string, scan func(pgx.Row) (T, error)) ([]T, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
			return nil, NotFound(collection)
		}
		return nil, &LoadError{Collection: collection, Err: err}
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, Corrupt(collection, err)
		}
		result = append(result, rec)
	}

	if err := rows.Err(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
			return nil, NotFound(collection)
		}
		return nil, &LoadError{Collection: collection, Err: err}
	}

	return result, nil
}

// Interface methods

func (r *PgRepository) LoadMedics(ctx context.Context) ([]Medic, error) {
	return queryCollection(ctx, r.pool, r.names.Medics,
		fmt.Sprintf(`SELECT id, name FROM %s ORDER BY pos`, r.table(r.names.Medics)), scanMedic)
}

func (r *PgRepository) LoadPatients(ctx context.Context) ([]Patient, error) {
	return queryCollection(ctx, r.pool, r.names.Patients,
		fmt.Sprintf(`SELECT id, name FROM %s ORDER BY pos`, r.table(r.names.Patients)), scanPatient)
}

func (r *PgRepository) LoadAppointments(ctx context.Context) ([]Appointment, error) {
	return queryCollection(ctx, r.pool, r.names.Appointments,
		fmt.Sprintf(`SELECT medic_id, patient_id, month, day, hour FROM %s ORDER BY pos`, r.table(r.names.Appointments)),
		scanAppointment)
}

func (r *PgRepository) SaveAppointments(ctx context.Context, appts []Appointment) error {
	return r.replace(ctx, r.names.Appointments,
		[]string{"pos", "medic_id", "patient_id", "month", "day", "hour"},
		len(appts), func(i int) []any {
			a := appts[i]
			return []any{i, a.MedicID, a.PatientID, a.Month, a.Day, a.Hour}
		})
}

func (r *PgRepository) SaveMedics(ctx context.Context, medics []Medic) error {
	return r.replace(ctx, r.names.Medics, []string{"pos", "id", "name"},
		len(medics), func(i int) []any { return []any{i, medics[i].ID, medics[i].Name} })
}

func (r *PgRepository) SavePatients(ctx context.Context, patients []Patient) error {
	return r.replace(ctx, r.names.Patients, []string{"pos", "id", "name"},
		len(patients), func(i int) []any { return []any{i, patients[i].ID, patients[i].Name} })
}

// replace swaps the table contents inside one transaction.
func (r *PgRepository) replace(ctx context.Context, name string, columns []string, n int, row func(int) []any) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save %s: %w: %v", name, ErrWriteFailure, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, r.table(name))); err != nil {
		return fmt.Errorf("clear %s: %w: %v", name, ErrWriteFailure, err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{name}, columns, pgx.CopyFromSlice(n, func(i int) ([]any, error) {
		return row(i), nil
	}))
	if err != nil {
		return fmt.Errorf("copy %s: %w: %v", name, ErrWriteFailure, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s: %w: %v", name, ErrWriteFailure, err)
	}
	return nil
}
