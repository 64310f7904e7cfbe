package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileRepository keeps each collection as a JSON array in its own file
// under dir.
type FileRepository struct {
	dir   string
	names CollectionNames
}

func NewFileRepository(dir string, names CollectionNames) *FileRepository {
	return &FileRepository{dir: dir, names: names}
}

func (r *FileRepository) LoadMedics(ctx context.Context) ([]Medic, error) {
	return loadFile[Medic](r.path(r.names.Medics), r.names.Medics)
}

func (r *FileRepository) LoadPatients(ctx context.Context) ([]Patient, error) {
	return loadFile[Patient](r.path(r.names.Patients), r.names.Patients)
}

func (r *FileRepository) LoadAppointments(ctx context.Context) ([]Appointment, error) {
	return loadFile[Appointment](r.path(r.names.Appointments), r.names.Appointments)
}

func (r *FileRepository) SaveAppointments(ctx context.Context, appts []Appointment) error {
	return saveFile(r.path(r.names.Appointments), appts)
}

func (r *FileRepository) SaveMedics(ctx context.Context, medics []Medic) error {
	return saveFile(r.path(r.names.Medics), medics)
}

func (r *FileRepository) SavePatients(ctx context.Context, patients []Patient) error {
	return saveFile(r.path(r.names.Patients), patients)
}

func (r *FileRepository) path(collection string) string {
	return filepath.Join(r.dir, collection+".json")
}

func loadFile[T any](path, collection string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NotFound(collection)
		}
		// unreadable counts as absent
		return nil, &LoadError{Collection: collection, Err: fmt.Errorf("%w: %v", ErrNotFound, err)}
	}
	return DecodeCollection[T](data, collection)
}

// saveFile writes to a temp file in the same directory and renames it over
// path, so readers see either the old or the new collection.
func saveFile[T any](path string, records []T) (err error) {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w: %v", filepath.Base(path), ErrWriteFailure, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w: %v", ErrWriteFailure, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w: %v", tmp.Name(), ErrWriteFailure, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w: %v", tmp.Name(), ErrWriteFailure, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w: %v", tmp.Name(), ErrWriteFailure, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w: %v", path, ErrWriteFailure, err)
	}
	return nil
}
