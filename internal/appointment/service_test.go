package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	medics       []Medic
	patients     []Patient
	appointments []Appointment

	medicsErr error
	apptsErr  error
	saveErr   error
	saved     [][]Appointment
}

func (r *testRepo) LoadMedics(ctx context.Context) ([]Medic, error) {
	if r.medicsErr != nil {
		return nil, r.medicsErr
	}
	return r.medics, nil
}

func (r *testRepo) LoadPatients(ctx context.Context) ([]Patient, error) {
	if r.patients == nil {
		return nil, NotFound("patients")
	}
	return r.patients, nil
}

func (r *testRepo) LoadAppointments(ctx context.Context) ([]Appointment, error) {
	if r.apptsErr != nil {
		return nil, r.apptsErr
	}
	return r.appointments, nil
}

func (r *testRepo) SaveAppointments(ctx context.Context, appts []Appointment) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, appts)
	return nil
}

func newLoadedService(t *testing.T, repo *testRepo) *Service {
	t.Helper()
	svc := NewService(repo, zerolog.Nop())
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	return svc
}

func scenarioRepo() *testRepo {
	return &testRepo{
		medics:   []Medic{{ID: 1, Name: "Ana"}},
		patients: []Patient{{ID: 10, Name: "Luis"}},
		apptsErr: NotFound("appointments"),
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Load_MissingReferenceDataIsFatal(t *testing.T) {
	repo := scenarioRepo()
	repo.medicsErr = Corrupt("medics", errors.New("bad json"))

	err := NewService(repo, zerolog.Nop()).Load(context.Background())
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt for medics, got %v", err)
	}

	repo = scenarioRepo()
	repo.patients = nil
	err = NewService(repo, zerolog.Nop()).Load(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for patients, got %v", err)
	}
	var le *LoadError
	if !errors.As(err, &le) || le.Collection != "patients" {
		t.Fatalf("expected LoadError for patients, got %#v", err)
	}
}

func TestService_Load_EmptyReferenceCollectionsAreFatal(t *testing.T) {
	tests := []struct {
		name       string
		medics     []Medic
		patients   []Patient
		collection string
	}{
		{"empty medics", []Medic{}, []Patient{{ID: 10, Name: "Luis"}}, "medics"},
		{"empty patients", []Medic{{ID: 1, Name: "Ana"}}, []Patient{}, "patients"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := scenarioRepo()
			repo.medics = tc.medics
			repo.patients = tc.patients

			err := NewService(repo, zerolog.Nop()).Load(context.Background())
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			var le *LoadError
			if !errors.As(err, &le) || le.Collection != tc.collection {
				t.Fatalf("expected LoadError for %s, got %#v", tc.collection, err)
			}
		})
	}
}

func TestService_Load_ClampsStoredAppointments(t *testing.T) {
	repo := scenarioRepo()
	repo.apptsErr = nil
	repo.appointments = []Appointment{
		{MedicID: 1, PatientID: 10, Month: 13, Day: 0, Hour: 0},
		{MedicID: 1, PatientID: 10, Month: 4, Day: 31, Hour: 24},
	}

	svc := newLoadedService(t, repo)

	want := []Appointment{
		{MedicID: 1, PatientID: 10, Month: 12, Day: 1, Hour: 1},
		{MedicID: 1, PatientID: 10, Month: 4, Day: 30, Hour: 23},
	}
	got := svc.Store().Appointments()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
	if r := svc.ReportByDate(12, 1); r.Total() != 1 {
		t.Fatalf("expected clamped appointment in the 12/1 report, got %d", r.Total())
	}
}

func TestService_Load_MissingAppointmentsStartsFresh(t *testing.T) {
	for _, loadErr := range []error{NotFound("appointments"), Corrupt("appointments", errors.New("truncated"))} {
		repo := scenarioRepo()
		repo.apptsErr = loadErr

		svc := newLoadedService(t, repo)
		if !svc.Fresh() {
			t.Fatalf("expected fresh store after %v", loadErr)
		}
		if svc.Store().Len() != 0 {
			t.Fatalf("expected empty appointments")
		}
	}
}

func TestService_Load_OtherAppointmentErrorsAreFatal(t *testing.T) {
	repo := scenarioRepo()
	repo.apptsErr = errors.New("connection reset")

	if err := NewService(repo, zerolog.Nop()).Load(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestService_Book_ClampsScenario(t *testing.T) {
	svc := newLoadedService(t, scenarioRepo())

	appt, err := svc.Book(1, 10, 2, 30, 25)
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	want := Appointment{MedicID: 1, PatientID: 10, Month: 2, Day: 28, Hour: 23}
	if appt != want {
		t.Fatalf("expected %#v, got %#v", want, appt)
	}
	if svc.Store().Len() != 1 {
		t.Fatalf("expected 1 appointment in store, got %d", svc.Store().Len())
	}
}

func TestService_Book_UnknownReferences(t *testing.T) {
	svc := newLoadedService(t, scenarioRepo())

	if _, err := svc.Book(2, 10, 1, 1, 1); !errors.Is(err, ErrMedicNotFound) {
		t.Fatalf("expected ErrMedicNotFound, got %v", err)
	}
	if _, err := svc.Book(1, 11, 1, 1, 1); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if svc.Store().Len() != 0 {
		t.Fatalf("expected no appointments after failed bookings")
	}
}

func TestService_ReportByDate(t *testing.T) {
	svc := newLoadedService(t, scenarioRepo())
	if _, err := svc.Book(1, 10, 2, 30, 25); err != nil {
		t.Fatalf("Book returned error: %v", err)
	}

	rep := svc.ReportByDate(2, 28)
	if rep.Total() != 1 {
		t.Fatalf("expected 1 row on 2/28, got %d", rep.Total())
	}
	if rep.Rows[0].MedicName != "Ana" || rep.Rows[0].PatientName != "Luis" {
		t.Fatalf("unexpected row %#v", rep.Rows[0])
	}

	if rep := svc.ReportByDate(1, 1); rep.Total() != 0 {
		t.Fatalf("expected no rows on 1/1, got %d", rep.Total())
	}

	// clamped like booking: 2/31 reads as 2/28
	if rep := svc.ReportByDate(2, 31); rep.Day != 28 || rep.Total() != 1 {
		t.Fatalf("expected clamped 2/28 with 1 row, got %#v", rep)
	}
}

func TestService_ReportsByMedicAndPatient(t *testing.T) {
	repo := scenarioRepo()
	repo.medics = append(repo.medics, Medic{ID: 2, Name: "Bruno"})
	svc := newLoadedService(t, repo)

	_, _ = svc.Book(1, 10, 3, 3, 9)
	_, _ = svc.Book(2, 10, 3, 4, 9)
	_, _ = svc.Book(1, 10, 3, 5, 9)

	byMedic := svc.ReportByMedic(1)
	if len(byMedic) != 2 || byMedic[0].Day != 3 || byMedic[1].Day != 5 {
		t.Fatalf("expected insertion order for medic 1, got %#v", byMedic)
	}
	if got := svc.ReportByPatient(10); len(got) != 3 {
		t.Fatalf("expected 3 rows for patient, got %d", len(got))
	}
	if got := svc.ReportByMedic(3); len(got) != 0 {
		t.Fatalf("expected no rows for unknown medic")
	}
}

func TestService_Export(t *testing.T) {
	repo := scenarioRepo()
	svc := newLoadedService(t, repo)
	_, _ = svc.Book(1, 10, 1, 1, 1)

	if err := svc.Export(context.Background()); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if len(repo.saved) != 1 || len(repo.saved[0]) != 1 {
		t.Fatalf("expected one save with one appointment, got %#v", repo.saved)
	}
}

func TestService_Export_FailureKeepsMemory(t *testing.T) {
	repo := scenarioRepo()
	repo.saveErr = errors.New("disk full")
	svc := newLoadedService(t, repo)
	_, _ = svc.Book(1, 10, 1, 1, 1)

	err := svc.Export(context.Background())
	if !errors.Is(err, ErrWriteFailure) {
		t.Fatalf("expected ErrWriteFailure, got %v", err)
	}
	if len(svc.All()) != 1 {
		t.Fatalf("expected in-memory appointment to survive failed export")
	}
}
