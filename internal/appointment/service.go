package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	EventAppointmentCreated   = "APPOINTMENT_CREATED"
	EventAppointmentsExported = "APPOINTMENTS_EXPORTED"
	EventExportFailed         = "APPOINTMENTS_EXPORT_FAILED"
)

type Service struct {
	repo  Repository
	store *Store
	log   zerolog.Logger
	fresh bool
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		store: NewStore(nil, nil, nil),
		log:   log,
	}
}

// Load hydrates the store. Medics and patients are mandatory and must not be
// empty; a missing or corrupt appointments collection starts an empty one
// instead. Stored appointments outside the calendar are clamped.
func (s *Service) Load(ctx context.Context) error {
	medics, err := s.repo.LoadMedics(ctx)
	if err == nil && len(medics) == 0 {
		err = NotFound("medics")
	}
	if err != nil {
		return fmt.Errorf("load medics: %w", err)
	}

	patients, err := s.repo.LoadPatients(ctx)
	if err == nil && len(patients) == 0 {
		err = NotFound("patients")
	}
	if err != nil {
		return fmt.Errorf("load patients: %w", err)
	}

	appts, err := s.repo.LoadAppointments(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrCorrupt) {
			return fmt.Errorf("load appointments: %w", err)
		}
		s.log.Warn().Err(err).Msg("starting with an empty appointment collection")
		appts = nil
	}

	clamped := 0
	appts = append([]Appointment(nil), appts...)
	for i, a := range appts {
		if c := a.Clamped(); c != a {
			appts[i] = c
			clamped++
		}
	}
	if clamped > 0 {
		s.log.Warn().Int("count", clamped).Msg("clamped stored appointments outside the calendar")
	}

	s.store = NewStore(medics, patients, appts)
	s.fresh = len(appts) == 0

	s.log.Info().
		Int("medics", len(medics)).
		Int("patients", len(patients)).
		Int("appointments", len(appts)).
		Msg("store loaded")
	return nil
}

// Fresh reports whether Load started a new, empty appointment collection.
func (s *Service) Fresh() bool { return s.fresh }

func (s *Service) Store() *Store { return s.store }

// Book clamps the date and hour, then appends the appointment. Nothing is
// stored when either reference fails to resolve.
func (s *Service) Book(medicID, patientID int64, month, day, hour int) (Appointment, error) {
	medic, ok := s.store.FindMedic(medicID)
	if !ok {
		return Appointment{}, ErrMedicNotFound
	}
	patient, ok := s.store.FindPatient(patientID)
	if !ok {
		return Appointment{}, ErrPatientNotFound
	}

	appt := New(medic, patient, month, day, hour)
	if err := s.store.AppendAppointment(appt); err != nil {
		return Appointment{}, err
	}

	s.logEvent(EventAppointmentCreated, map[string]any{
		"medic_id":   appt.MedicID,
		"patient_id": appt.PatientID,
		"month":      appt.Month,
		"day":        appt.Day,
		"hour":       appt.Hour,
	})
	return appt, nil
}

// Export writes every appointment in the store. On failure the store is
// untouched and the caller still holds the data.
func (s *Service) Export(ctx context.Context) error {
	appts := s.store.Appointments()
	if err := s.repo.SaveAppointments(ctx, appts); err != nil {
		s.logEvent(EventExportFailed, map[string]any{"count": len(appts), "error": err.Error()})
		if errors.Is(err, ErrWriteFailure) {
			return err
		}
		return fmt.Errorf("save appointments: %w: %v", ErrWriteFailure, err)
	}
	s.logEvent(EventAppointmentsExported, map[string]any{"count": len(appts)})
	return nil
}

// All returns every appointment with names resolved, in booking order.
func (s *Service) All() []Detail {
	return s.details(s.store.Appointments())
}

func (s *Service) ReportByMedic(medicID int64) []Detail {
	return s.details(s.store.AppointmentsForMedic(medicID))
}

func (s *Service) ReportByPatient(patientID int64) []Detail {
	return s.details(s.store.AppointmentsForPatient(patientID))
}

// DateReport lists the appointments booked on one calendar day.
type DateReport struct {
	Month int
	Day   int
	Rows  []Detail
}

func (r DateReport) Total() int { return len(r.Rows) }

// ReportByDate clamps month and day the same way booking does.
func (s *Service) ReportByDate(month, day int) DateReport {
	month = ClampMonth(month)
	day = ClampDay(month, day)
	return DateReport{
		Month: month,
		Day:   day,
		Rows:  s.details(s.store.AppointmentsOn(month, day)),
	}
}

func (s *Service) details(appts []Appointment) []Detail {
	out := make([]Detail, 0, len(appts))
	for _, a := range appts {
		out = append(out, s.store.Detail(a))
	}
	return out
}

func (s *Service) logEvent(eventType string, payload map[string]any) {
	s.log.Info().
		Str("event_id", uuid.NewString()).
		Str("event_type", eventType).
		Fields(payload).
		Msg("event")
}
