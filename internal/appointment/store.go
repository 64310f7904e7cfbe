package appointment

import (
	"fmt"
	"strings"
)

// Store is the in-memory working set. Medics and patients are fixed at
// construction; appointments only grow. Reads hand out copies.
type Store struct {
	medics       []Medic
	patients     []Patient
	appointments []Appointment
}

func NewStore(medics []Medic, patients []Patient, appointments []Appointment) *Store {
	s := &Store{
		medics:       append([]Medic(nil), medics...),
		patients:     append([]Patient(nil), patients...),
		appointments: make([]Appointment, 0, max(len(appointments), 50)),
	}
	s.appointments = append(s.appointments, appointments...)
	return s
}

// Medics returns every medic in load order. Patients have no counterpart:
// they are only reachable by id or name search.
func (s *Store) Medics() []Medic {
	return append([]Medic(nil), s.medics...)
}

func (s *Store) FindMedic(id int64) (Medic, bool) {
	return FindByID(s.medics, id)
}

func (s *Store) SearchMedics(query string) []Match[Medic] {
	return FindByNameSubstring(s.medics, query)
}

func (s *Store) FindPatient(id int64) (Patient, bool) {
	return FindByID(s.patients, id)
}

// SearchPatients returns no matches for a blank query so the patient list
// can never be dumped through the search path.
func (s *Store) SearchPatients(query string) []Match[Patient] {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	return FindByNameSubstring(s.patients, query)
}

// AppendAppointment adds a to the end of the store. Both references must
// resolve.
func (s *Store) AppendAppointment(a Appointment) error {
	if _, ok := s.FindMedic(a.MedicID); !ok {
		return fmt.Errorf("append appointment: medic %d: %w", a.MedicID, ErrMedicNotFound)
	}
	if _, ok := s.FindPatient(a.PatientID); !ok {
		return fmt.Errorf("append appointment: patient %d: %w", a.PatientID, ErrPatientNotFound)
	}
	s.appointments = append(s.appointments, a)
	return nil
}

func (s *Store) Len() int {
	return len(s.appointments)
}

func (s *Store) Appointments() []Appointment {
	return append([]Appointment(nil), s.appointments...)
}

func (s *Store) AppointmentsForMedic(medicID int64) []Appointment {
	return s.filter(func(a Appointment) bool { return a.MedicID == medicID })
}

func (s *Store) AppointmentsForPatient(patientID int64) []Appointment {
	return s.filter(func(a Appointment) bool { return a.PatientID == patientID })
}

func (s *Store) AppointmentsOn(month, day int) []Appointment {
	return s.filter(func(a Appointment) bool { return a.Month == month && a.Day == day })
}

// Detail resolves the names behind a's references. Unknown ids render as
// "#<id>", which only happens for appointments loaded from an edited store.
func (s *Store) Detail(a Appointment) Detail {
	d := Detail{Appointment: a}
	if m, ok := s.FindMedic(a.MedicID); ok {
		d.MedicName = m.Name
	} else {
		d.MedicName = fmt.Sprintf("#%d", a.MedicID)
	}
	if p, ok := s.FindPatient(a.PatientID); ok {
		d.PatientName = p.Name
	} else {
		d.PatientName = fmt.Sprintf("#%d", a.PatientID)
	}
	return d
}

func (s *Store) filter(keep func(Appointment) bool) []Appointment {
	var out []Appointment
	for _, a := range s.appointments {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
