package appointment

import "fmt"

// Medic is identified by its professional licence number (cedula).
type Medic struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Patient is identified by its record number (expediente).
type Patient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Appointment books one patient with one medic. Month, day and hour are
// always within range; use New to build one.
type Appointment struct {
	MedicID   int64 `json:"medic_id"`
	PatientID int64 `json:"patient_id"`
	Month     int   `json:"month"`
	Day       int   `json:"day"`
	Hour      int   `json:"hour"`
}

// Record is implemented by the reference collections so the lookup helpers
// can scan either of them.
type Record interface {
	Key() int64
	DisplayName() string
}

func (m Medic) Key() int64            { return m.ID }
func (m Medic) DisplayName() string   { return m.Name }
func (p Patient) Key() int64          { return p.ID }
func (p Patient) DisplayName() string { return p.Name }

// New clamps month, day and hour into range and returns the appointment.
func New(medic Medic, patient Patient, month, day, hour int) Appointment {
	return Appointment{MedicID: medic.ID, PatientID: patient.ID, Month: month, Day: day, Hour: hour}.Clamped()
}

// Clamped returns a with month, day and hour forced into the calendar.
func (a Appointment) Clamped() Appointment {
	a.Month = ClampMonth(a.Month)
	a.Day = ClampDay(a.Month, a.Day)
	a.Hour = ClampHour(a.Hour)
	return a
}

// Detail is an appointment with its medic and patient names resolved.
type Detail struct {
	Appointment
	MedicName   string
	PatientName string
}

func (d Detail) String() string {
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%d", d.PatientName, d.MedicName, d.Month, d.Day, d.Hour)
}
