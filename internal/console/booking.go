package console

import (
	"strings"

	"github.com/hackgods/appointment-agenda/internal/appointment"
)

// Outcome is how one pass through the booking workflow ended.
type Outcome int

const (
	Success Outcome = iota
	Cancelled
	AbortedByInput
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Cancelled:
		return "cancelled"
	default:
		return "aborted"
	}
}

// CreateAppointments runs the booking workflow and repeats it while the user
// asks for another booking. It returns the outcome of the last pass.
func (c *Console) CreateAppointments() (Outcome, error) {
	for {
		outcome, err := c.bookOnce()
		if err != nil || outcome != Success {
			return outcome, err
		}

		c.printf("Appointment booked successfully. Book another one?\n" +
			"   1) Yes, book a new appointment.\n" +
			"   2) No, back to the main menu.\n\n>> ")
		again, err := c.readInt()
		if err != nil {
			return outcome, err
		}
		if again != 1 {
			return outcome, nil
		}
	}
}

func (c *Console) bookOnce() (Outcome, error) {
	c.printf("%s\n\n\tBook a new appointment\n%s\n\n", rule, rule)

	c.printf("Enter the medic's licence number or press enter to list our available medics.\n\n>> ")
	input, err := c.readLine()
	if err != nil {
		return AbortedByInput, err
	}
	medic, ok, err := c.resolveMedic(input)
	if err != nil || !ok {
		return AbortedByInput, err
	}

	c.printf("The selected medic is: %s\n", medic.Name)
	c.printf("\nContinue?\n1) Yes, confirm.\n2) No, cancel the appointment.\n\n>> ")
	confirm, err := c.readInt()
	if err != nil {
		return AbortedByInput, err
	}
	if confirm != 1 {
		c.printf("Appointment cancelled. Back to the main menu.\n\n")
		return Cancelled, nil
	}

	c.printf("Enter the patient's record number: ")
	patient, ok, err := c.resolvePatient()
	if err != nil || !ok {
		return AbortedByInput, err
	}

	c.printf("Enter the month of the appointment: ")
	month, err := c.readInt()
	if err != nil {
		return AbortedByInput, err
	}
	month = appointment.ClampMonth(month)

	c.printf("Enter the day of the appointment (1-%d): ", appointment.DayLimit(month))
	day, err := c.readInt()
	if err != nil {
		return AbortedByInput, err
	}

	c.printf("Enter the hour of the appointment, 24-hour clock:\ne.g. \t8 for 8:00 AM\n\t15 for 3:00 PM\n\n>> ")
	hour, err := c.readInt()
	if err != nil {
		return AbortedByInput, err
	}

	appt, err := c.svc.Book(medic.ID, patient.ID, month, day, hour)
	if err != nil {
		c.log.Error().Err(err).Msg("book appointment")
		c.printf("An error occurred while booking the appointment.\nBack to the main menu.\n\n")
		return AbortedByInput, nil
	}

	c.log.Debug().Int64("medic_id", appt.MedicID).Int64("patient_id", appt.PatientID).Msg("appointment booked")
	return Success, nil
}

// resolveMedic lists every medic when input is blank and reads a position;
// otherwise input must be an exact licence number.
func (c *Console) resolveMedic(input string) (appointment.Medic, bool, error) {
	store := c.svc.Store()

	if strings.TrimSpace(input) == "" {
		medics := store.Medics()
		c.printf("Available medics:\n\n")
		for i, m := range medics {
			c.printf("\t%d) %s\n", i+1, m.Name)
		}

		c.printf("\nEnter the index of the medic to select it.\n>> ")
		n, err := c.readInt()
		if err != nil {
			return appointment.Medic{}, false, err
		}
		if n < 1 || n > len(medics) {
			c.printf("The selected medic does not exist. Back to the main menu.\n\n")
			return appointment.Medic{}, false, nil
		}
		return medics[n-1], true, nil
	}

	id, err := parseID(input)
	if err != nil {
		return appointment.Medic{}, false, err
	}

	medic, ok := store.FindMedic(id)
	if !ok {
		c.printf("No medic matches the request. Back to the main menu.\n\n")
	}
	return medic, ok, nil
}

// resolvePatient only accepts an exact record number. Patient names are
// never offered for selection while booking.
func (c *Console) resolvePatient() (appointment.Patient, bool, error) {
	id, err := c.readID()
	if err != nil {
		return appointment.Patient{}, false, err
	}

	patient, ok := c.svc.Store().FindPatient(id)
	if !ok {
		c.printf("No patient matches that record number. Back to the main menu.\n\n")
	}
	return patient, ok, nil
}
