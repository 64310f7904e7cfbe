package console

import (
	"github.com/hackgods/appointment-agenda/internal/appointment"
)

const tableRule = "--------------------------------"

type targetPrompts struct {
	byID     string // menu line for exact lookup
	byName   string // menu line for name search
	idPrompt string
	notFound string
	noMatch  string // takes the query
}

var (
	medicPrompts = targetPrompts{
		byID:     "Enter the medic's licence number",
		byName:   "Enter a name to search for the medic",
		idPrompt: "Licence number:",
		notFound: "The licence number entered does not match any registered medic.",
		noMatch:  "No medic matches %q",
	}
	patientPrompts = targetPrompts{
		byID:     "Enter the patient's record number",
		byName:   "Enter a name to search for the patient",
		idPrompt: "Record number:",
		notFound: "The record number entered does not match any registered patient.",
		noMatch:  "No patient matches %q",
	}
)

// resolveTarget keeps asking until one record is chosen by id or by name.
// Only non-numeric input ends the loop early.
func resolveTarget[T appointment.Record](
	c *Console,
	p targetPrompts,
	find func(int64) (T, bool),
	search func(string) []appointment.Match[T],
) (T, error) {
	var zero T

	for {
		c.printf("Select an option:\n\t1) %s\n\t2) %s\n\n>> ", p.byID, p.byName)
		op, err := c.readInt()
		if err != nil {
			return zero, err
		}

		switch op {
		case 1:
			c.printf("\n%s\n\n>> ", p.idPrompt)
			id, err := c.readID()
			if err != nil {
				return zero, err
			}
			rec, ok := find(id)
			if !ok {
				c.printf("\n%s\n-----------------------------\n\n", p.notFound)
				continue
			}
			return rec, nil

		case 2:
			c.printf("\nSearch:\n\n>> ")
			query, err := c.readLine()
			if err != nil {
				return zero, err
			}
			matches := search(query)
			if len(matches) == 0 {
				c.printf("\n"+p.noMatch+"\n\n", query)
				continue
			}
			for _, m := range matches {
				c.printf("\t%d) %s\n", m.Index, m.Record.DisplayName())
			}
			c.printf(">> ")
			n, err := c.readInt()
			if err != nil {
				return zero, err
			}
			rec, err := appointment.Choose(matches, n)
			if err != nil {
				c.printf("\nYou entered an invalid option.\n\n")
				continue
			}
			return rec, nil

		default:
			c.printf("You entered an invalid option. Check your input.\n\n")
		}
	}
}

func (c *Console) ReportByMedic() error {
	c.printf("%s\n\nPending appointments by medic\n\n%s\n\n", rule, rule)

	store := c.svc.Store()
	medic, err := resolveTarget(c, medicPrompts, store.FindMedic, store.SearchMedics)
	if err != nil {
		return err
	}

	c.printTable("Patient", medic.Name, c.svc.ReportByMedic(medic.ID), func(d appointment.Detail) string {
		return d.PatientName
	})
	return nil
}

func (c *Console) ReportByPatient() error {
	c.printf("%s\n\nAppointments by patient\n\n%s\n\n", rule, rule)

	store := c.svc.Store()
	patient, err := resolveTarget(c, patientPrompts, store.FindPatient, store.SearchPatients)
	if err != nil {
		return err
	}

	c.printTable("Medic", patient.Name, c.svc.ReportByPatient(patient.ID), func(d appointment.Detail) string {
		return d.MedicName
	})
	return nil
}

func (c *Console) printTable(column, target string, rows []appointment.Detail, other func(appointment.Detail) string) {
	if len(rows) == 0 {
		c.printf("\nNo appointments booked for %s\n\n", target)
		return
	}

	c.printf("%s\nDate\tHour\t%s\n%s\n", tableRule, column, tableRule)
	for _, d := range rows {
		c.printf("%d/%d\t%d\t%s\n", d.Day, d.Month, d.Hour, other(d))
	}
	c.printf("%s\n\n", tableRule)
}

func (c *Console) ReportByDay() error {
	c.printf("%s\n\n\tAppointments by day\n\n%s\n\n", rule, rule)

	c.printf("Enter the month: ")
	month, err := c.readInt()
	if err != nil {
		return err
	}
	month = appointment.ClampMonth(month)

	c.printf("Enter the day: ")
	day, err := c.readInt()
	if err != nil {
		return err
	}

	rep := c.svc.ReportByDate(month, day)
	if rep.Total() == 0 {
		c.printf("\nNo appointments booked for month %d day %d.\n\n", rep.Month, rep.Day)
		return nil
	}

	c.printf("\n%s\n\nAppointments booked for month %d day %d:\n%s\n\n", rule, rep.Month, rep.Day, rule)
	c.printf("Patient\tMedic\tMonth\tDay\tHour\n")
	for _, d := range rep.Rows {
		c.printf("%s\n", d)
	}
	c.printf("\nTotal appointments for the day: %d\n\n", rep.Total())
	return nil
}
