package seed

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"github.com/hackgods/appointment-agenda/internal/appointment"
)

const (
	minCedula     = 1_000_000
	maxCedula     = 99_999_999
	minExpediente = 1
	maxExpediente = 999_999
)

// Generator builds fake reference data. A fixed seed gives the same data
// on every run.
type Generator struct {
	faker *gofakeit.Faker
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Medics returns count medics with distinct licence numbers.
func (g *Generator) Medics(count int) []appointment.Medic {
	ids := g.uniqueIDs(count, minCedula, maxCedula)
	out := make([]appointment.Medic, 0, count)
	for _, id := range ids {
		out = append(out, appointment.Medic{ID: id, Name: "Dr. " + g.faker.Name()})
	}
	return out
}

// Patients returns count patients with distinct record numbers.
func (g *Generator) Patients(count int) []appointment.Patient {
	ids := g.uniqueIDs(count, minExpediente, maxExpediente)
	out := make([]appointment.Patient, 0, count)
	for _, id := range ids {
		out = append(out, appointment.Patient{ID: id, Name: g.faker.Name()})
	}
	return out
}

func (g *Generator) uniqueIDs(count, lo, hi int) []int64 {
	seen := make(map[int]struct{}, count)
	out := make([]int64, 0, count)
	for len(out) < count && len(seen) <= hi-lo {
		n := g.faker.Number(lo, hi)
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, int64(n))
	}
	return out
}

// Write replaces the reference collections in w.
func Write(ctx context.Context, w appointment.ReferenceWriter, log zerolog.Logger, medics []appointment.Medic, patients []appointment.Patient) error {
	log.Info().Int("count", len(medics)).Msg("seeding medics")
	if err := w.SaveMedics(ctx, medics); err != nil {
		return fmt.Errorf("seed medics: %w", err)
	}

	log.Info().Int("count", len(patients)).Msg("seeding patients")
	if err := w.SavePatients(ctx, patients); err != nil {
		return fmt.Errorf("seed patients: %w", err)
	}

	log.Info().Msg("seed complete")
	return nil
}
