package scheduling

import (
	"context"
	"time"

	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/models"
)

// fakeRepo overrides only what each test configures; calling anything else
// panics through the embedded nil interface.
type fakeRepo struct {
	domain.Repository

	listAppointments       func(ctx context.Context, f domain.AppointmentFilter) ([]models.Appointment, error)
	listRotationCandidates func(ctx context.Context, date time.Time) ([]domain.RotationCandidate, error)
}

func (f *fakeRepo) ListAppointments(ctx context.Context, filter domain.AppointmentFilter) ([]models.Appointment, error) {
	return f.listAppointments(ctx, filter)
}

func (f *fakeRepo) ListRotationCandidates(ctx context.Context, date time.Time) ([]domain.RotationCandidate, error) {
	return f.listRotationCandidates(ctx, date)
}
