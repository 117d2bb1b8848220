package appointment

import (
	"context"

	"github.com/brukssoft/navalha-api/internal/audit"
	"github.com/brukssoft/navalha-api/internal/clock"
	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/models"
)

// CheckInAppointment marks the client's arrival and starts the service timer.
type CheckInAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock clock.Clock
}

func NewCheckInAppointment(repo domain.Repository, auditD *audit.Dispatcher, clk clock.Clock) *CheckInAppointment {
	return &CheckInAppointment{repo: repo, audit: auditD, clock: clk}
}

func (uc *CheckInAppointment) Execute(ctx context.Context, id string) (*models.Appointment, error) {
	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.CheckIn(ap, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_checkin",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
