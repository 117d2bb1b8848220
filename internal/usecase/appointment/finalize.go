package appointment

import (
	"context"
	"strings"

	"github.com/brukssoft/navalha-api/internal/audit"
	"github.com/brukssoft/navalha-api/internal/clock"
	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/models"
)

type FinalizeAppointmentInput struct {
	ID    string
	Value *float64
	Notes string
}

// FinalizeAppointment closes a booking and refreshes the client's last
// service.
type FinalizeAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock clock.Clock
}

func NewFinalizeAppointment(repo domain.Repository, auditD *audit.Dispatcher, clk clock.Clock) *FinalizeAppointment {
	return &FinalizeAppointment{repo: repo, audit: auditD, clock: clk}
}

func (uc *FinalizeAppointment) Execute(
	ctx context.Context,
	in FinalizeAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := domain.Finalize(ap, uc.clock.Now(), in.Value, in.Notes); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Último serviço do cliente: best effort, não falha a finalização.
	if ap.ClientID != nil {
		if names := serviceNamesOf(ap); len(names) > 0 {
			_ = uc.repo.UpdateClientLastService(ctx, *ap.ClientID, strings.Join(names, ", "))
		}
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_finalized",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
