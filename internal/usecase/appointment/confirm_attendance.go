package appointment

import (
	"context"

	"github.com/brukssoft/navalha-api/internal/audit"
	"github.com/brukssoft/navalha-api/internal/clock"
	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/domain/schedule"
	"github.com/brukssoft/navalha-api/internal/httperr"
	"github.com/brukssoft/navalha-api/internal/models"
	"github.com/brukssoft/navalha-api/internal/notification"
)

type ConfirmAttendanceInput struct {
	ID       string
	Attended bool
	Notes    string
}

// ConfirmAttendance records whether the client showed up. Attendance and
// status move together; the handler exposes it as the dashboard's
// "compareceu / não compareceu" toggle.
type ConfirmAttendance struct {
	repo       domain.Repository
	dispatcher *notification.Dispatcher
	audit      *audit.Dispatcher
	clock      clock.Clock
}

func NewConfirmAttendance(
	repo domain.Repository,
	dispatcher *notification.Dispatcher,
	auditD *audit.Dispatcher,
	clk clock.Clock,
) *ConfirmAttendance {
	return &ConfirmAttendance{repo: repo, dispatcher: dispatcher, audit: auditD, clock: clk}
}

func (uc *ConfirmAttendance) Execute(
	ctx context.Context,
	in ConfirmAttendanceInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if domain.Status(ap.Status).IsTerminal() {
		return nil, httperr.ErrBusiness("agendamento_ja_encerrado")
	}

	domain.ConfirmAttendance(ap, in.Attended, in.Notes, uc.clock.Now())

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if in.Attended && ap.ProfessionalID != nil {
		uc.dispatcher.Dispatch(ctx, *ap.ProfessionalID, &notification.Payload{
			Tipo:          notification.EventConfirmation,
			AgendamentoID: ap.ID,
			Cliente: notification.ClientInfo{
				Nome:     ap.ClientName,
				Telefone: ap.ClientPhone,
			},
			Agendamento: notification.AppointmentInfo{
				Data:       schedule.FormatDate(ap.Date),
				Hora:       ap.StartTime,
				Barbeiro:   ap.ProfessionalName,
				Servicos:   serviceNamesOf(ap),
				ValorTotal: ap.Value,
			},
		}, notification.EventConfirmation)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_attendance",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"compareceu": in.Attended},
	})

	return ap, nil
}
