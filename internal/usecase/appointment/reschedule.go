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
	"github.com/brukssoft/navalha-api/internal/scheduling"
)

type RescheduleAppointmentInput struct {
	ID      string
	NewDate string
	NewTime string
}

// RescheduleAppointment moves a booking to a new slot with the same
// professional. Changing professionals is a cancel plus a new booking.
type RescheduleAppointment struct {
	repo       domain.Repository
	checker    *scheduling.ConflictChecker
	dispatcher *notification.Dispatcher
	audit      *audit.Dispatcher
	clock      clock.Clock
}

func NewRescheduleAppointment(
	repo domain.Repository,
	checker *scheduling.ConflictChecker,
	dispatcher *notification.Dispatcher,
	auditD *audit.Dispatcher,
	clk clock.Clock,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:       repo,
		checker:    checker,
		dispatcher: dispatcher,
		audit:      auditD,
		clock:      clk,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	if in.NewDate == "" || in.NewTime == "" {
		return nil, httperr.ErrBusiness("dados_incompletos")
	}

	newDate, err := schedule.ParseDate(in.NewDate, uc.clock.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("data_invalida")
	}
	startMin, err := schedule.ToMinutes(in.NewTime)
	if err != nil {
		return nil, httperr.ErrBusiness("horario_invalido")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}
	if ap.ProfessionalID == nil {
		return nil, httperr.ErrBusiness("agendamento_sem_profissional")
	}

	oldDate := schedule.FormatDate(ap.Date)
	oldTime := ap.StartTime

	// A duração deriva do slot atual do agendamento; só então ela é testada
	// contra o novo horário.
	oldStart, err := schedule.ToMinutes(ap.StartTime)
	if err != nil {
		oldStart = startMin
	}
	durationMin := uc.checker.DurationOf(ap, oldStart)

	err = uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		// O próprio agendamento fica fora da varredura, então mantê-lo no
		// mesmo horário (ou sobrepor o slot antigo) é permitido.
		conflict, err := uc.checker.CheckWithin(ctx, tx, *ap.ProfessionalID, newDate, startMin, durationMin, ap.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return &domain.ConflictError{
				ProfessionalName: ap.ProfessionalName,
				RequestedTime:    in.NewTime,
				Conflicting:      *conflict,
				Suggestions:      uc.checker.SuggestSlots(conflict),
			}
		}

		if err := domain.Reschedule(ap, newDate, in.NewTime); err != nil {
			return err
		}
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, *ap.ProfessionalID, &notification.Payload{
		Tipo:          notification.EventReschedule,
		AgendamentoID: ap.ID,
		Cliente: notification.ClientInfo{
			Nome:     ap.ClientName,
			Telefone: ap.ClientPhone,
		},
		Agendamento: notification.AppointmentInfo{
			Data:       schedule.FormatDate(newDate),
			Hora:       in.NewTime,
			Barbeiro:   ap.ProfessionalName,
			Servicos:   serviceNamesOf(ap),
			ValorTotal: ap.Value,
		},
		Reagendamento: &notification.RescheduleInfo{
			DataAnterior: oldDate,
			HoraAnterior: oldTime,
		},
	}, notification.EventReschedule)

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"de":   oldDate + " " + oldTime,
			"para": schedule.FormatDate(newDate) + " " + in.NewTime,
		},
	})

	return ap, nil
}
