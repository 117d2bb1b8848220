package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/brukssoft/navalha-api/internal/audit"
	"github.com/brukssoft/navalha-api/internal/clock"
	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/domain/schedule"
	"github.com/brukssoft/navalha-api/internal/history"
	"github.com/brukssoft/navalha-api/internal/httperr"
	"github.com/brukssoft/navalha-api/internal/models"
	"github.com/brukssoft/navalha-api/internal/notification"
)

type CancelAppointmentInput struct {
	ID          string
	Reason      string
	CancelledBy string // "cliente", "barbeiro", "admin", ...

	// Force skips the client cancellation window. Staff-only.
	Force bool
}

type CancelAppointment struct {
	repo       domain.Repository
	dispatcher *notification.Dispatcher
	history    *history.Store
	audit      *audit.Dispatcher
	clock      clock.Clock

	defaultWindowHours int
}

func NewCancelAppointment(
	repo domain.Repository,
	dispatcher *notification.Dispatcher,
	hist *history.Store,
	auditD *audit.Dispatcher,
	clk clock.Clock,
	defaultWindowHours int,
) *CancelAppointment {
	return &CancelAppointment{
		repo:               repo,
		dispatcher:         dispatcher,
		history:            hist,
		audit:              auditD,
		clock:              clk,
		defaultWindowHours: defaultWindowHours,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*models.Appointment, error) {

	if in.CancelledBy == "" {
		in.CancelledBy = "cliente"
	}

	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Janela de cancelamento (só vale para o cliente)
	// --------------------------------------------------
	now := uc.clock.Now()
	hoursNotice := uc.hoursUntil(ap, now)

	windowHours := uc.defaultWindowHours
	if settings, err := uc.repo.GetSettings(ctx); err == nil && settings.CancellationWindowHours > 0 {
		windowHours = settings.CancellationWindowHours
	}

	allowed := true
	if in.CancelledBy == "cliente" && !in.Force && hoursNotice < float64(windowHours) {
		allowed = false
	}

	// Toda tentativa entra no histórico de cancelamentos, permitida ou não.
	record := &models.CancellationRecord{
		AppointmentID:    ap.ID,
		CancelledBy:      in.CancelledBy,
		Reason:           in.Reason,
		HoursNotice:      hoursNotice,
		Allowed:          allowed,
		ClientName:       ap.ClientName,
		ClientPhone:      ap.ClientPhone,
		ProfessionalName: ap.ProfessionalName,
		Date:             schedule.FormatDate(ap.Date),
		StartTime:        ap.StartTime,
		Value:            ap.Value,
	}
	if err := uc.repo.AppendCancellationRecord(ctx, record); err != nil {
		return nil, err
	}

	if !allowed {
		return nil, httperr.ErrBusiness("cancelamento_fora_do_prazo")
	}

	if err := domain.Cancel(ap, in.Reason, in.CancelledBy); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Notificações + histórico
	// --------------------------------------------------
	professionalID := ""
	if ap.ProfessionalID != nil {
		professionalID = *ap.ProfessionalID
	}

	uc.dispatcher.Dispatch(ctx, professionalID, &notification.Payload{
		Tipo:          notification.EventCancellation,
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
		Cancelamento: &notification.CancellationInfo{
			CanceladoPor:      in.CancelledBy,
			Motivo:            in.Reason,
			HorasAntecedencia: fmt.Sprintf("%.1f", hoursNotice),
		},
	}, notification.EventCancellation)

	uc.history.RecordCancellation(ctx, ap.ClientName, ap.ClientPhone, history.CancellationEntry{
		Data:         schedule.FormatDate(ap.Date),
		Hora:         ap.StartTime,
		Barbeiro:     ap.ProfessionalName,
		Motivo:       in.Reason,
		CanceladoPor: in.CancelledBy,
		Antecedencia: hoursNotice,
		Origem:       "dashboard",
		Timestamp:    now.Format(time.RFC3339),
	})

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"cancelado_por": in.CancelledBy, "motivo": in.Reason},
	})

	return ap, nil
}

// hoursUntil measures the notice between now and the scheduled start. A
// booking with an unreadable start time counts from midnight.
func (uc *CancelAppointment) hoursUntil(ap *models.Appointment, now time.Time) float64 {
	startMin := 0
	if m, err := schedule.ToMinutes(ap.StartTime); err == nil {
		startMin = m
	}
	return schedule.At(ap.Date, startMin, uc.clock.Location()).Sub(now).Hours()
}

func serviceNamesOf(ap *models.Appointment) []string {
	names := make([]string, 0, len(ap.Services))
	for _, s := range ap.Services {
		if s.Service.Name != "" {
			names = append(names, s.Service.Name)
		}
	}
	return names
}
