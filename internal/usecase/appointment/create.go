package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brukssoft/navalha-api/internal/audit"
	"github.com/brukssoft/navalha-api/internal/clock"
	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/domain/schedule"
	"github.com/brukssoft/navalha-api/internal/history"
	"github.com/brukssoft/navalha-api/internal/httperr"
	"github.com/brukssoft/navalha-api/internal/models"
	"github.com/brukssoft/navalha-api/internal/notification"
	"github.com/brukssoft/navalha-api/internal/scheduling"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientName  string
	ClientPhone string
	ClientEmail string
	ClientID    string

	Date string
	Time string

	ServiceIDs []string

	// PreferredProfessional is a professional id or a (partial) name; empty
	// means the rotation decides.
	PreferredProfessional string

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo       domain.Repository
	checker    *scheduling.ConflictChecker
	rotation   *scheduling.RotationSelector
	dispatcher *notification.Dispatcher
	history    *history.Store
	audit      *audit.Dispatcher
	clock      clock.Clock

	defaultDurationMin int
}

func NewCreateAppointment(
	repo domain.Repository,
	checker *scheduling.ConflictChecker,
	rotation *scheduling.RotationSelector,
	dispatcher *notification.Dispatcher,
	hist *history.Store,
	auditD *audit.Dispatcher,
	clk clock.Clock,
	defaultDurationMin int,
) *CreateAppointment {
	return &CreateAppointment{
		repo:               repo,
		checker:            checker,
		rotation:           rotation,
		dispatcher:         dispatcher,
		history:            hist,
		audit:              auditD,
		clock:              clk,
		defaultDurationMin: defaultDurationMin,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Validação de entrada
	// --------------------------------------------------
	if in.ClientName == "" || in.ClientPhone == "" || in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("dados_incompletos")
	}
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("servicos_obrigatorios")
	}

	date, err := schedule.ParseDate(in.Date, uc.clock.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("data_invalida")
	}

	startMin, err := schedule.ToMinutes(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("horario_invalido")
	}

	// --------------------------------------------------
	// Serviços
	// --------------------------------------------------
	services, err := uc.repo.ListActiveServices(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, httperr.ErrBusiness("servicos_invalidos")
	}

	durationMin := 0
	value := 0.0
	serviceNames := make([]string, 0, len(services))
	links := make([]models.AppointmentService, 0, len(services))
	for _, s := range services {
		d := s.DurationMin
		if d <= 0 {
			d = uc.defaultDurationMin
		}
		durationMin += d
		value += s.Price
		serviceNames = append(serviceNames, s.Name)
		links = append(links, models.AppointmentService{
			ServiceID:   s.ID,
			Price:       s.Price,
			DurationMin: s.DurationMin,
		})
	}

	// --------------------------------------------------
	// Profissional: preferido ou rodízio
	// --------------------------------------------------
	pro, err := uc.resolveProfessional(ctx, in.PreferredProfessional, date, startMin, durationMin)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Cliente (get or create)
	// --------------------------------------------------
	clientID := in.ClientID
	if clientID == "" {
		client, err := uc.repo.GetOrCreateClient(ctx, in.ClientName, in.ClientPhone, in.ClientEmail)
		if err != nil {
			return nil, err
		}
		clientID = client.ID
	}

	// --------------------------------------------------
	// Conflito + criação, na mesma transação
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:         &clientID,
		ProfessionalID:   &pro.ID,
		Date:             date,
		StartTime:        in.Time,
		ClientName:       in.ClientName,
		ClientPhone:      in.ClientPhone,
		ProfessionalName: pro.Name,
		Value:            value,
		Status:           string(domain.InitialStatus()),
		Notes:            in.Notes,
	}

	err = uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		conflict, err := uc.checker.CheckWithin(ctx, tx, pro.ID, date, startMin, durationMin, "")
		if err != nil {
			return err
		}
		if conflict != nil {
			return &domain.ConflictError{
				ProfessionalName: pro.Name,
				RequestedTime:    in.Time,
				Conflicting:      *conflict,
				Suggestions:      uc.checker.SuggestSlots(conflict),
			}
		}
		return tx.CreateAppointment(ctx, ap, links)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Notificações + histórico (nunca falham a operação)
	// --------------------------------------------------
	uc.dispatcher.Dispatch(ctx, pro.ID, &notification.Payload{
		Tipo:          notification.EventNewAppointment,
		AgendamentoID: ap.ID,
		Cliente: notification.ClientInfo{
			Nome:     in.ClientName,
			Telefone: in.ClientPhone,
		},
		Agendamento: notification.AppointmentInfo{
			Data:         schedule.FormatDate(date),
			Hora:         in.Time,
			Barbeiro:     pro.Name,
			Servicos:     serviceNames,
			ValorTotal:   value,
			DuracaoTotal: durationMin,
		},
	}, notification.EventNewAppointment)

	uc.history.RecordBooking(ctx, in.ClientName, in.ClientPhone, history.BookingEntry{
		Data:      schedule.FormatDate(date),
		Hora:      in.Time,
		Barbeiro:  pro.Name,
		Servicos:  serviceNames,
		Valor:     value,
		Status:    ap.Status,
		Origem:    "dashboard",
		Timestamp: uc.clock.Now().Format(time.RFC3339),
	})

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// resolveProfessional pins the requested professional or runs the rotation.
// A pinned professional is not conflict-checked here; the transactional check
// before insert covers both paths.
func (uc *CreateAppointment) resolveProfessional(
	ctx context.Context,
	preferred string,
	date time.Time,
	startMin int,
	durationMin int,
) (*models.Professional, error) {

	if preferred != "" {
		if _, err := uuid.Parse(preferred); err == nil {
			return uc.repo.GetProfessional(ctx, preferred)
		}
		return uc.repo.FindProfessionalByName(ctx, preferred)
	}

	candidate, err := uc.rotation.Select(ctx, date, startMin, durationMin)
	if err != nil {
		return nil, err
	}
	return uc.repo.GetProfessional(ctx, candidate.ProfessionalID)
}
