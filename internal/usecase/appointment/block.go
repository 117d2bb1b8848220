package appointment

import (
	"context"

	"github.com/brukssoft/navalha-api/internal/audit"
	"github.com/brukssoft/navalha-api/internal/clock"
	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/domain/schedule"
	"github.com/brukssoft/navalha-api/internal/httperr"
	"github.com/brukssoft/navalha-api/internal/models"
	"github.com/brukssoft/navalha-api/internal/scheduling"
)

type BlockSlotInput struct {
	ProfessionalID string
	Date           string
	StartTime      string
	EndTime        string
	Reason         string
}

// BlockSlot reserves a professional's time against new bookings. The block is
// a regular appointment row with status bloqueado, so conflict detection sees
// it with no extra code.
type BlockSlot struct {
	repo    domain.Repository
	checker *scheduling.ConflictChecker
	audit   *audit.Dispatcher
	clock   clock.Clock
}

func NewBlockSlot(
	repo domain.Repository,
	checker *scheduling.ConflictChecker,
	auditD *audit.Dispatcher,
	clk clock.Clock,
) *BlockSlot {
	return &BlockSlot{repo: repo, checker: checker, audit: auditD, clock: clk}
}

func (uc *BlockSlot) Execute(ctx context.Context, in BlockSlotInput) (*models.Appointment, error) {
	if in.Date == "" || in.StartTime == "" || in.EndTime == "" {
		return nil, httperr.ErrBusiness("dados_incompletos")
	}

	date, err := schedule.ParseDate(in.Date, uc.clock.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("data_invalida")
	}
	startMin, err := schedule.ToMinutes(in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("horario_invalido")
	}
	endMin, err := schedule.ToMinutes(in.EndTime)
	if err != nil {
		return nil, httperr.ErrBusiness("horario_invalido")
	}
	if endMin <= startMin {
		return nil, httperr.ErrBusiness("horario_invalido")
	}

	pro, err := uc.repo.GetProfessional(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	reason := in.Reason
	if reason == "" {
		reason = "Horário bloqueado"
	}

	block := &models.Appointment{
		ProfessionalID:   &pro.ID,
		Date:             date,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		ClientName:       "BLOQUEADO: " + reason,
		ProfessionalName: pro.Name,
		Status:           string(domain.StatusBlocked),
		Notes:            reason,
	}

	err = uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		conflict, err := uc.checker.CheckWithin(ctx, tx, pro.ID, date, startMin, endMin-startMin, "")
		if err != nil {
			return err
		}
		if conflict != nil {
			return &domain.ConflictError{
				ProfessionalName: pro.Name,
				RequestedTime:    in.StartTime,
				Conflicting:      *conflict,
				Suggestions:      uc.checker.SuggestSlots(conflict),
			}
		}
		return tx.CreateAppointment(ctx, block, nil)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "slot_blocked",
		Entity:   "appointment",
		EntityID: &block.ID,
		Metadata: map[string]any{"profissional": pro.Name, "de": in.StartTime, "ate": in.EndTime},
	})

	return block, nil
}
