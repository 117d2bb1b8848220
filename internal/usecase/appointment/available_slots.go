package appointment

import (
	"context"

	"github.com/brukssoft/navalha-api/internal/clock"
	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/domain/schedule"
	"github.com/brukssoft/navalha-api/internal/httperr"
	"github.com/brukssoft/navalha-api/internal/scheduling"
)

// Business hours for the slot grid. Bookings outside the grid can still be
// created directly; the grid only drives suggestions.
const (
	openingMinute = 8 * 60
	closingMinute = 19 * 60
	slotStepMin   = 30
)

type AvailableSlotsInput struct {
	ProfessionalID string
	Date           string
	DurationMin    int
}

// AvailableSlots walks the half-hour grid for one professional's day and
// returns the starts that fit the requested duration. One listing per call;
// the overlap test runs in memory.
type AvailableSlots struct {
	repo    domain.Repository
	checker *scheduling.ConflictChecker
	clock   clock.Clock

	defaultDurationMin int
}

func NewAvailableSlots(
	repo domain.Repository,
	checker *scheduling.ConflictChecker,
	clk clock.Clock,
	defaultDurationMin int,
) *AvailableSlots {
	return &AvailableSlots{
		repo:               repo,
		checker:            checker,
		clock:              clk,
		defaultDurationMin: defaultDurationMin,
	}
}

func (uc *AvailableSlots) Execute(ctx context.Context, in AvailableSlotsInput) ([]string, error) {
	if in.ProfessionalID == "" || in.Date == "" {
		return nil, httperr.ErrBusiness("dados_incompletos")
	}

	date, err := schedule.ParseDate(in.Date, uc.clock.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("data_invalida")
	}

	durationMin := in.DurationMin
	if durationMin <= 0 {
		durationMin = uc.defaultDurationMin
	}

	existing, err := uc.repo.ListAppointments(ctx, domain.AppointmentFilter{
		ProfessionalID: in.ProfessionalID,
		Date:           &date,
		StatusIn:       domain.OccupyingStatuses,
	})
	if err != nil {
		return nil, err
	}

	type interval struct{ start, duration int }
	busy := make([]interval, 0, len(existing))
	for i := range existing {
		ap := &existing[i]
		start, err := schedule.ToMinutes(ap.StartTime)
		if err != nil {
			continue
		}
		busy = append(busy, interval{start, uc.checker.DurationOf(ap, start)})
	}

	slots := []string{}
	for start := openingMinute; start+durationMin <= closingMinute; start += slotStepMin {
		free := true
		for _, b := range busy {
			if schedule.Overlaps(start, durationMin, b.start, b.duration) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, schedule.FromMinutes(start))
		}
	}

	return slots, nil
}
