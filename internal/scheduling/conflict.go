package scheduling

import (
	"context"
	"time"

	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/domain/schedule"
	"github.com/brukssoft/navalha-api/internal/models"
)

// lastBookableMinute caps slot suggestions: nothing after 19:00 is offered.
const lastBookableMinute = 19 * 60

// ConflictChecker decides whether a candidate slot collides with any
// occupying appointment of a professional on a given day. The scan is O(n)
// over that professional's day; the contract stays the same if the lookup is
// ever swapped for an interval structure.
type ConflictChecker struct {
	repo               domain.Repository
	defaultDurationMin int
}

func NewConflictChecker(repo domain.Repository, defaultDurationMin int) *ConflictChecker {
	return &ConflictChecker{
		repo:               repo,
		defaultDurationMin: defaultDurationMin,
	}
}

// Check returns the first conflicting appointment, or nil when the slot is
// free. excludeID removes the caller's own appointment from the scan, which
// is what lets a reschedule keep its current slot.
func (c *ConflictChecker) Check(
	ctx context.Context,
	professionalID string,
	date time.Time,
	startMin int,
	durationMin int,
	excludeID string,
) (*domain.ConflictDetail, error) {
	return c.check(ctx, c.repo, professionalID, date, startMin, durationMin, excludeID, false)
}

// CheckWithin runs the same scan against a transaction-bound repository with
// the matched rows locked, for callers that insert right after checking.
func (c *ConflictChecker) CheckWithin(
	ctx context.Context,
	repo domain.Repository,
	professionalID string,
	date time.Time,
	startMin int,
	durationMin int,
	excludeID string,
) (*domain.ConflictDetail, error) {
	return c.check(ctx, repo, professionalID, date, startMin, durationMin, excludeID, true)
}

func (c *ConflictChecker) check(
	ctx context.Context,
	repo domain.Repository,
	professionalID string,
	date time.Time,
	startMin int,
	durationMin int,
	excludeID string,
	forUpdate bool,
) (*domain.ConflictDetail, error) {

	existing, err := repo.ListAppointments(ctx, domain.AppointmentFilter{
		ProfessionalID: professionalID,
		Date:           &date,
		StatusIn:       domain.OccupyingStatuses,
		ExcludeID:      excludeID,
		ForUpdate:      forUpdate,
	})
	if err != nil {
		return nil, err
	}

	for i := range existing {
		ap := &existing[i]

		apStart, err := schedule.ToMinutes(ap.StartTime)
		if err != nil {
			// Linha degradada sem horário legível não bloqueia o slot.
			continue
		}

		apDuration := c.DurationOf(ap, apStart)

		if schedule.Overlaps(startMin, durationMin, apStart, apDuration) {
			return &domain.ConflictDetail{
				AppointmentID: ap.ID,
				Status:        domain.Status(ap.Status),
				ClientName:    ap.ClientName,
				StartTime:     ap.StartTime,
				DurationMin:   apDuration,
			}, nil
		}
	}

	return nil, nil
}

// DurationOf derives an existing appointment's slot length: summed service
// durations, then an explicit end time, then the configured default. The
// default is deliberate leniency so rows with degraded service data never
// produce spurious conflicts.
func (c *ConflictChecker) DurationOf(ap *models.Appointment, startMin int) int {
	total := 0
	for _, s := range ap.Services {
		if s.DurationMin > 0 {
			total += s.DurationMin
		} else {
			total += c.defaultDurationMin
		}
	}
	if total > 0 {
		return total
	}

	if ap.EndTime != "" {
		if endMin, err := schedule.ToMinutes(ap.EndTime); err == nil && endMin > startMin {
			return endMin - startMin
		}
	}

	return c.defaultDurationMin
}

// SuggestSlots offers up to six half-hour starts from the end of the
// conflicting booking onwards, never past 19:00.
func (c *ConflictChecker) SuggestSlots(conflict *domain.ConflictDetail) []string {
	startMin, err := schedule.ToMinutes(conflict.StartTime)
	if err != nil {
		return nil
	}
	endMin := startMin + conflict.DurationMin

	// Arredonda para o próximo slot de 30min.
	next := endMin
	if rem := next % 30; rem != 0 {
		next += 30 - rem
	}

	var out []string
	for i := 0; i < 6 && next < lastBookableMinute; i++ {
		out = append(out, schedule.FromMinutes(next))
		next += 30
	}
	return out
}
