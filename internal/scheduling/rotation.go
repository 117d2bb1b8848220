package scheduling

import (
	"context"
	"sort"
	"time"

	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
)

// RotationSelector implements the rodízio: when the client has no preference,
// the least-loaded professional free at the requested slot takes the booking.
type RotationSelector struct {
	repo    domain.Repository
	checker *ConflictChecker
}

func NewRotationSelector(repo domain.Repository, checker *ConflictChecker) *RotationSelector {
	return &RotationSelector{
		repo:    repo,
		checker: checker,
	}
}

// Select picks the professional for the slot. Candidates are ranked by load
// first and recency second, then checked for conflicts in rank order, so the
// result is the fairest professional that is actually available — a busier
// but free professional beats a freer but conflicting one.
func (s *RotationSelector) Select(
	ctx context.Context,
	date time.Time,
	startMin int,
	durationMin int,
) (*domain.RotationCandidate, error) {

	candidates, err := s.repo.ListRotationCandidates(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, &domain.NotFoundError{Entity: "profissional ativo", ID: "rodízio"}
	}

	Rank(candidates)

	for i := range candidates {
		conflict, err := s.checker.Check(ctx, candidates[i].ProfessionalID, date, startMin, durationMin, "")
		if err != nil {
			return nil, err
		}
		if conflict == nil {
			return &candidates[i], nil
		}
	}

	return nil, &domain.NoneAvailableError{CandidatesChecked: len(candidates)}
}

// Rank orders candidates ascending by appointments today; ties go to whoever
// was served longest ago, with never-served-today professionals first. The
// order is the fairness contract, so it is exported and tested on its own.
func Rank(candidates []domain.RotationCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.AppointmentsToday != b.AppointmentsToday {
			return a.AppointmentsToday < b.AppointmentsToday
		}
		switch {
		case a.LastServedAt == nil && b.LastServedAt == nil:
			return false
		case a.LastServedAt == nil:
			return true
		case b.LastServedAt == nil:
			return false
		default:
			return a.LastServedAt.Before(*b.LastServedAt)
		}
	})
}
