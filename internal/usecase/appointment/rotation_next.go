package appointment

import (
	"context"

	"github.com/brukssoft/navalha-api/internal/clock"
	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/domain/schedule"
	"github.com/brukssoft/navalha-api/internal/httperr"
	"github.com/brukssoft/navalha-api/internal/scheduling"
)

type RotationNextInput struct {
	Date        string
	Time        string
	DurationMin int
}

// RotationNext answers "who takes the next client?" without booking anything.
// The dashboard shows the pick before the attendant confirms.
type RotationNext struct {
	rotation *scheduling.RotationSelector
	clock    clock.Clock

	defaultDurationMin int
}

func NewRotationNext(rotation *scheduling.RotationSelector, clk clock.Clock, defaultDurationMin int) *RotationNext {
	return &RotationNext{rotation: rotation, clock: clk, defaultDurationMin: defaultDurationMin}
}

func (uc *RotationNext) Execute(ctx context.Context, in RotationNextInput) (*domain.RotationCandidate, error) {
	if in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("dados_incompletos")
	}

	date, err := schedule.ParseDate(in.Date, uc.clock.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("data_invalida")
	}
	startMin, err := schedule.ToMinutes(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("horario_invalido")
	}

	durationMin := in.DurationMin
	if durationMin <= 0 {
		durationMin = uc.defaultDurationMin
	}

	return uc.rotation.Select(ctx, date, startMin, durationMin)
}
