package appointment

import (
	"context"
	"time"

	"github.com/brukssoft/navalha-api/internal/clock"
	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/domain/schedule"
	"github.com/brukssoft/navalha-api/internal/httperr"
	"github.com/brukssoft/navalha-api/internal/models"
)

type ListAppointmentsInput struct {
	Date           string // empty means today
	ProfessionalID string
	Status         string
}

// ListAppointments is the dashboard's day view.
type ListAppointments struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewListAppointments(repo domain.Repository, clk clock.Clock) *ListAppointments {
	return &ListAppointments{repo: repo, clock: clk}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]models.Appointment, error) {

	var date time.Time
	if in.Date == "" {
		now := uc.clock.Now()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.clock.Location())
	} else {
		var err error
		date, err = schedule.ParseDate(in.Date, uc.clock.Location())
		if err != nil {
			return nil, httperr.ErrBusiness("data_invalida")
		}
	}

	f := domain.AppointmentFilter{
		Date:           &date,
		ProfessionalID: in.ProfessionalID,
	}
	if in.Status != "" {
		f.StatusIn = []domain.Status{domain.Status(in.Status)}
	}

	return uc.repo.ListAppointments(ctx, f)
}

type ListMonthInput struct {
	Year  int
	Month int
}

// ListMonth feeds the calendar view with one month of appointments.
type ListMonth struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewListMonth(repo domain.Repository, clk clock.Clock) *ListMonth {
	return &ListMonth{repo: repo, clock: clk}
}

func (uc *ListMonth) Execute(ctx context.Context, in ListMonthInput) ([]models.Appointment, error) {
	if in.Month < 1 || in.Month > 12 || in.Year < 2000 {
		return nil, httperr.ErrBusiness("periodo_invalido")
	}

	from := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, uc.clock.Location())
	to := from.AddDate(0, 1, 0)

	return uc.repo.ListAppointments(ctx, domain.AppointmentFilter{
		DateFrom: &from,
		DateTo:   &to,
	})
}
