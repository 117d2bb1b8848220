package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brukssoft/navalha-api/internal/audit"
	"github.com/brukssoft/navalha-api/internal/clock"
	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/models"
	"github.com/brukssoft/navalha-api/internal/notification"
	"github.com/brukssoft/navalha-api/internal/scheduling"
)

type fakeRepo struct {
	domain.Repository

	getAppointment   func(ctx context.Context, id string) (*models.Appointment, error)
	listAppointments func(ctx context.Context, f domain.AppointmentFilter) ([]models.Appointment, error)
	updated          []models.Appointment
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return f.getAppointment(ctx, id)
}

func (f *fakeRepo) ListAppointments(ctx context.Context, filter domain.AppointmentFilter) ([]models.Appointment, error) {
	return f.listAppointments(ctx, filter)
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.updated = append(f.updated, *ap)
	return nil
}

func (f *fakeRepo) InTransaction(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(f)
}

func strPtr(s string) *string { return &s }

func TestRescheduleUsesOwnSlotDuration(t *testing.T) {
	// Agendamento de 09:00 às 12:00 (fim explícito, sem serviços vinculados).
	// Movido para 11:30, as três horas dele colidem com o corte das 13:00.
	target := &models.Appointment{
		ID:               "ap-1",
		ProfessionalID:   strPtr("pro-1"),
		ProfessionalName: "Carlos",
		ClientName:       "João",
		Date:             time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:        "09:00",
		EndTime:          "12:00",
		Status:           string(domain.StatusScheduled),
	}

	other := models.Appointment{
		ID:             "ap-2",
		ProfessionalID: strPtr("pro-1"),
		StartTime:      "13:00",
		Status:         string(domain.StatusScheduled),
		ClientName:     "Maria",
		Services: []models.AppointmentService{
			{ServiceID: "svc-1", DurationMin: 30},
		},
	}

	repo := &fakeRepo{
		getAppointment: func(ctx context.Context, id string) (*models.Appointment, error) {
			return target, nil
		},
		listAppointments: func(ctx context.Context, f domain.AppointmentFilter) ([]models.Appointment, error) {
			if f.ExcludeID == "ap-1" {
				return []models.Appointment{other}, nil
			}
			return []models.Appointment{*target, other}, nil
		},
	}

	checker := scheduling.NewConflictChecker(repo, 30)
	uc := NewRescheduleAppointment(
		repo,
		checker,
		notification.NewDispatcher(repo, time.Second),
		audit.NewDispatcher(audit.New(nil)),
		clock.Fixed{Instant: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)},
	)

	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		ID:      "ap-1",
		NewDate: "10/03/2026",
		NewTime: "11:30",
	})

	var conflictErr *domain.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("esperava ConflictError, veio %v", err)
	}
	if conflictErr.Conflicting.AppointmentID != "ap-2" {
		t.Errorf("conflito com %s", conflictErr.Conflicting.AppointmentID)
	}
	if len(repo.updated) != 0 {
		t.Error("agendamento não deveria ter sido persistido")
	}
}
