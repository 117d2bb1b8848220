package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/models"
)

func tPtr(t time.Time) *time.Time { return &t }

func TestRankLeastLoadedFirst(t *testing.T) {
	candidates := []domain.RotationCandidate{
		{ProfessionalID: "a", AppointmentsToday: 3},
		{ProfessionalID: "b", AppointmentsToday: 1},
		{ProfessionalID: "c", AppointmentsToday: 2},
	}

	Rank(candidates)

	if candidates[0].ProfessionalID != "b" || candidates[1].ProfessionalID != "c" || candidates[2].ProfessionalID != "a" {
		t.Errorf("ordem = %s %s %s", candidates[0].ProfessionalID, candidates[1].ProfessionalID, candidates[2].ProfessionalID)
	}
}

func TestRankTieBreaksByRecency(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	candidates := []domain.RotationCandidate{
		{ProfessionalID: "recent", AppointmentsToday: 2, LastServedAt: tPtr(base.Add(time.Hour))},
		{ProfessionalID: "older", AppointmentsToday: 2, LastServedAt: tPtr(base)},
		{ProfessionalID: "never", AppointmentsToday: 2},
	}

	Rank(candidates)

	// Quem nunca atendeu hoje vem primeiro, depois o atendimento mais antigo.
	if candidates[0].ProfessionalID != "never" {
		t.Errorf("primeiro = %s, esperava never", candidates[0].ProfessionalID)
	}
	if candidates[1].ProfessionalID != "older" {
		t.Errorf("segundo = %s, esperava older", candidates[1].ProfessionalID)
	}
}

func TestSelectPicksLeastLoadedFreeProfessional(t *testing.T) {
	// "free" tem menos atendimentos mas está ocupado no slot; "busy" está
	// livre. O rodízio escolhe busy: justiça só vale entre disponíveis.
	busyAppointment := existingAt("09:00", 30)
	busyAppointment.ProfessionalID = proPtr("free")

	repo := &fakeRepo{
		listRotationCandidates: func(ctx context.Context, date time.Time) ([]domain.RotationCandidate, error) {
			return []domain.RotationCandidate{
				{ProfessionalID: "free", ProfessionalName: "Livre", AppointmentsToday: 0},
				{ProfessionalID: "busy", ProfessionalName: "Ocupado", AppointmentsToday: 5},
			}, nil
		},
		listAppointments: func(ctx context.Context, f domain.AppointmentFilter) ([]models.Appointment, error) {
			if f.ProfessionalID == "free" {
				return []models.Appointment{busyAppointment}, nil
			}
			return nil, nil
		},
	}

	checker := NewConflictChecker(repo, 30)
	selector := NewRotationSelector(repo, checker)

	got, err := selector.Select(context.Background(), time.Now(), 9*60, 30)
	if err != nil {
		t.Fatal(err)
	}
	if got.ProfessionalID != "busy" {
		t.Errorf("escolhido = %s, esperava busy", got.ProfessionalID)
	}
}

func TestSelectAllBusy(t *testing.T) {
	occupied := existingAt("09:00", 30)

	repo := &fakeRepo{
		listRotationCandidates: func(ctx context.Context, date time.Time) ([]domain.RotationCandidate, error) {
			return []domain.RotationCandidate{
				{ProfessionalID: "a", AppointmentsToday: 1},
				{ProfessionalID: "b", AppointmentsToday: 2},
			}, nil
		},
		listAppointments: func(ctx context.Context, f domain.AppointmentFilter) ([]models.Appointment, error) {
			return []models.Appointment{occupied}, nil
		},
	}

	checker := NewConflictChecker(repo, 30)
	selector := NewRotationSelector(repo, checker)

	_, err := selector.Select(context.Background(), time.Now(), 9*60, 30)

	var noneErr *domain.NoneAvailableError
	if !errors.As(err, &noneErr) {
		t.Fatalf("esperava NoneAvailableError, veio %v", err)
	}
	if noneErr.CandidatesChecked != 2 {
		t.Errorf("candidatos verificados = %d", noneErr.CandidatesChecked)
	}
}

func TestSelectNoActiveProfessionals(t *testing.T) {
	repo := &fakeRepo{
		listRotationCandidates: func(ctx context.Context, date time.Time) ([]domain.RotationCandidate, error) {
			return nil, nil
		},
	}

	selector := NewRotationSelector(repo, NewConflictChecker(repo, 30))

	_, err := selector.Select(context.Background(), time.Now(), 9*60, 30)

	var nfErr *domain.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("esperava NotFoundError, veio %v", err)
	}
}
