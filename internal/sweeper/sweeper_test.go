package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brukssoft/navalha-api/internal/clock"
	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/models"
)

type fakeRepo struct {
	domain.Repository

	pending []models.Appointment
	updated []models.Appointment

	updateErr func(ap *models.Appointment) error
}

func (f *fakeRepo) ListAppointments(ctx context.Context, filter domain.AppointmentFilter) ([]models.Appointment, error) {
	out := make([]models.Appointment, len(f.pending))
	copy(out, f.pending)
	return out, nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if f.updateErr != nil {
		if err := f.updateErr(ap); err != nil {
			return err
		}
	}
	f.updated = append(f.updated, *ap)
	return nil
}

func pendingAt(id string, date time.Time, start string) models.Appointment {
	return models.Appointment{
		ID:         id,
		ClientName: "Cliente " + id,
		Date:       date,
		StartTime:  start,
		Status:     string(domain.StatusScheduled),
	}
}

func TestRunMarksLapsedAppointments(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	repo := &fakeRepo{
		pending: []models.Appointment{
			pendingAt("old", yesterday, "15:00"),  // ontem, muito além do corte
			pendingAt("lapsed", today, "11:00"),   // 60min atrás, além dos 30 de tolerância
			pendingAt("in-grace", today, "11:45"), // 15min atrás, dentro da tolerância
			pendingAt("future", today, "14:00"),   // ainda não chegou
		},
	}

	s := New(repo, clock.Fixed{Instant: now}, 30)

	summary, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if summary.TotalChecked != 4 {
		t.Errorf("verificados = %d", summary.TotalChecked)
	}
	if summary.Marked != 2 {
		t.Fatalf("marcados = %d, esperava 2 (atualizados: %d)", summary.Marked, len(repo.updated))
	}

	for _, ap := range repo.updated {
		if ap.Status != string(domain.StatusCancelled) {
			t.Errorf("%s: status = %s", ap.ID, ap.Status)
		}
		if ap.Attended == nil || *ap.Attended {
			t.Errorf("%s: compareceu deveria ser false", ap.ID)
		}
		if ap.ID != "old" && ap.ID != "lapsed" {
			t.Errorf("%s não deveria ter sido marcado", ap.ID)
		}
	}
}

func TestRunContinuesPastItemErrors(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	broken := pendingAt("broken", today, "09:00")
	broken.StartTime = "invalid"

	repo := &fakeRepo{
		pending: []models.Appointment{
			broken,
			pendingAt("fail-update", today, "09:00"),
			pendingAt("ok", today, "10:00"),
		},
		updateErr: func(ap *models.Appointment) error {
			if ap.ID == "fail-update" {
				return errors.New("db indisponível")
			}
			return nil
		},
	}

	s := New(repo, clock.Fixed{Instant: now}, 30)

	summary, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if summary.Marked != 1 {
		t.Errorf("marcados = %d, esperava 1", summary.Marked)
	}
	if len(summary.Errors) != 2 {
		t.Errorf("erros = %v, esperava 2 entradas", summary.Errors)
	}
}

func TestRunSecondPassIsIdempotent(t *testing.T) {
	// Após uma varredura limpa, as linhas marcadas saem do conjunto pendente;
	// a segunda passada não marca nada.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	repo := &fakeRepo{
		pending: []models.Appointment{pendingAt("lapsed", today, "10:00")},
	}

	s := New(repo, clock.Fixed{Instant: now}, 30)

	first, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Marked != 1 {
		t.Fatalf("primeira passada marcou %d", first.Marked)
	}

	repo.pending = nil

	second, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second.Marked != 0 || second.TotalChecked != 0 {
		t.Errorf("segunda passada: verificados=%d marcados=%d", second.TotalChecked, second.Marked)
	}
}
