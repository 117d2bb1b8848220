package scheduling

import (
	"context"
	"testing"
	"time"

	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/models"
)

func proPtr(id string) *string { return &id }

func existingAt(start string, durationMin int) models.Appointment {
	return models.Appointment{
		ID:             "existing-1",
		ProfessionalID: proPtr("pro-1"),
		StartTime:      start,
		Status:         string(domain.StatusScheduled),
		ClientName:     "Maria",
		Services: []models.AppointmentService{
			{ServiceID: "svc-1", DurationMin: durationMin},
		},
	}
}

func TestCheckDetectsOverlap(t *testing.T) {
	repo := &fakeRepo{
		listAppointments: func(ctx context.Context, f domain.AppointmentFilter) ([]models.Appointment, error) {
			return []models.Appointment{existingAt("09:00", 30)}, nil
		},
	}
	checker := NewConflictChecker(repo, 30)

	// 09:15 por 30min colide com 09:00-09:30.
	conflict, err := checker.Check(context.Background(), "pro-1", time.Now(), 9*60+15, 30, "")
	if err != nil {
		t.Fatal(err)
	}
	if conflict == nil {
		t.Fatal("esperava conflito")
	}
	if conflict.AppointmentID != "existing-1" {
		t.Errorf("conflito com %s", conflict.AppointmentID)
	}
}

func TestCheckAdjacentSlotIsFree(t *testing.T) {
	repo := &fakeRepo{
		listAppointments: func(ctx context.Context, f domain.AppointmentFilter) ([]models.Appointment, error) {
			return []models.Appointment{existingAt("09:00", 30)}, nil
		},
	}
	checker := NewConflictChecker(repo, 30)

	// 09:30 começa exatamente quando o anterior termina.
	conflict, err := checker.Check(context.Background(), "pro-1", time.Now(), 9*60+30, 30, "")
	if err != nil {
		t.Fatal(err)
	}
	if conflict != nil {
		t.Errorf("slot adjacente não deveria conflitar: %+v", conflict)
	}
}

func TestCheckSkipsUnparseableRows(t *testing.T) {
	broken := existingAt("", 30)
	broken.StartTime = "??:??"

	repo := &fakeRepo{
		listAppointments: func(ctx context.Context, f domain.AppointmentFilter) ([]models.Appointment, error) {
			return []models.Appointment{broken}, nil
		},
	}
	checker := NewConflictChecker(repo, 30)

	conflict, err := checker.Check(context.Background(), "pro-1", time.Now(), 9*60, 30, "")
	if err != nil {
		t.Fatal(err)
	}
	if conflict != nil {
		t.Error("linha sem horário legível não deveria bloquear o slot")
	}
}

func TestDurationOfFallbacks(t *testing.T) {
	checker := NewConflictChecker(&fakeRepo{}, 30)

	// Soma das durações dos serviços.
	ap := existingAt("09:00", 45)
	ap.Services = append(ap.Services, models.AppointmentService{ServiceID: "svc-2", DurationMin: 15})
	if got := checker.DurationOf(&ap, 540); got != 60 {
		t.Errorf("duração = %d, esperava 60", got)
	}

	// Sem serviços: hora de fim explícita (bloqueios).
	block := models.Appointment{StartTime: "12:00", EndTime: "14:00"}
	if got := checker.DurationOf(&block, 12*60); got != 120 {
		t.Errorf("duração do bloqueio = %d, esperava 120", got)
	}

	// Sem nada: padrão configurado.
	bare := models.Appointment{StartTime: "09:00"}
	if got := checker.DurationOf(&bare, 540); got != 30 {
		t.Errorf("duração padrão = %d, esperava 30", got)
	}

	// Serviço com duração zerada usa o padrão.
	degraded := existingAt("09:00", 0)
	if got := checker.DurationOf(&degraded, 540); got != 30 {
		t.Errorf("duração degradada = %d, esperava 30", got)
	}
}

func TestSuggestSlots(t *testing.T) {
	checker := NewConflictChecker(&fakeRepo{}, 30)

	conflict := &domain.ConflictDetail{StartTime: "09:00", DurationMin: 45}
	got := checker.SuggestSlots(conflict)

	// Fim 09:45 arredonda para 10:00, seis slots de 30min.
	want := []string{"10:00", "10:30", "11:00", "11:30", "12:00", "12:30"}
	if len(got) != len(want) {
		t.Fatalf("sugestões = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sugestão[%d] = %s, esperava %s", i, got[i], want[i])
		}
	}
}

func TestSuggestSlotsCappedAtClosing(t *testing.T) {
	checker := NewConflictChecker(&fakeRepo{}, 30)

	conflict := &domain.ConflictDetail{StartTime: "18:00", DurationMin: 30}
	got := checker.SuggestSlots(conflict)

	for _, s := range got {
		if s >= "19:00" {
			t.Errorf("sugestão %s passa do fechamento", s)
		}
	}
	if len(got) != 1 || got[0] != "18:30" {
		t.Errorf("sugestões = %v, esperava [18:30]", got)
	}
}
