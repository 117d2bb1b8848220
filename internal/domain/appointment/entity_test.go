package appointment

import (
	"strings"
	"testing"
	"time"

	"github.com/brukssoft/navalha-api/internal/models"
)

func newScheduled() *models.Appointment {
	return &models.Appointment{
		ID:         "ap-1",
		Status:     string(StatusScheduled),
		ClientName: "João",
		StartTime:  "09:00",
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestCheckInSetsProgress(t *testing.T) {
	ap := newScheduled()
	now := time.Date(2026, 3, 10, 9, 2, 0, 0, time.UTC)

	if err := CheckIn(ap, now); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	if ap.Status != string(StatusInProgress) {
		t.Errorf("status = %s", ap.Status)
	}
	if ap.Attended == nil || !*ap.Attended {
		t.Error("compareceu deveria ser true")
	}
	if ap.CheckinAt == nil || !ap.CheckinAt.Equal(now) {
		t.Error("hora de check-in não registrada")
	}
}

func TestCheckInTwiceFails(t *testing.T) {
	ap := newScheduled()
	now := time.Now()

	if err := CheckIn(ap, now); err != nil {
		t.Fatal(err)
	}
	if err := CheckIn(ap, now); err == nil {
		t.Error("segundo check-in deveria falhar")
	}
}

func TestFinalizeMeasuresServiceTime(t *testing.T) {
	ap := newScheduled()
	checkin := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	checkout := checkin.Add(42 * time.Minute)

	if err := CheckIn(ap, checkin); err != nil {
		t.Fatal(err)
	}
	if err := Finalize(ap, checkout, nil, ""); err != nil {
		t.Fatal(err)
	}

	if ap.Status != string(StatusCompleted) {
		t.Errorf("status = %s", ap.Status)
	}
	if ap.ServiceTimeMin == nil || *ap.ServiceTimeMin != 42 {
		t.Errorf("tempo de atendimento = %v, esperava 42", ap.ServiceTimeMin)
	}
}

func TestFinalizeWithValueOverride(t *testing.T) {
	ap := newScheduled()
	ap.Value = 50

	v := 65.0
	if err := Finalize(ap, time.Now(), &v, "pagou com gorjeta"); err != nil {
		t.Fatal(err)
	}

	if ap.Value != 65 {
		t.Errorf("valor = %v, esperava 65", ap.Value)
	}
	if ap.Notes != "pagou com gorjeta" {
		t.Errorf("observações = %q", ap.Notes)
	}
}

func TestCancelRecordsReason(t *testing.T) {
	ap := newScheduled()

	if err := Cancel(ap, "imprevisto", "cliente"); err != nil {
		t.Fatal(err)
	}

	if ap.Status != string(StatusCancelled) {
		t.Errorf("status = %s", ap.Status)
	}
	if ap.Attended == nil || *ap.Attended {
		t.Error("compareceu deveria ser false")
	}
	if !strings.Contains(ap.Notes, "imprevisto") || !strings.Contains(ap.Notes, "cliente") {
		t.Errorf("observações = %q", ap.Notes)
	}
}

func TestConfirmAttendanceKeepsFieldsConsistent(t *testing.T) {
	now := time.Now()

	ap := newScheduled()
	ConfirmAttendance(ap, true, "", now)
	if ap.Status != string(StatusCompleted) || ap.Attended == nil || !*ap.Attended {
		t.Errorf("compareceu=true: status=%s attended=%v", ap.Status, ap.Attended)
	}

	ap = newScheduled()
	ConfirmAttendance(ap, false, "", now)
	if ap.Status != string(StatusCancelled) || ap.Attended == nil || *ap.Attended {
		t.Errorf("compareceu=false: status=%s attended=%v", ap.Status, ap.Attended)
	}
	if ap.CheckinAt != nil {
		t.Error("faltoso não deveria ter check-in")
	}
}

func TestRescheduleResetsStatus(t *testing.T) {
	ap := newScheduled()
	ap.Status = string(StatusConfirmed)

	newDate := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	if err := Reschedule(ap, newDate, "14:00"); err != nil {
		t.Fatal(err)
	}

	if ap.Status != string(StatusScheduled) {
		t.Errorf("status = %s, esperava agendado", ap.Status)
	}
	if ap.StartTime != "14:00" || !ap.Date.Equal(newDate) {
		t.Errorf("slot = %v %s", ap.Date, ap.StartTime)
	}
}

func TestMarkNoShow(t *testing.T) {
	ap := newScheduled()
	MarkNoShow(ap)

	if ap.Status != string(StatusCancelled) {
		t.Errorf("status = %s", ap.Status)
	}
	if ap.Attended == nil || *ap.Attended {
		t.Error("compareceu deveria ser false")
	}
}
