package appointment

import (
	"fmt"
	"time"

	"github.com/brukssoft/navalha-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================
// Each action validates the transition against the current status and then
// mutates the record in memory. Persistence is the caller's problem.

func CheckIn(ap *models.Appointment, now time.Time) error {
	if err := CanCheckIn(Status(ap.Status)); err != nil {
		return err
	}

	attended := true
	ap.Status = string(StatusInProgress)
	ap.Attended = &attended
	ap.CheckinAt = &now
	return nil
}

// Finalize closes the appointment. When a check-in stamp exists the service
// time is measured from it; valueOverride replaces the stored value when
// non-nil.
func Finalize(ap *models.Appointment, now time.Time, valueOverride *float64, notes string) error {
	if err := CanFinalize(Status(ap.Status)); err != nil {
		return err
	}

	attended := true
	ap.Status = string(StatusCompleted)
	ap.Attended = &attended
	ap.CheckoutAt = &now

	if ap.CheckinAt != nil {
		minutes := int(now.Sub(*ap.CheckinAt).Round(time.Minute) / time.Minute)
		ap.ServiceTimeMin = &minutes
	}

	if valueOverride != nil {
		ap.Value = *valueOverride
	}
	if notes != "" {
		ap.Notes = notes
	}
	return nil
}

func Cancel(ap *models.Appointment, reason, cancelledBy string) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	attended := false
	ap.Status = string(StatusCancelled)
	ap.Attended = &attended
	if reason == "" {
		reason = "Sem motivo"
	}
	ap.Notes = fmt.Sprintf("CANCELADO: %s (%s)", reason, cancelledBy)
	return nil
}

// ConfirmAttendance sets attendance and status together: attended closes the
// appointment, a no-show cancels it. The two fields never move independently,
// so an (attended, cancelled) contradiction cannot exist.
func ConfirmAttendance(ap *models.Appointment, attended bool, notes string, now time.Time) {
	ap.Attended = &attended

	if attended {
		ap.Status = string(StatusCompleted)
		ap.CheckinAt = &now
		if notes != "" {
			ap.Notes = notes
		}
		return
	}

	ap.Status = string(StatusCancelled)
	ap.CheckinAt = nil
	if notes != "" {
		ap.Notes = "Cliente não compareceu - marcado automaticamente. " + notes
	} else {
		ap.Notes = "Cliente não compareceu - marcado automaticamente."
	}
}

// Reschedule moves the appointment to a new slot and resets it to agendado.
// Conflict checking against the (unchanged) professional happens before this
// is called.
func Reschedule(ap *models.Appointment, newDate time.Time, newStart string) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.Date = newDate
	ap.StartTime = newStart
	ap.Status = string(StatusScheduled)
	return nil
}

// MarkNoShow is the sweep's transition: pending past the grace period becomes
// a cancelled no-show.
func MarkNoShow(ap *models.Appointment) {
	attended := false
	ap.Status = string(StatusCancelled)
	ap.Attended = &attended
	ap.Notes = "Não compareceu"
}
