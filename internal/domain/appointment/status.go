package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	// StatusScheduled is the initial state of every booking.
	StatusScheduled Status = "agendado"
	// StatusConfirmed means the client confirmed (usually via WhatsApp).
	StatusConfirmed Status = "confirmado"
	// StatusInProgress is set by check-in.
	StatusInProgress Status = "em_andamento"
	// StatusCompleted and StatusCancelled are terminal.
	StatusCompleted Status = "concluido"
	StatusCancelled Status = "cancelado"
	// StatusBlocked is a professional-side time block. Created directly,
	// never transitions.
	StatusBlocked Status = "bloqueado"
	// StatusPendingPickup is a product/plan purchase with no professional or
	// time slot. Created directly, out of the scheduling flow.
	StatusPendingPickup Status = "pendente_retirada"
)

// OccupyingStatuses are the states that hold a time slot against new
// bookings. This set is the heart of conflict detection.
var OccupyingStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusBlocked,
}

// PendingStatuses are the states the no-show sweep considers.
var PendingStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusBlocked, StatusPendingPickup:
		return true
	}
	return false
}

// ===============================
// Transition guards
// ===============================

func CanCheckIn(current Status) error {
	if current == StatusInProgress || current == StatusCompleted {
		return &StateError{Current: current, Requested: StatusInProgress, Reason: "check-in já realizado"}
	}
	if current != StatusScheduled && current != StatusConfirmed {
		return &StateError{Current: current, Requested: StatusInProgress}
	}
	return nil
}

func CanFinalize(current Status) error {
	if current.IsTerminal() {
		return &StateError{Current: current, Requested: StatusCompleted}
	}
	return nil
}

func CanCancel(current Status) error {
	if current == StatusCancelled {
		return &StateError{Current: current, Requested: StatusCancelled, Reason: "agendamento já está cancelado"}
	}
	if current == StatusCompleted {
		return &StateError{Current: current, Requested: StatusCancelled, Reason: "agendamento já concluído"}
	}
	if current != StatusScheduled && current != StatusConfirmed && current != StatusInProgress {
		return &StateError{Current: current, Requested: StatusCancelled}
	}
	return nil
}

func CanReschedule(current Status) error {
	if current == StatusCancelled || current == StatusCompleted || current.IsTerminal() {
		return &StateError{Current: current, Requested: StatusScheduled, Reason: "agendamento não pode ser reagendado"}
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
