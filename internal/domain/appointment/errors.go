package appointment

import "fmt"

// StateError reports a transition that the current status does not allow.
type StateError struct {
	Current   Status
	Requested Status
	Reason    string
}

func (e *StateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("transição inválida de %s para %s: %s", e.Current, e.Requested, e.Reason)
	}
	return fmt.Sprintf("transição inválida de %s para %s", e.Current, e.Requested)
}

// NotFoundError reports a missing referenced record.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s não encontrado: %s", e.Entity, e.ID)
}

// ConflictError carries the conflicting booking's details so callers can show
// what is occupying the slot and suggest alternatives.
type ConflictError struct {
	ProfessionalName string
	RequestedTime    string
	Conflicting      ConflictDetail
	Suggestions      []string
}

type ConflictDetail struct {
	AppointmentID string
	Status        Status
	ClientName    string
	StartTime     string
	DurationMin   int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("horário %s já está ocupado para %s", e.RequestedTime, e.ProfessionalName)
}

// ErrNoneAvailable signals that every rotation candidate conflicts with the
// requested slot.
type NoneAvailableError struct {
	CandidatesChecked int
}

func (e *NoneAvailableError) Error() string {
	return "todos os profissionais estão ocupados neste horário"
}
