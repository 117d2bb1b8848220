package appointment

import (
	"context"
	"time"

	"github.com/brukssoft/navalha-api/internal/models"
)

// AppointmentFilter narrows ListAppointments. Zero fields are ignored.
type AppointmentFilter struct {
	ProfessionalID string
	Date           *time.Time
	DateFrom       *time.Time
	DateTo         *time.Time
	StatusIn       []Status
	Attended       *bool
	ExcludeID      string

	// ForUpdate locks the matched rows for the duration of the surrounding
	// transaction. Only meaningful inside InTransaction.
	ForUpdate bool
}

// RotationCandidate is the per-request view the rotation ranks. Recomputed on
// every call, never cached.
type RotationCandidate struct {
	ProfessionalID    string
	ProfessionalName  string
	AppointmentsToday int
	LastServedAt      *time.Time
}

type Repository interface {
	// -------- Appointments --------
	ListAppointments(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error)

	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)

	CreateAppointment(ctx context.Context, ap *models.Appointment, services []models.AppointmentService) error

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// InTransaction runs fn against a repository bound to one transaction.
	// The conflict-check-then-insert pair must run inside it so two
	// concurrent requests cannot both pass the check.
	InTransaction(ctx context.Context, fn func(Repository) error) error

	// -------- Professionals --------
	ListActiveProfessionals(ctx context.Context) ([]models.Professional, error)

	GetProfessional(ctx context.Context, id string) (*models.Professional, error)

	FindProfessionalByName(ctx context.Context, name string) (*models.Professional, error)

	ListRotationCandidates(ctx context.Context, date time.Time) ([]RotationCandidate, error)

	// -------- Services / Clients --------
	ListActiveServices(ctx context.Context, ids []string) ([]models.Service, error)

	GetOrCreateClient(ctx context.Context, name, phone, email string) (*models.Client, error)

	UpdateClientLastService(ctx context.Context, clientID, lastService string) error

	// -------- Notifications --------
	GetSettings(ctx context.Context) (*models.Settings, error)

	GetWebhookSubscription(ctx context.Context, professionalID string) (*models.WebhookSubscription, error)

	AppendNotificationRecord(ctx context.Context, rec *models.NotificationRecord) error

	// HasNotificationRecord reports whether the appointment already has a
	// record of kind. sentOnly restricts the check to delivered attempts,
	// which is how reminders get retried after a failure while follow-ups
	// are attempted only once.
	HasNotificationRecord(ctx context.Context, appointmentID, kind string, sentOnly bool) (bool, error)

	// -------- Cancellations --------
	AppendCancellationRecord(ctx context.Context, rec *models.CancellationRecord) error
}
