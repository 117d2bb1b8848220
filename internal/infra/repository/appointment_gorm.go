package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/models"
	"github.com/brukssoft/navalha-api/internal/validators"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

// InTransaction binds a repository to one transaction so the conflict scan
// and the insert that depends on it commit or roll back together.
func (r *AppointmentGormRepository) InTransaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.AppointmentFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Preload("Services").
		Preload("Services.Service")

	if f.ForUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	if f.ProfessionalID != "" {
		q = q.Where("professional_id = ?", f.ProfessionalID)
	}
	if f.Date != nil {
		q = q.Where("date = ?", f.Date.Format("2006-01-02"))
	}
	if f.DateFrom != nil {
		q = q.Where("date >= ?", f.DateFrom.Format("2006-01-02"))
	}
	if f.DateTo != nil {
		q = q.Where("date < ?", f.DateTo.Format("2006-01-02"))
	}
	if f.Attended != nil {
		q = q.Where("attended = ?", *f.Attended)
	}
	if len(f.StatusIn) > 0 {
		statuses := make([]string, len(f.StatusIn))
		for i, s := range f.StatusIn {
			statuses[i] = string(s)
		}
		q = q.Where("status IN ?", statuses)
	}
	if f.ExcludeID != "" {
		q = q.Where("id <> ?", f.ExcludeID)
	}

	var aps []models.Appointment
	if err := q.
		Order("date ASC").
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Services.Service").
		Preload("Professional").
		Where("id = ?", id).
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.NotFoundError{Entity: "agendamento", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	services []models.AppointmentService,
) error {

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		return err
	}

	for i := range services {
		services[i].AppointmentID = ap.ID
	}
	if len(services) > 0 {
		if err := r.db.WithContext(ctx).Create(&services).Error; err != nil {
			return err
		}
		ap.Services = services
	}
	return nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit("Services", "Professional", "Client").
		Save(ap).Error
}

// --------------------------------------------------
// Professionals
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveProfessionals(
	ctx context.Context,
) ([]models.Professional, error) {

	var pros []models.Professional
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&pros).Error; err != nil {
		return nil, err
	}
	return pros, nil
}

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	id string,
) (*models.Professional, error) {

	var pro models.Professional
	err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&pro).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.NotFoundError{Entity: "profissional", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &pro, nil
}

// FindProfessionalByName resolves a partial, case-insensitive name. The
// WhatsApp agent sends names, not ids.
func (r *AppointmentGormRepository) FindProfessionalByName(
	ctx context.Context,
	name string,
) (*models.Professional, error) {

	var pro models.Professional
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? AND active = ?", "%"+name+"%", true).
		First(&pro).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.NotFoundError{Entity: "profissional", ID: name}
	}
	if err != nil {
		return nil, err
	}
	return &pro, nil
}

// ListRotationCandidates snapshots today's load per active professional. The
// view is recomputed on every call; nothing is cached between requests.
func (r *AppointmentGormRepository) ListRotationCandidates(
	ctx context.Context,
	date time.Time,
) ([]domain.RotationCandidate, error) {

	pros, err := r.ListActiveProfessionals(ctx)
	if err != nil {
		return nil, err
	}

	todays, err := r.ListAppointments(ctx, domain.AppointmentFilter{
		Date: &date,
		StatusIn: []domain.Status{
			domain.StatusScheduled,
			domain.StatusConfirmed,
			domain.StatusInProgress,
		},
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(pros))
	lastServed := make(map[string]time.Time, len(pros))
	for _, ap := range todays {
		if ap.ProfessionalID == nil {
			continue
		}
		id := *ap.ProfessionalID
		counts[id]++
		if ap.CreatedAt.After(lastServed[id]) {
			lastServed[id] = ap.CreatedAt
		}
	}

	candidates := make([]domain.RotationCandidate, 0, len(pros))
	for _, pro := range pros {
		c := domain.RotationCandidate{
			ProfessionalID:    pro.ID,
			ProfessionalName:  pro.Name,
			AppointmentsToday: counts[pro.ID],
		}
		if t, ok := lastServed[pro.ID]; ok {
			served := t
			c.LastServedAt = &served
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// --------------------------------------------------
// Services / Clients
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveServices(
	ctx context.Context,
	ids []string,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Where("active = ?", true)
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	name, phone, email string,
) (*models.Client, error) {

	normalized := validators.NormalizePhone(phone)

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", normalized).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		Name:  name,
		Phone: normalized,
		Email: email,
	}
	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) UpdateClientLastService(
	ctx context.Context,
	clientID, lastService string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Update("last_service", lastService).Error
}

// --------------------------------------------------
// Notifications
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSettings(
	ctx context.Context,
) (*models.Settings, error) {

	var settings models.Settings
	if err := r.db.WithContext(ctx).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetWebhookSubscription returns (nil, nil) when the professional has no
// subscription: absence is a normal state, not an error.
func (r *AppointmentGormRepository) GetWebhookSubscription(
	ctx context.Context,
	professionalID string,
) (*models.WebhookSubscription, error) {

	var sub models.WebhookSubscription
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		First(&sub).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *AppointmentGormRepository) AppendNotificationRecord(
	ctx context.Context,
	rec *models.NotificationRecord,
) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *AppointmentGormRepository) HasNotificationRecord(
	ctx context.Context,
	appointmentID, kind string,
	sentOnly bool,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.NotificationRecord{}).
		Where("appointment_id = ? AND kind = ?", appointmentID, kind)

	if sentOnly {
		q = q.Where("outcome = ?", "enviado")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Cancellations
// --------------------------------------------------

func (r *AppointmentGormRepository) AppendCancellationRecord(
	ctx context.Context,
	rec *models.CancellationRecord,
) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
