package sweeper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/brukssoft/navalha-api/internal/clock"
	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/domain/schedule"
	"github.com/brukssoft/navalha-api/internal/models"
	"github.com/brukssoft/navalha-api/internal/notification"
)

// The 2h reminder fires when the appointment is between two hours and two
// hours ten away. The window is slightly wider than the cron interval so a
// late tick does not skip anyone.
const (
	twoHourWindowMin = 120
	twoHourWindowMax = 130
)

const (
	followUp3dMessage  = "Pedido de feedback sobre o atendimento"
	followUp21dMessage = "Lembrete para reagendar - já faz 21 dias!"
)

// ReminderSummary is what the cron trigger reports back, one counter per
// reminder kind.
type ReminderSummary struct {
	Reminder24h int      `json:"lembrete_24h"`
	Reminder2h  int      `json:"lembrete_2h"`
	FollowUp3d  int      `json:"followup_3d"`
	FollowUp21d int      `json:"followup_21d"`
	Errors      []string `json:"erros"`
}

// ReminderSweeper drives the time-based notifications: booking reminders 24h
// and 2h before the slot, and post-service follow-ups 3 and 21 days after an
// attended appointment. Everything goes out on the global channel only; the
// professional channel carries state changes, not reminders.
type ReminderSweeper struct {
	repo               domain.Repository
	dispatcher         *notification.Dispatcher
	clock              clock.Clock
	defaultDurationMin int
}

func NewReminderSweeper(
	repo domain.Repository,
	dispatcher *notification.Dispatcher,
	clk clock.Clock,
	defaultDurationMin int,
) *ReminderSweeper {
	return &ReminderSweeper{
		repo:               repo,
		dispatcher:         dispatcher,
		clock:              clk,
		defaultDurationMin: defaultDurationMin,
	}
}

// Run executes one reminder pass. Each kind is deduplicated against the
// notification records: reminders skip appointments with a delivered record of
// the same kind, so a failed attempt is retried on the next tick, while
// follow-ups skip on any record and are therefore attempted once.
func (s *ReminderSweeper) Run(ctx context.Context) (*ReminderSummary, error) {
	summary := &ReminderSummary{Errors: []string{}}

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings.WebhookURL == "" {
		log.Printf("[CRON LEMBRETES] canal global não configurado, nada a enviar")
		return summary, nil
	}

	now := s.clock.Now()

	if settings.NotifyReminder24h {
		s.sweep24h(ctx, settings.WebhookURL, now, summary)
	}
	if settings.NotifyReminder2h {
		s.sweep2h(ctx, settings.WebhookURL, now, summary)
	}
	if settings.NotifyFollowUp3d {
		s.sweepFollowUp(ctx, settings.WebhookURL, now, 3,
			notification.EventFollowUp3d, followUp3dMessage, &summary.FollowUp3d, summary)
	}
	if settings.NotifyFollowUp21d {
		s.sweepFollowUp(ctx, settings.WebhookURL, now, 21,
			notification.EventFollowUp21d, followUp21dMessage, &summary.FollowUp21d, summary)
	}

	log.Printf("[CRON LEMBRETES] finalizado: 24h=%d 2h=%d followup3d=%d followup21d=%d erros=%d",
		summary.Reminder24h, summary.Reminder2h, summary.FollowUp3d, summary.FollowUp21d,
		len(summary.Errors))

	return summary, nil
}

// sweep24h reminds every pending appointment scheduled for tomorrow.
func (s *ReminderSweeper) sweep24h(ctx context.Context, url string, now time.Time, summary *ReminderSummary) {
	tomorrow := now.AddDate(0, 0, 1)

	pending, err := s.repo.ListAppointments(ctx, domain.AppointmentFilter{
		Date:     &tomorrow,
		StatusIn: domain.PendingStatuses,
	})
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("lembrete_24h: %v", err))
		return
	}

	for i := range pending {
		ap := &pending[i]

		sent, err := s.repo.HasNotificationRecord(ctx, ap.ID, notification.EventReminder24h, true)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", ap.ClientName, err))
			continue
		}
		if sent {
			continue
		}

		log.Printf("[CRON LEMBRETES] lembrete 24h: %s - %s %s",
			ap.ClientName, schedule.FormatDate(ap.Date), ap.StartTime)

		payload := s.reminderPayload(notification.EventReminder24h, ap)
		payload.Agendamento.DuracaoTotal = s.durationOf(ap)

		if s.dispatcher.Deliver(ctx, url, notification.EventReminder24h, ap.ID, payload) {
			summary.Reminder24h++
		} else {
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("lembrete_24h %s: entrega falhou", ap.ClientName))
		}
	}
}

// sweep2h reminds today's pending appointments whose slot is about two hours
// away.
func (s *ReminderSweeper) sweep2h(ctx context.Context, url string, now time.Time, summary *ReminderSummary) {
	today := now

	pending, err := s.repo.ListAppointments(ctx, domain.AppointmentFilter{
		Date:     &today,
		StatusIn: domain.PendingStatuses,
	})
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("lembrete_2h: %v", err))
		return
	}

	for i := range pending {
		ap := &pending[i]

		startMin, err := schedule.ToMinutes(ap.StartTime)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", ap.ClientName, err))
			continue
		}

		scheduledAt := schedule.At(ap.Date, startMin, s.clock.Location())
		minutesUntil := int(scheduledAt.Sub(now).Minutes())
		if minutesUntil < twoHourWindowMin || minutesUntil > twoHourWindowMax {
			continue
		}

		sent, err := s.repo.HasNotificationRecord(ctx, ap.ID, notification.EventReminder2h, true)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", ap.ClientName, err))
			continue
		}
		if sent {
			continue
		}

		log.Printf("[CRON LEMBRETES] lembrete 2h: %s - %s", ap.ClientName, ap.StartTime)

		payload := s.reminderPayload(notification.EventReminder2h, ap)

		if s.dispatcher.Deliver(ctx, url, notification.EventReminder2h, ap.ID, payload) {
			summary.Reminder2h++
		} else {
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("lembrete_2h %s: entrega falhou", ap.ClientName))
		}
	}
}

// sweepFollowUp contacts clients whose attended appointment concluded exactly
// daysAfter days ago.
func (s *ReminderSweeper) sweepFollowUp(
	ctx context.Context,
	url string,
	now time.Time,
	daysAfter int,
	kind, message string,
	counter *int,
	summary *ReminderSummary,
) {
	targetDate := now.AddDate(0, 0, -daysAfter)
	attended := true

	done, err := s.repo.ListAppointments(ctx, domain.AppointmentFilter{
		Date:     &targetDate,
		StatusIn: []domain.Status{domain.StatusCompleted},
		Attended: &attended,
	})
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", kind, err))
		return
	}

	for i := range done {
		ap := &done[i]

		already, err := s.repo.HasNotificationRecord(ctx, ap.ID, kind, false)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", ap.ClientName, err))
			continue
		}
		if already {
			continue
		}

		log.Printf("[CRON LEMBRETES] %s: %s - atendido em %s",
			kind, ap.ClientName, schedule.FormatDate(ap.Date))

		payload := &notification.FollowUpPayload{
			Tipo:          kind,
			AgendamentoID: ap.ID,
			Cliente: notification.ClientInfo{
				Nome:     ap.ClientName,
				Telefone: ap.ClientPhone,
			},
			Atendimento: notification.AttendanceInfo{
				Data:     schedule.FormatDate(ap.Date),
				Hora:     ap.StartTime,
				Barbeiro: ap.ProfessionalName,
			},
			FollowUp: notification.FollowUpInfo{
				EnviadoEm: schedule.FormatDate(now),
				DiasApos:  daysAfter,
			},
			Mensagem: message,
		}

		if s.dispatcher.Deliver(ctx, url, kind, ap.ID, payload) {
			*counter++
		} else {
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("%s %s: entrega falhou", kind, ap.ClientName))
		}
	}
}

func (s *ReminderSweeper) reminderPayload(kind string, ap *models.Appointment) *notification.Payload {
	names := make([]string, 0, len(ap.Services))
	for _, link := range ap.Services {
		if link.Service.Name != "" {
			names = append(names, link.Service.Name)
		}
	}

	return &notification.Payload{
		Tipo:          kind,
		AgendamentoID: ap.ID,
		Cliente: notification.ClientInfo{
			Nome:     ap.ClientName,
			Telefone: ap.ClientPhone,
		},
		Agendamento: notification.AppointmentInfo{
			Data:       schedule.FormatDate(ap.Date),
			Hora:       ap.StartTime,
			Barbeiro:   ap.ProfessionalName,
			Servicos:   names,
			ValorTotal: ap.Value,
		},
	}
}

func (s *ReminderSweeper) durationOf(ap *models.Appointment) int {
	total := 0
	for _, link := range ap.Services {
		total += link.DurationMin
	}
	if total == 0 {
		total = s.defaultDurationMin
	}
	return total
}
