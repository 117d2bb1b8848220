package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/models"
)

const maxResponseSnapshot = 4 << 10

// Dispatcher fans a state-change event out to the global webhook and the
// professional's webhook. Delivery is best effort: one attempt per channel,
// bounded by the client timeout, every attempt audited, no retries, and no
// error ever escapes to the operation that triggered the event.
type Dispatcher struct {
	repo   domain.Repository
	client *http.Client
}

func NewDispatcher(repo domain.Repository, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		repo: repo,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Dispatch delivers the event on both channels. Each channel is looked up,
// filtered by its own configuration and delivered independently; the absence
// or failure of one never affects the other.
func (d *Dispatcher) Dispatch(ctx context.Context, professionalID string, payload *Payload, eventKind string) {
	log.Printf("[WEBHOOK] disparando %s para agendamento %s", eventKind, payload.AgendamentoID)

	// 1. Canal global.
	settings, err := d.repo.GetSettings(ctx)
	if err != nil {
		log.Printf("[WEBHOOK] erro ao carregar configurações globais: %v", err)
	} else if settings.WebhookURL != "" && globalChannelActive(settings, eventKind) {
		d.deliver(ctx, settings.WebhookURL, globalRecordKind(eventKind), payload)
	} else {
		log.Printf("[WEBHOOK] canal global não configurado ou inativo para %s", eventKind)
	}

	// 2. Canal do profissional.
	if professionalID == "" {
		return
	}
	sub, err := d.repo.GetWebhookSubscription(ctx, professionalID)
	if err != nil {
		log.Printf("[WEBHOOK] erro ao carregar webhook do profissional %s: %v", professionalID, err)
		return
	}
	if sub == nil || !sub.Active || !sub.SubscribedTo(eventKind) {
		log.Printf("[WEBHOOK] profissional %s sem webhook ativo para %s", professionalID, eventKind)
		return
	}
	d.deliver(ctx, sub.URL, eventKind+"_barbeiro", payload)
}

func (d *Dispatcher) deliver(ctx context.Context, url, recordKind string, payload *Payload) {
	d.Deliver(ctx, url, recordKind, payload.AgendamentoID, payload)
}

// Deliver issues the single POST attempt and appends one NotificationRecord
// with the outcome. Failures are logged and swallowed; the return value only
// tells callers that keep counters (the reminder sweep) whether the attempt
// landed.
func (d *Dispatcher) Deliver(ctx context.Context, url, recordKind, appointmentID string, payload any) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[WEBHOOK] erro ao serializar payload: %v", err)
		return false
	}

	rec := &models.NotificationRecord{
		AppointmentID: nullableID(appointmentID),
		Kind:          recordKind,
		TargetURL:     url,
		Payload:       string(body),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		rec.Outcome = "falhou"
		rec.ErrorDetail = err.Error()
		d.append(ctx, rec)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		log.Printf("[WEBHOOK] falha ao entregar %s em %s: %v", recordKind, url, err)
		rec.Outcome = "falhou"
		rec.ErrorDetail = err.Error()
		d.append(ctx, rec)
		return false
	}
	defer resp.Body.Close()

	snapshot, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSnapshot))
	rec.Response = string(snapshot)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		rec.Outcome = "enviado"
		log.Printf("[WEBHOOK] %s entregue em %s (%d)", recordKind, url, resp.StatusCode)
	} else {
		rec.Outcome = "falhou"
		rec.ErrorDetail = fmt.Sprintf("HTTP %d", resp.StatusCode)
		log.Printf("[WEBHOOK] %s rejeitado por %s (%d)", recordKind, url, resp.StatusCode)
	}

	d.append(ctx, rec)
	return rec.Outcome == "enviado"
}

func (d *Dispatcher) append(ctx context.Context, rec *models.NotificationRecord) {
	if err := d.repo.AppendNotificationRecord(ctx, rec); err != nil {
		log.Printf("[WEBHOOK] erro ao registrar notificação: %v", err)
	}
}

// globalChannelActive applies the per-kind toggles of the global channel:
// cancellations have their own switch, everything else rides the
// confirmation switch.
func globalChannelActive(s *models.Settings, eventKind string) bool {
	if eventKind == EventCancellation {
		return s.NotifyCancellation
	}
	return s.NotifyConfirmation
}

// globalRecordKind keeps the audit vocabulary of the original system, which
// logged global cancellations as "cancelado".
func globalRecordKind(eventKind string) string {
	if eventKind == EventCancellation {
		return "cancelado"
	}
	return eventKind
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
