package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/models"
)

type fakeRepo struct {
	domain.Repository

	settings *models.Settings
	sub      *models.WebhookSubscription
	records  []models.NotificationRecord
}

func (f *fakeRepo) GetSettings(ctx context.Context) (*models.Settings, error) {
	return f.settings, nil
}

func (f *fakeRepo) GetWebhookSubscription(ctx context.Context, professionalID string) (*models.WebhookSubscription, error) {
	return f.sub, nil
}

func (f *fakeRepo) AppendNotificationRecord(ctx context.Context, rec *models.NotificationRecord) error {
	f.records = append(f.records, *rec)
	return nil
}

func testPayload() *Payload {
	return &Payload{
		Tipo:          EventNewAppointment,
		AgendamentoID: "ap-1",
		Cliente:       ClientInfo{Nome: "João", Telefone: "11988887777"},
		Agendamento: AppointmentInfo{
			Data:     "10/03/2026",
			Hora:     "09:00",
			Barbeiro: "Carlos",
		},
	}
}

func TestDispatchDeliversToBothChannels(t *testing.T) {
	var got []Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("payload ilegível: %v", err)
		}
		got = append(got, p)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := &fakeRepo{
		settings: &models.Settings{WebhookURL: srv.URL, NotifyConfirmation: true, NotifyCancellation: true},
		sub: &models.WebhookSubscription{
			ProfessionalID: "pro-1",
			URL:            srv.URL,
			Events:         []string{EventNewAppointment},
			Active:         true,
		},
	}

	d := NewDispatcher(repo, 2*time.Second)
	d.Dispatch(context.Background(), "pro-1", testPayload(), EventNewAppointment)

	if len(got) != 2 {
		t.Fatalf("entregas = %d, esperava 2", len(got))
	}
	if len(repo.records) != 2 {
		t.Fatalf("registros = %d, esperava 2", len(repo.records))
	}

	kinds := map[string]bool{}
	for _, rec := range repo.records {
		if rec.Outcome != "enviado" {
			t.Errorf("registro %s: status = %s", rec.Kind, rec.Outcome)
		}
		kinds[rec.Kind] = true
	}
	if !kinds[EventNewAppointment] || !kinds[EventNewAppointment+"_barbeiro"] {
		t.Errorf("tipos registrados = %v", kinds)
	}
}

func TestDispatchRecordsFailureAndSwallowsIt(t *testing.T) {
	repo := &fakeRepo{
		settings: &models.Settings{
			WebhookURL:         "http://127.0.0.1:1/unreachable",
			NotifyConfirmation: true,
		},
	}

	d := NewDispatcher(repo, 200*time.Millisecond)

	// Não pode entrar em pânico nem retornar erro: entrega é best effort.
	d.Dispatch(context.Background(), "", testPayload(), EventNewAppointment)

	if len(repo.records) != 1 {
		t.Fatalf("registros = %d, esperava 1", len(repo.records))
	}
	rec := repo.records[0]
	if rec.Outcome != "falhou" {
		t.Errorf("status = %s, esperava falhou", rec.Outcome)
	}
	if rec.ErrorDetail == "" {
		t.Error("erro deveria estar registrado")
	}
}

func TestDispatchNon2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := &fakeRepo{
		settings: &models.Settings{WebhookURL: srv.URL, NotifyConfirmation: true},
	}

	d := NewDispatcher(repo, 2*time.Second)
	d.Dispatch(context.Background(), "", testPayload(), EventNewAppointment)

	if len(repo.records) != 1 || repo.records[0].Outcome != "falhou" {
		t.Fatalf("registros = %+v", repo.records)
	}
}

func TestDispatchGlobalCancellationGating(t *testing.T) {
	delivered := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		delivered++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := &fakeRepo{
		settings: &models.Settings{
			WebhookURL:         srv.URL,
			NotifyConfirmation: true,
			NotifyCancellation: false,
		},
	}

	d := NewDispatcher(repo, 2*time.Second)

	p := testPayload()
	p.Tipo = EventCancellation
	d.Dispatch(context.Background(), "", p, EventCancellation)

	if delivered != 0 {
		t.Errorf("cancelamento entregue com notif_cancelamento desligado")
	}

	// O mesmo canal continua aberto para novos agendamentos.
	d.Dispatch(context.Background(), "", testPayload(), EventNewAppointment)
	if delivered != 1 {
		t.Errorf("entregas = %d, esperava 1", delivered)
	}
}

func TestDispatchProfessionalChannelFiltersEvents(t *testing.T) {
	delivered := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		delivered++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := &fakeRepo{
		settings: &models.Settings{}, // canal global desligado
		sub: &models.WebhookSubscription{
			ProfessionalID: "pro-1",
			URL:            srv.URL,
			Events:         []string{EventCancellation},
			Active:         true,
		},
	}

	d := NewDispatcher(repo, 2*time.Second)

	// Profissional só assina cancelamentos.
	d.Dispatch(context.Background(), "pro-1", testPayload(), EventNewAppointment)
	if delivered != 0 {
		t.Error("evento não assinado foi entregue")
	}

	p := testPayload()
	p.Tipo = EventCancellation
	d.Dispatch(context.Background(), "pro-1", p, EventCancellation)
	if delivered != 1 {
		t.Errorf("entregas = %d, esperava 1", delivered)
	}

	if repo.records[len(repo.records)-1].Kind != EventCancellation+"_barbeiro" {
		t.Errorf("tipo do registro = %s", repo.records[len(repo.records)-1].Kind)
	}
}

func TestGlobalRecordKind(t *testing.T) {
	if got := globalRecordKind(EventCancellation); got != "cancelado" {
		t.Errorf("globalRecordKind(cancelamento) = %s", got)
	}
	if got := globalRecordKind(EventNewAppointment); got != EventNewAppointment {
		t.Errorf("globalRecordKind(novo_agendamento) = %s", got)
	}
}
