// Package history mirrors each client's booking history into Redis, keyed by
// the normalized phone number, so the WhatsApp agent answers with full
// context. Everything here is best effort: a Redis outage never fails the
// operation that produced the event.
package history

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/brukssoft/navalha-api/internal/clock"
	"github.com/brukssoft/navalha-api/internal/validators"
)

// maxEntries bounds each list so a frequent client's document stays small.
const maxEntries = 20

type Document struct {
	Nome          string              `json:"nome"`
	Telefone      string              `json:"telefone"`
	Agendamentos  []BookingEntry      `json:"agendamentos"`
	Cancelamentos []CancellationEntry `json:"cancelamentos"`
	UltimaAtt     string              `json:"ultima_atualizacao"`
}

type BookingEntry struct {
	Data      string   `json:"data"`
	Hora      string   `json:"hora"`
	Barbeiro  string   `json:"barbeiro"`
	Servicos  []string `json:"servicos"`
	Valor     float64  `json:"valor"`
	Status    string   `json:"status"`
	Origem    string   `json:"origem"`
	Timestamp string   `json:"timestamp"`
}

type CancellationEntry struct {
	Data         string  `json:"data"`
	Hora         string  `json:"hora"`
	Barbeiro     string  `json:"barbeiro"`
	Motivo       string  `json:"motivo"`
	CanceladoPor string  `json:"cancelado_por"`
	Antecedencia float64 `json:"horas_antecedencia"`
	Origem       string  `json:"origem"`
	Timestamp    string  `json:"timestamp"`
}

type Store struct {
	rdb   *redis.Client
	clock clock.Clock
}

// New builds the store from a Redis URL. An empty URL disables the mirror;
// every method then becomes a logged no-op.
func New(redisURL string, clk clock.Clock) *Store {
	if redisURL == "" {
		log.Println("[HISTORY] REDIS_URL não configurada - histórico desativado")
		return &Store{clock: clk}
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[HISTORY] REDIS_URL inválida: %v - histórico desativado", err)
		return &Store{clock: clk}
	}

	return &Store{rdb: redis.NewClient(opt), clock: clk}
}

func (s *Store) RecordBooking(ctx context.Context, name, phone string, entry BookingEntry) {
	s.update(ctx, name, phone, func(doc *Document) {
		doc.Agendamentos = append(doc.Agendamentos, entry)
		if len(doc.Agendamentos) > maxEntries {
			doc.Agendamentos = doc.Agendamentos[len(doc.Agendamentos)-maxEntries:]
		}
	})
}

func (s *Store) RecordCancellation(ctx context.Context, name, phone string, entry CancellationEntry) {
	s.update(ctx, name, phone, func(doc *Document) {
		doc.Cancelamentos = append(doc.Cancelamentos, entry)
		if len(doc.Cancelamentos) > maxEntries {
			doc.Cancelamentos = doc.Cancelamentos[len(doc.Cancelamentos)-maxEntries:]
		}
	})
}

func (s *Store) update(ctx context.Context, name, phone string, mutate func(*Document)) {
	if s.rdb == nil {
		return
	}

	key := validators.NormalizePhone(phone)
	if key == "" {
		return
	}

	doc := &Document{Nome: name, Telefone: key}
	if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var existing Document
		if json.Unmarshal([]byte(raw), &existing) == nil {
			doc = &existing
			doc.Nome = name
		}
	} else if err != redis.Nil {
		log.Printf("[HISTORY] erro ao buscar histórico de %s: %v", key, err)
	}

	mutate(doc)
	doc.UltimaAtt = s.clock.Now().Format(time.RFC3339)

	raw, err := json.Marshal(doc)
	if err != nil {
		log.Printf("[HISTORY] erro ao serializar histórico de %s: %v", key, err)
		return
	}

	if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		log.Printf("[HISTORY] erro ao salvar histórico de %s: %v", key, err)
	}
}
