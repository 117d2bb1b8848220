package sweeper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/brukssoft/navalha-api/internal/clock"
	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/domain/schedule"
)

// Summary is what the cron trigger reports back.
type Summary struct {
	TotalChecked int      `json:"total_verificados"`
	Marked       int      `json:"marcados_como_faltosos"`
	Errors       []string `json:"erros"`
}

// NoShowSweeper scans every pending appointment, from any date, and cancels
// the ones whose scheduled time lapsed beyond the grace period without a
// check-in. It runs on an external trigger, at least hourly.
type NoShowSweeper struct {
	repo     domain.Repository
	clock    clock.Clock
	graceMin int
}

func New(repo domain.Repository, clk clock.Clock, graceMin int) *NoShowSweeper {
	return &NoShowSweeper{
		repo:     repo,
		clock:    clk,
		graceMin: graceMin,
	}
}

// Run executes one sweep. Items are processed independently: a failure on
// one is recorded in the summary and the sweep moves on. Re-running right
// after a clean pass marks nothing, because marked rows leave the pending
// set.
func (s *NoShowSweeper) Run(ctx context.Context) (*Summary, error) {
	cutoff := s.clock.Now().Add(-time.Duration(s.graceMin) * time.Minute)

	log.Printf("[CRON FALTOSOS] iniciando varredura, corte em %s", cutoff.Format("02/01/2006 15:04"))

	pending, err := s.repo.ListAppointments(ctx, domain.AppointmentFilter{
		StatusIn: domain.PendingStatuses,
	})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalChecked: len(pending),
		Errors:       []string{},
	}

	for i := range pending {
		ap := &pending[i]

		startMin, err := schedule.ToMinutes(ap.StartTime)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", ap.ClientName, err))
			continue
		}

		scheduledAt := schedule.At(ap.Date, startMin, s.clock.Location())

		if !cutoff.After(scheduledAt) {
			continue
		}

		log.Printf("[CRON FALTOSOS] marcando como faltoso: %s - %s %s",
			ap.ClientName, schedule.FormatDate(ap.Date), ap.StartTime)

		domain.MarkNoShow(ap)

		if err := s.repo.UpdateAppointment(ctx, ap); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", ap.ClientName, err))
			continue
		}
		summary.Marked++
	}

	log.Printf("[CRON FALTOSOS] finalizado: verificados=%d marcados=%d erros=%d",
		summary.TotalChecked, summary.Marked, len(summary.Errors))

	return summary, nil
}
