package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brukssoft/navalha-api/internal/httperr"
	"github.com/brukssoft/navalha-api/internal/httpresp"
	"github.com/brukssoft/navalha-api/internal/sweeper"
)

// CronHandler exposes the scheduler-only endpoints. Authentication happens in
// the cron middleware; here the sweep just runs.
type CronHandler struct {
	sweeper   *sweeper.NoShowSweeper
	reminders *sweeper.ReminderSweeper
}

func NewCronHandler(s *sweeper.NoShowSweeper, r *sweeper.ReminderSweeper) *CronHandler {
	return &CronHandler{sweeper: s, reminders: r}
}

func (h *CronHandler) NoShowSweep(c *gin.Context) {
	summary, err := h.sweeper.Run(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao executar varredura de faltosos.")
		return
	}
	httpresp.OK(c, summary)
}

func (h *CronHandler) Reminders(c *gin.Context) {
	summary, err := h.reminders.Run(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao executar varredura de lembretes.")
		return
	}
	httpresp.OK(c, summary)
}
