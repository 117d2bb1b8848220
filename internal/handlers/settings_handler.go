package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brukssoft/navalha-api/internal/httperr"
	"github.com/brukssoft/navalha-api/internal/httpresp"
	"github.com/brukssoft/navalha-api/internal/models"
)

type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

type UpdateSettingsRequest struct {
	WebhookURL              *string `json:"webhook_url"`
	NotifyConfirmation      *bool   `json:"notif_confirmacao"`
	NotifyCancellation      *bool   `json:"notif_cancelamento"`
	CancellationWindowHours *int    `json:"prazo_cancelamento_horas"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	var settings models.Settings
	if err := h.db.First(&settings).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao carregar configurações.")
		return
	}
	httpresp.OK(c, settings)
}

// Update applies only the fields present in the body. The row always exists;
// db.NewDB seeds it.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var settings models.Settings
	if err := h.db.First(&settings).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao carregar configurações.")
		return
	}

	if req.WebhookURL != nil {
		settings.WebhookURL = *req.WebhookURL
	}
	if req.NotifyConfirmation != nil {
		settings.NotifyConfirmation = *req.NotifyConfirmation
	}
	if req.NotifyCancellation != nil {
		settings.NotifyCancellation = *req.NotifyCancellation
	}
	if req.CancellationWindowHours != nil && *req.CancellationWindowHours > 0 {
		settings.CancellationWindowHours = *req.CancellationWindowHours
	}

	if err := h.db.Save(&settings).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao salvar configurações.")
		return
	}

	httpresp.OK(c, settings)
}
