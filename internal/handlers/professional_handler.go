package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brukssoft/navalha-api/internal/httperr"
	"github.com/brukssoft/navalha-api/internal/httpresp"
	"github.com/brukssoft/navalha-api/internal/models"
	"github.com/brukssoft/navalha-api/internal/notification"
	ucAppointment "github.com/brukssoft/navalha-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type ProfessionalHandler struct {
	db      *gorm.DB
	blockUC *ucAppointment.BlockSlot
}

func NewProfessionalHandler(db *gorm.DB, blockUC *ucAppointment.BlockSlot) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, blockUC: blockUC}
}

// ======================================================
// REQUESTS
// ======================================================

type BlockSlotRequest struct {
	Date      string `json:"data" binding:"required"`
	StartTime string `json:"hora_inicio" binding:"required"`
	EndTime   string `json:"hora_fim" binding:"required"`
	Reason    string `json:"motivo"`
}

type UpdateWebhookRequest struct {
	URL    string   `json:"webhook_url" binding:"required"`
	Events []string `json:"eventos" binding:"required"`
	Active *bool    `json:"ativo"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ProfessionalHandler) List(c *gin.Context) {
	var pros []models.Professional
	if err := h.db.
		Where("active = ?", true).
		Order("name ASC").
		Find(&pros).Error; err != nil {

		httperr.Internal(c, "erro_interno", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, pros)
}

func (h *ProfessionalHandler) Block(c *gin.Context) {
	var req BlockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	block, err := h.blockUC.Execute(c.Request.Context(), ucAppointment.BlockSlotInput{
		ProfessionalID: c.Param("id"),
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Reason:         req.Reason,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, block)
}

// UpdateWebhook upserts the professional's notification subscription. One row
// per professional; a second PUT replaces URL and event list.
func (h *ProfessionalHandler) UpdateWebhook(c *gin.Context) {
	professionalID := c.Param("id")

	var req UpdateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if u, err := url.ParseRequestURI(req.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		httperr.BadRequest(c, "webhook_url_invalida", "A URL do webhook é inválida.")
		return
	}

	for _, ev := range req.Events {
		if !notification.IsValidEvent(ev) {
			httperr.BadRequest(c, "evento_invalido", "Evento desconhecido: "+ev)
			return
		}
	}

	var pro models.Professional
	if err := h.db.Where("id = ? AND active = ?", professionalID, true).First(&pro).Error; err != nil {
		httperr.NotFound(c, "nao_encontrado", "Profissional não encontrado.")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	var sub models.WebhookSubscription
	err := h.db.Where("professional_id = ?", professionalID).First(&sub).Error
	if err == gorm.ErrRecordNotFound {
		sub = models.WebhookSubscription{
			ProfessionalID: professionalID,
			URL:            req.URL,
			Events:         req.Events,
			Active:         active,
		}
		if err := h.db.Create(&sub).Error; err != nil {
			httperr.Internal(c, "erro_interno", "Erro ao salvar webhook.")
			return
		}
		httpresp.OK(c, sub)
		return
	}
	if err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao buscar webhook.")
		return
	}

	sub.URL = req.URL
	sub.Events = req.Events
	sub.Active = active
	if err := h.db.Save(&sub).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao salvar webhook.")
		return
	}

	httpresp.OK(c, sub)
}
