package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brukssoft/navalha-api/internal/httperr"
	"github.com/brukssoft/navalha-api/internal/httpresp"
	"github.com/brukssoft/navalha-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Where("active = ?", true)

	if category := c.Query("categoria"); category != "" {
		q = q.Where("category = ?", category)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}
