package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/brukssoft/navalha-api/internal/domain/appointment"
	"github.com/brukssoft/navalha-api/internal/httperr"
)

// writeError translates domain and business errors into HTTP responses. Every
// handler funnels use-case errors through here so the status mapping lives in
// one place.
func writeError(c *gin.Context, err error) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error_code": "horario_ocupado",
			"message":    conflictErr.Error(),
			"conflito": gin.H{
				"agendamento_id": conflictErr.Conflicting.AppointmentID,
				"status":         conflictErr.Conflicting.Status,
				"cliente":        conflictErr.Conflicting.ClientName,
				"hora_inicio":    conflictErr.Conflicting.StartTime,
			},
			"sugestoes": conflictErr.Suggestions,
		})
		return
	}

	var noneErr *domain.NoneAvailableError
	if errors.As(err, &noneErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error_code": "sem_profissional_disponivel",
			"message":    noneErr.Error(),
		})
		return
	}

	var stateErr *domain.StateError
	if errors.As(err, &stateErr) {
		httperr.Write(c, http.StatusUnprocessableEntity, "transicao_invalida", stateErr.Error())
		return
	}

	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		httperr.NotFound(c, "nao_encontrado", notFoundErr.Error())
		return
	}

	var bizErr httperr.BusinessError
	if errors.As(err, &bizErr) {
		httperr.BadRequest(c, bizErr.Code, "Requisição inválida.")
		return
	}

	httperr.Internal(c, "erro_interno", "Erro interno.")
}
