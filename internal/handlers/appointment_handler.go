package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brukssoft/navalha-api/internal/dto"
	"github.com/brukssoft/navalha-api/internal/httperr"
	"github.com/brukssoft/navalha-api/internal/httpresp"
	ucAppointment "github.com/brukssoft/navalha-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC            *ucAppointment.CreateAppointment
	cancelUC            *ucAppointment.CancelAppointment
	rescheduleUC        *ucAppointment.RescheduleAppointment
	checkinUC           *ucAppointment.CheckInAppointment
	finalizeUC          *ucAppointment.FinalizeAppointment
	confirmAttendanceUC *ucAppointment.ConfirmAttendance
	listUC              *ucAppointment.ListAppointments
	listMonthUC         *ucAppointment.ListMonth
	availableSlotsUC    *ucAppointment.AvailableSlots
	rotationNextUC      *ucAppointment.RotationNext
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	checkinUC *ucAppointment.CheckInAppointment,
	finalizeUC *ucAppointment.FinalizeAppointment,
	confirmAttendanceUC *ucAppointment.ConfirmAttendance,
	listUC *ucAppointment.ListAppointments,
	listMonthUC *ucAppointment.ListMonth,
	availableSlotsUC *ucAppointment.AvailableSlots,
	rotationNextUC *ucAppointment.RotationNext,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:            createUC,
		cancelUC:            cancelUC,
		rescheduleUC:        rescheduleUC,
		checkinUC:           checkinUC,
		finalizeUC:          finalizeUC,
		confirmAttendanceUC: confirmAttendanceUC,
		listUC:              listUC,
		listMonthUC:         listMonthUC,
		availableSlotsUC:    availableSlotsUC,
		rotationNextUC:      rotationNextUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"nome_cliente" binding:"required"`
	ClientPhone string `json:"telefone" binding:"required"`
	ClientEmail string `json:"email"`
	ClientID    string `json:"cliente_id"`

	Date string `json:"data" binding:"required"`
	Time string `json:"hora" binding:"required"`

	ServiceIDs []string `json:"servicos" binding:"required"`

	Professional string `json:"barbeiro"`

	Notes string `json:"observacoes"`
}

type CancelAppointmentRequest struct {
	Reason      string `json:"motivo"`
	CancelledBy string `json:"cancelado_por"`
	Force       bool   `json:"forcar"`
}

type RescheduleAppointmentRequest struct {
	NewDate string `json:"nova_data" binding:"required"`
	NewTime string `json:"nova_hora" binding:"required"`
}

type FinalizeAppointmentRequest struct {
	Value *float64 `json:"valor"`
	Notes string   `json:"observacoes"`
}

type ConfirmAttendanceRequest struct {
	Attended *bool  `json:"compareceu" binding:"required"`
	Notes    string `json:"observacoes"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientName:            req.ClientName,
		ClientPhone:           req.ClientPhone,
		ClientEmail:           req.ClientEmail,
		ClientID:              req.ClientID,
		Date:                  req.Date,
		Time:                  req.Time,
		ServiceIDs:            req.ServiceIDs,
		PreferredProfessional: req.Professional,
		Notes:                 req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req CancelAppointmentRequest
	// Corpo vazio é aceitável: cancelamento sem motivo.
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancelUC.Execute(c.Request.Context(), ucAppointment.CancelAppointmentInput{
		ID:          c.Param("id"),
		Reason:      req.Reason,
		CancelledBy: req.CancelledBy,
		Force:       req.Force,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		ID:      c.Param("id"),
		NewDate: req.NewDate,
		NewTime: req.NewTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) CheckIn(c *gin.Context) {
	ap, err := h.checkinUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Finalize(c *gin.Context) {
	var req FinalizeAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.finalizeUC.Execute(c.Request.Context(), ucAppointment.FinalizeAppointmentInput{
		ID:    c.Param("id"),
		Value: req.Value,
		Notes: req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ConfirmAttendance(c *gin.Context) {
	var req ConfirmAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Attended == nil {
		httperr.BadRequest(c, "invalid_request", "Campo compareceu é obrigatório.")
		return
	}

	ap, err := h.confirmAttendanceUC.Execute(c.Request.Context(), ucAppointment.ConfirmAttendanceInput{
		ID:       c.Param("id"),
		Attended: *req.Attended,
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	aps, err := h.listUC.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		Date:           c.Query("data"),
		ProfessionalID: c.Query("profissional_id"),
		Status:         c.Query("status"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, dto.AppointmentsToListDTO(aps))
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Query("ano"))
	month, err2 := strconv.Atoi(c.Query("mes"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "periodo_invalido", "Parâmetros ano e mes são obrigatórios.")
		return
	}

	aps, err := h.listMonthUC.Execute(c.Request.Context(), ucAppointment.ListMonthInput{
		Year:  year,
		Month: month,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, dto.AppointmentsToListDTO(aps))
}

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	durationMin, _ := strconv.Atoi(c.Query("duracao"))

	slots, err := h.availableSlotsUC.Execute(c.Request.Context(), ucAppointment.AvailableSlotsInput{
		ProfessionalID: c.Query("profissional_id"),
		Date:           c.Query("data"),
		DurationMin:    durationMin,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     c.Query("data"),
		"horarios": slots,
	})
}

func (h *AppointmentHandler) RotationNext(c *gin.Context) {
	durationMin, _ := strconv.Atoi(c.Query("duracao"))

	candidate, err := h.rotationNextUC.Execute(c.Request.Context(), ucAppointment.RotationNextInput{
		Date:        c.Query("data"),
		Time:        c.Query("hora"),
		DurationMin: durationMin,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profissional_id":   candidate.ProfessionalID,
		"barbeiro":          candidate.ProfessionalName,
		"agendamentos_hoje": candidate.AppointmentsToday,
	})
}
