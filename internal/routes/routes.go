package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brukssoft/navalha-api/internal/audit"
	"github.com/brukssoft/navalha-api/internal/clock"
	"github.com/brukssoft/navalha-api/internal/config"
	"github.com/brukssoft/navalha-api/internal/handlers"
	"github.com/brukssoft/navalha-api/internal/history"
	infraRepo "github.com/brukssoft/navalha-api/internal/infra/repository"
	"github.com/brukssoft/navalha-api/internal/middleware"
	"github.com/brukssoft/navalha-api/internal/notification"
	"github.com/brukssoft/navalha-api/internal/scheduling"
	"github.com/brukssoft/navalha-api/internal/sweeper"
	ucAppointment "github.com/brukssoft/navalha-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	businessClock := clock.New(cfg.Timezone)

	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	conflictChecker := scheduling.NewConflictChecker(appointmentRepo, cfg.DefaultServiceDurationMin)
	rotationSelector := scheduling.NewRotationSelector(appointmentRepo, conflictChecker)

	webhookDispatcher := notification.NewDispatcher(appointmentRepo, cfg.WebhookTimeout)
	historyStore := history.New(cfg.RedisURL, businessClock)

	noShowSweeper := sweeper.New(appointmentRepo, businessClock, cfg.NoShowGraceMin)
	reminderSweeper := sweeper.NewReminderSweeper(
		appointmentRepo,
		webhookDispatcher,
		businessClock,
		cfg.DefaultServiceDurationMin,
	)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		conflictChecker,
		rotationSelector,
		webhookDispatcher,
		historyStore,
		auditDispatcher,
		businessClock,
		cfg.DefaultServiceDurationMin,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		webhookDispatcher,
		historyStore,
		auditDispatcher,
		businessClock,
		cfg.CancellationWindowHours,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		conflictChecker,
		webhookDispatcher,
		auditDispatcher,
		businessClock,
	)

	checkinAppointmentUC := ucAppointment.NewCheckInAppointment(
		appointmentRepo,
		auditDispatcher,
		businessClock,
	)

	finalizeAppointmentUC := ucAppointment.NewFinalizeAppointment(
		appointmentRepo,
		auditDispatcher,
		businessClock,
	)

	confirmAttendanceUC := ucAppointment.NewConfirmAttendance(
		appointmentRepo,
		webhookDispatcher,
		auditDispatcher,
		businessClock,
	)

	blockSlotUC := ucAppointment.NewBlockSlot(
		appointmentRepo,
		conflictChecker,
		auditDispatcher,
		businessClock,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo, businessClock)
	listMonthUC := ucAppointment.NewListMonth(appointmentRepo, businessClock)

	availableSlotsUC := ucAppointment.NewAvailableSlots(
		appointmentRepo,
		conflictChecker,
		businessClock,
		cfg.DefaultServiceDurationMin,
	)

	rotationNextUC := ucAppointment.NewRotationNext(
		rotationSelector,
		businessClock,
		cfg.DefaultServiceDurationMin,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		cancelAppointmentUC,
		rescheduleAppointmentUC,
		checkinAppointmentUC,
		finalizeAppointmentUC,
		confirmAttendanceUC,
		listAppointmentsUC,
		listMonthUC,
		availableSlotsUC,
		rotationNextUC,
	)

	professionalHandler := handlers.NewProfessionalHandler(db, blockSlotUC)
	serviceHandler := handlers.NewServiceHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db)
	cronHandler := handlers.NewCronHandler(noShowSweeper, reminderSweeper)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ⏰ CRON (X-Cron-Secret)
		// ------------------------------
		cron := api.Group("/cron")
		cron.Use(middleware.CronAuthMiddleware(cfg))
		{
			cron.GET("/no-show-sweep", cronHandler.NoShowSweep)
			cron.GET("/reminders", cronHandler.Reminders)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/slots", appointmentHandler.AvailableSlots)
			secured.GET("/appointments/rotation", appointmentHandler.RotationNext)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/appointments/:id/checkin", appointmentHandler.CheckIn)
			secured.POST("/appointments/:id/finalize", appointmentHandler.Finalize)
			secured.POST("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.POST("/appointments/:id/attendance", appointmentHandler.ConfirmAttendance)

			// ------------------------------
			// PROFESSIONALS
			// ------------------------------
			secured.GET("/professionals", professionalHandler.List)
			secured.POST("/professionals/:id/block", professionalHandler.Block)
			secured.PUT("/professionals/:id/webhook", professionalHandler.UpdateWebhook)

			// ------------------------------
			// CATALOG / SETTINGS
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.GET("/settings", settingsHandler.Get)
			secured.PUT("/settings", settingsHandler.Update)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
