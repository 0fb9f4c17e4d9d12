package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/identity"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/liveview"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/photo"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
	ucUser "github.com/BruksfildServices01/barber-booking/internal/usecase/user"
)

const maxLiveCheck = 30 * time.Second

// Infra holds the long-lived services built at startup.
type Infra struct {
	Log         *zap.Logger
	Clock       timezone.Clock
	Collections *infraRepo.Collections
	Identity    *identity.Service
	Guard       *session.Guard
	Audit       *audit.Dispatcher
	Registry    *liveview.Registry

	// Objects is nil when photo uploads are not configured.
	Objects    photo.ObjectStore
	EmailValid func(string) bool
	Probes     map[string]handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, in Infra) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// REPOSITORIES
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(in.Collections, in.Clock.Location())
	scheduleRepo := infraRepo.NewScheduleGormRepository(in.Collections)
	userRepo := infraRepo.NewUserGormRepository(in.Collections)
	serviceRepo := infraRepo.NewServiceGormRepository(in.Collections)

	resolver := schedule.NewResolver(scheduleRepo, cfg.DefaultWindow)
	policy := ucAppointment.NewSlotPolicy(resolver, in.Clock, cfg.SlotStep, cfg.HorizonDays)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	appointmentUC := handlers.AppointmentUseCases{
		Availability: ucAppointment.NewGetAvailability(appointmentRepo, resolver, policy, in.Clock, cfg.SlotStep, in.Log),
		Create:       ucAppointment.NewCreateAppointment(appointmentRepo, policy, in.Clock, in.Audit),
		Get:          ucAppointment.NewGetAppointment(appointmentRepo),
		Update:       ucAppointment.NewUpdateAppointment(appointmentRepo, policy, in.Clock, in.Audit),
		Cancel:       ucAppointment.NewCancelAppointment(appointmentRepo, in.Audit),
		Complete:     ucAppointment.NewCompleteAppointment(appointmentRepo, in.Clock, in.Audit),
		List:         ucAppointment.NewListAppointments(appointmentRepo),
		ListByMonth:  ucAppointment.NewListAppointmentsByMonth(appointmentRepo, in.Clock),
		Watch:        ucAppointment.NewWatchAppointments(appointmentRepo, in.Registry),
	}

	// ======================================================
	// USE CASES: USERS & SCHEDULES
	// ======================================================
	ensureProfileUC := ucUser.NewEnsureProfile(userRepo, in.Log)
	updateUserUC := ucUser.NewUpdateUser(userRepo, in.Audit)

	var photos *photo.Service
	if in.Objects != nil {
		photos = photo.NewService(in.Objects, userRepo, in.Log)
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(in.Identity, in.Guard, ensureProfileUC, in.EmailValid)
	meHandler := handlers.NewMeHandler(updateUserUC, photos)
	usersHandler := handlers.NewUsersHandler(
		ucUser.NewListUsers(userRepo),
		ucUser.NewRegisterUser(userRepo, in.Identity, in.Audit, in.EmailValid, in.Log),
		updateUserUC,
		ucUser.NewDeleteUser(userRepo, in.Identity, in.Audit, in.Log),
	)
	scheduleHandler := handlers.NewScheduleHandler(
		ucSchedule.NewListOverrides(scheduleRepo),
		ucSchedule.NewSaveOverride(scheduleRepo, in.Audit),
		ucSchedule.NewDeleteOverride(scheduleRepo, in.Audit),
		ucSchedule.NewResolveWindow(resolver),
		in.Clock,
	)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC, in.Identity, in.Guard, liveCheckInterval(cfg.SessionMaxIdle), in.Clock)
	serviceHandler := handlers.NewServiceHandler(serviceRepo)
	clientHandler := handlers.NewClientHandler(userRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, in.Clock)
	healthHandler := handlers.NewHealthHandler(db, in.Probes)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)

	r.GET("/health", healthHandler.Check)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth", limiter.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/federated", authHandler.Federated)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
		}

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.GET("/barbers", usersHandler.ListBarbers)
		api.GET("/barbers/:id/availability", appointmentHandler.Availability)
		api.GET("/barbers/:id/schedules", scheduleHandler.ListForBarber)
		api.GET("/barbers/:id/window", scheduleHandler.Window)

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(in.Identity, in.Guard, ensureProfileUC))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.PUT("/me/photo", meHandler.SetPhoto)

			secured.GET("/me/appointments", appointmentHandler.List)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/appointments/live", appointmentHandler.Live)
			secured.PATCH("/me/appointments/live/:stream", appointmentHandler.SetLiveFilters)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments/:id", appointmentHandler.Get)
			secured.PUT("/me/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Cancel)
		}

		// ------------------------------
		// BARBERS
		// ------------------------------
		barbers := secured.Group("/")
		barbers.Use(middleware.RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin))
		{
			barbers.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			barbers.GET("/me/clients", clientHandler.List)
			barbers.GET("/me/schedules", scheduleHandler.ListMine)
			barbers.PUT("/me/schedules", scheduleHandler.Save)
			barbers.DELETE("/me/schedules/:id", scheduleHandler.Delete)
		}

		// ------------------------------
		// SUPER ADMIN
		// ------------------------------
		super := secured.Group("/")
		super.Use(middleware.RequireRoles(domain.RoleSuperAdmin))
		{
			super.GET("/users", usersHandler.List)
			super.POST("/users", usersHandler.Register)
			super.PATCH("/users/:id", usersHandler.Update)
			super.DELETE("/users/:id", usersHandler.Delete)

			super.POST("/services", serviceHandler.Create)
			super.PATCH("/services/:id", serviceHandler.Update)
			super.DELETE("/services/:id", serviceHandler.Delete)

			super.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

// liveCheckInterval polls often enough that a live stream outlives its idle
// limit by at most half of it, and never by more than maxLiveCheck.
func liveCheckInterval(maxIdle time.Duration) time.Duration {
	if maxIdle <= 0 {
		return maxLiveCheck
	}
	return min(maxIdle/2, maxLiveCheck)
}
