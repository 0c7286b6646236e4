package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/smart-recruiter/internal/analytics"
	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	"github.com/frahmantamala/smart-recruiter/internal/employee"
	"github.com/frahmantamala/smart-recruiter/internal/history"
	"github.com/frahmantamala/smart-recruiter/internal/interview"
	"github.com/frahmantamala/smart-recruiter/internal/job"
	"github.com/frahmantamala/smart-recruiter/internal/lifecycle"
	"github.com/frahmantamala/smart-recruiter/internal/notification"
	"github.com/frahmantamala/smart-recruiter/internal/screening"
	"github.com/frahmantamala/smart-recruiter/internal/session"
	"github.com/frahmantamala/smart-recruiter/internal/transport/middleware"
	"github.com/frahmantamala/smart-recruiter/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Health       *HealthHandler
	Session      *session.Handler
	Job          *job.Handler
	Applicant    *applicant.Handler
	Lifecycle    *lifecycle.Handler
	Screening    *screening.Handler
	Notification *notification.Handler
	History      *history.Handler
	Employee     *employee.Handler
	Interview    *interview.Handler
	Analytics    *analytics.Handler
	// OpenAPI serves the validated API document; nil skips the docs routes.
	OpenAPI http.Handler
}

type RouterOptions struct {
	AllowedOrigins string
	Logger         *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts RouterOptions) {
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware(opts.Logger))
	router.Use(middleware.RecoveryMiddleware(opts.Logger))

	if h.OpenAPI != nil {
		router.Method(http.MethodGet, swagger.DocumentPath, h.OpenAPI)
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health.healthCheckHandler)
		r.Get("/ping", h.Health.pingHandler)

		registerPublicRoutes(r, h)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Session.AuthMiddleware)
			registerHRRoutes(pr, h)
		})
	})
}

// registerPublicRoutes mounts what candidates use without an HR session.
func registerPublicRoutes(r chi.Router, h Handlers) {
	r.Post("/auth/login", h.Session.Login)

	r.Get("/jobs", h.Job.ListJobs)
	r.Get("/jobs/{id}", h.Job.GetJob)

	r.Post("/applicants", h.Applicant.CreateApplicant)
	r.Get("/applicants/{id}", h.Applicant.GetApplicant)
	r.Post("/applicants/{id}/offer-response", h.Lifecycle.RespondToOffer)

	r.Get("/notifications", h.Notification.ListNotifications)
	r.Get("/notifications/unread-count", h.Notification.UnreadCount)
	r.Patch("/notifications/{id}/read", h.Notification.MarkRead)
	r.Delete("/notifications/{id}", h.Notification.DeleteNotification)
	r.Delete("/notifications", h.Notification.BulkDelete)
}

func registerHRRoutes(r chi.Router, h Handlers) {
	r.Post("/auth/logout", h.Session.Logout)
	r.Get("/auth/sessions", h.Session.ListSessions)

	r.Post("/jobs", h.Job.CreateJob)
	r.Put("/jobs/{id}", h.Job.UpdateJob)
	r.Delete("/jobs/{id}", h.Job.DeleteJob)

	// static segments before /{id}
	r.Get("/applicants", h.Applicant.ListApplicants)
	r.Delete("/applicants", h.Applicant.DeleteAllApplicants)
	r.Get("/applicants/screening", h.Screening.ScreenApplicants)
	r.Post("/applicants/bulk-update-stage", h.Applicant.BulkUpdateStage)
	r.Post("/applicants/bulk-accept", h.Lifecycle.BulkAccept)
	r.Post("/applicants/bulk-reject", h.Lifecycle.BulkReject)
	r.Post("/applicants/merge", h.Lifecycle.Merge)
	r.Put("/applicants/{id}", h.Applicant.UpdateApplicant)
	r.Delete("/applicants/{id}", h.Applicant.DeleteApplicant)
	r.Patch("/applicants/{id}/stage", h.Lifecycle.SetStage)
	r.Patch("/applicants/{id}/offer", h.Lifecycle.SendOffer)

	r.Post("/emails/bulk-acceptance", h.Lifecycle.SendBulkAcceptance)
	r.Post("/emails/bulk-rejection", h.Lifecycle.SendBulkRejection)
	r.Post("/emails/duplicate-warning", h.Lifecycle.SendDuplicateWarning)
	r.Post("/emails/identity-warning", h.Lifecycle.SendIdentityWarning)

	r.Get("/history", h.History.ListHistory)
	r.Get("/history/stats", h.History.Stats)
	r.Post("/history", h.History.CreateRecord)
	r.Delete("/history", h.History.ClearHistory)

	r.Get("/employees", h.Employee.ListEmployees)
	r.Post("/employees", h.Employee.CreateEmployee)
	r.Patch("/employees/{id}", h.Employee.UpdateEmployee)
	r.Delete("/employees/{id}", h.Employee.DeactivateEmployee)

	r.Get("/interviews", h.Interview.ListInterviews)
	r.Post("/interviews", h.Interview.CreateInterview)
	r.Get("/interviews/{id}", h.Interview.GetInterview)
	r.Put("/interviews/{id}", h.Interview.UpdateInterview)
	r.Delete("/interviews/{id}", h.Interview.DeleteInterview)

	r.Get("/analytics/dashboard", h.Analytics.Dashboard)
	r.Get("/analytics/applicants-by-stage", h.Analytics.ApplicantsByStage)
	r.Get("/analytics/applicants-over-time", h.Analytics.ApplicantsOverTime)
	r.Get("/analytics/job-stats/{job_id}", h.Analytics.JobStats)
}
