package routes

import (
	"placement-experiment/praxis/internal/api"
	"placement-experiment/praxis/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// Role gates nest: the admin group sits inside the mentor group, so an
// admin passes both checks.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {

	// credential endpoint, rate limited per IP
	r.Group(func(public chi.Router) {
		public.Use(middleware.RateLimitMiddleware)
		public.Post("/api/v1/auth/login", api.LoginHandler(deps))
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.AuthMiddleware(deps.Services.Tokens, deps.Services.Sessions)) // global: all routes below carry verified claims

		v1.Post("/auth/refresh", api.RefreshHandler(deps))
		v1.Post("/auth/logout", api.LogoutHandler(deps))

		v1.Get("/profile", api.GetProfileHandler(deps))
		v1.Put("/profile", api.UpdateProfileHandler(deps))

		// item records; reads and writes are scoped by role inside the
		// services, so these stay at the authenticated level
		v1.Post("/activities", api.CreateActivityHandler(deps))
		v1.Get("/activities", api.ListActivitiesHandler(deps))
		v1.Get("/activities/{id}", api.GetActivityHandler(deps))
		v1.Put("/activities/{id}", api.UpdateActivityHandler(deps))
		v1.Delete("/activities/{id}", api.DeleteActivityHandler(deps))

		v1.Post("/sessions", api.CreateSessionHandler(deps))
		v1.Get("/sessions", api.ListSessionsHandler(deps))
		v1.Get("/sessions/{id}", api.GetSessionHandler(deps))
		v1.Put("/sessions/{id}", api.UpdateSessionHandler(deps))
		v1.Delete("/sessions/{id}", api.DeleteSessionHandler(deps))

		v1.Post("/qualifications", api.CreateQualificationHandler(deps))
		v1.Get("/qualifications", api.ListQualificationsHandler(deps))
		v1.Get("/qualifications/{id}", api.GetQualificationHandler(deps))
		v1.Put("/qualifications/{id}", api.UpdateQualificationHandler(deps))
		v1.Delete("/qualifications/{id}", api.DeleteQualificationHandler(deps))

		v1.Get("/verifications/{kind}/{itemId}", api.GetVerificationHandler(deps))

		v1.Post("/messages", api.SendMessageHandler(deps))
		v1.Get("/messages", api.GetInboxHandler(deps))
		v1.Get("/messages/{userId}", api.GetConversationHandler(deps))

		v1.Get("/skills", api.ListSkillsHandler(deps))
		v1.Post("/student/skills", api.ClaimSkillHandler(deps))
		v1.Put("/student/cv", api.UpsertCVHandler(deps))

		v1.Get("/students/{studentId}/mentor", api.GetStudentMentorHandler(deps))
		v1.Get("/students/{studentId}/skills", api.ListStudentSkillsHandler(deps))
		v1.Get("/students/{studentId}/cv", api.GetCVHandler(deps))

		// Mentor group (mentors and admins)
		v1.Group(func(mentor chi.Router) {
			mentor.Use(middleware.IsMentorMiddleware())

			mentor.Get("/mentor/mentees", api.ListMenteesHandler(deps))
			mentor.Get("/mentor/reports/tallies", api.MentorTalliesHandler(deps))
			mentor.Post("/mentor/verifications", api.VerifyItemHandler(deps))
			mentor.Post("/mentor/verifications/reopen", api.ReopenVerificationHandler(deps))
			mentor.Post("/mentor/students/{studentId}/skills/{skillId}/endorse", api.EndorseSkillHandler(deps))

			// Admin-only group
			mentor.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware())

				admin.Post("/admin/users", api.CreateUserHandler(deps))
				admin.Get("/admin/users", api.ListUsersHandler(deps))
				admin.Get("/admin/users/{id}", api.GetUserHandler(deps))
				admin.Put("/admin/users/{id}", api.UpdateUserHandler(deps))
				admin.Delete("/admin/users/{id}", api.DeleteUserHandler(deps))

				admin.Post("/admin/assignments", api.AssignMentorHandler(deps))
				admin.Delete("/admin/assignments/{studentId}", api.UnassignMentorHandler(deps))

				admin.Post("/admin/skills", api.CreateSkillHandler(deps))
				admin.Put("/admin/skills/{id}", api.UpdateSkillHandler(deps))
				admin.Delete("/admin/skills/{id}", api.DeleteSkillHandler(deps))
				admin.Post("/admin/skills/import", api.ImportSkillsHandler(deps))

				admin.Get("/admin/reports/overview", api.OverviewReportHandler(deps))
			})
		})
	})
}
