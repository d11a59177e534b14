package routes

import (
	"itapp/internal/delivery/http/handler"
	"itapp/internal/delivery/http/middleware"
	"itapp/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

// Registry holds every handler mounted on the application.
type Registry struct {
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	Company        *handler.CompanyHandler
	Student        *handler.StudentHandler
	Notification   *handler.NotificationHandler
	NotificationWS fiber.Handler

	AuthMiddleware *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", r.Health.Health)

	r.registerAuth(app.Group("/auth"))
	r.registerCompany(app.Group("/company"))
	r.registerStudents(app.Group("/students"))
	r.registerNotifications(app.Group("/notifications"))
}

func (r *Registry) registerAuth(g fiber.Router) {
	authed := r.AuthMiddleware.Middleware()

	g.Post("/signup", r.Auth.Signup)
	g.Post("/login", r.Auth.Login)
	g.Get("/me", authed, r.Auth.Me)
}

func (r *Registry) registerCompany(g fiber.Router) {
	authed := r.AuthMiddleware.Middleware()
	company := middleware.RequireRole(user.RoleCompany)
	admin := middleware.RequireRole(user.RoleAdmin)
	h := r.Company

	g.Post("/create", h.Create)
	g.Post("/login", h.Login)

	g.Get("/profile", authed, company, h.Profile)
	g.Post("/profile", authed, company, h.UpdateProfile)
	g.Get("/jobs/all", authed, company, h.Jobs)
	g.Post("/job/new", authed, company, h.CreateJob)
	g.Put("/job/update/:jobId", authed, company, h.UpdateJob)

	g.Get("/applicants/accepted", authed, company, h.AcceptedApplicants)
	g.Get("/applicants/shortlisted", authed, company, h.ShortlistedApplicants)
	g.Get("/applicants/category", authed, company, h.ApplicantsByCategory)
	g.Post("/applicants/accept", authed, company, h.Accept)
	g.Post("/applicants/shortlist", authed, company, h.Shortlist)
	g.Post("/applicants/decline", authed, company, h.Decline)

	g.Get("/admin/all", authed, admin, h.AdminList)
	g.Put("/admin/verify/:id", authed, admin, h.AdminVerify)

	// Registered last so the static paths above win.
	g.Get("/:id", authed, h.GetByID)
}

func (r *Registry) registerStudents(g fiber.Router) {
	authed := r.AuthMiddleware.Middleware()
	student := middleware.RequireRole(user.RoleStudent)
	admin := middleware.RequireRole(user.RoleAdmin)
	h := r.Student

	g.Post("/create", h.Create)
	g.Post("/login", h.Login)

	g.Post("/job/apply", authed, student, h.Apply)
	g.Post("/saved/applications", authed, student, h.Save)
	g.Delete("/saved/applications/:jobId", authed, student, h.Unsave)
	g.Get("/applications", authed, student, h.Applications)
	g.Get("/job/current", authed, student, h.CurrentJob)
	g.Get("/profile", authed, student, h.Profile)
	g.Post("/profile", authed, student, h.UpdateProfile)

	g.Get("/search/jobs", authed, h.SearchJobs)
	g.Get("/jobs", authed, h.Jobs)

	g.Get("/admin/data", authed, admin, h.AdminData)
	g.Get("/admin/count", authed, admin, h.AdminCount)
}

func (r *Registry) registerNotifications(g fiber.Router) {
	authed := r.AuthMiddleware.Middleware()
	student := middleware.RequireRole(user.RoleStudent)
	h := r.Notification

	// The websocket authenticates itself because browsers cannot send headers.
	if r.NotificationWS != nil {
		g.Get("/ws", r.NotificationWS)
	}
	g.Get("/all", authed, student, h.All)
	g.Get("/count", authed, student, h.Count)
	g.Get("/:id", authed, student, h.Get)
}
