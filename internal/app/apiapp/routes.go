package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/coachpoint/backend/internal/domain/enums"
	authsvc "github.com/coachpoint/backend/internal/services/auth"
	contactsvc "github.com/coachpoint/backend/internal/services/contact"
	postssvc "github.com/coachpoint/backend/internal/services/posts"
	ratesvc "github.com/coachpoint/backend/internal/services/rate"
	resourcessvc "github.com/coachpoint/backend/internal/services/resources"
	showcasesvc "github.com/coachpoint/backend/internal/services/showcase"
	statssvc "github.com/coachpoint/backend/internal/services/stats"
	storagesvc "github.com/coachpoint/backend/internal/services/storage"
	userssvc "github.com/coachpoint/backend/internal/services/users"
	"github.com/coachpoint/backend/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService     *authsvc.Service
	ContactService  *contactsvc.Service
	PostService     *postssvc.Service
	RateLimiter     *ratesvc.Limiter
	ResourceService *resourcessvc.Service
	ShowcaseService *showcasesvc.Service
	StatsService    *statssvc.Service
	StorageService  *storagesvc.Service
	UserService     *userssvc.Service
	Logger          *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	publicHandler := handlers.NewPublicHandler(deps.PostService, deps.ShowcaseService, deps.ContactService)
	studentHandler := handlers.NewStudentHandler(deps.ResourceService, deps.UserService)
	adminHandler := handlers.NewAdminHandler(deps.UserService, deps.ResourceService, deps.StatsService)
	adminResourcesHandler := handlers.NewAdminResourcesHandler(deps.ResourceService, deps.StorageService)
	adminContentHandler := handlers.NewAdminContentHandler(deps.PostService, deps.ShowcaseService)
	healthHandler := handlers.NewHealthHandler()

	rateMW := RateLimitMiddleware(deps.RateLimiter, deps.Logger)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	adminMW := RequireRole(enums.RoleAdmin)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/api", func(r chi.Router) {
		r.Use(rateMW)

		r.Route("/public", func(r chi.Router) {
			r.Get("/posts", publicHandler.Posts)
			r.Get("/posts/{slug}", publicHandler.PostBySlug)
			r.Get("/testimonials", publicHandler.Testimonials)
			r.Get("/reviews", publicHandler.Reviews)
			r.Get("/scores", publicHandler.ScoreSheets)
			r.Post("/contact", publicHandler.Contact)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(authMW).Get("/me", authHandler.Me)
		})

		r.Route("/student", func(r chi.Router) {
			r.Use(authMW)
			r.Get("/categories", studentHandler.Categories)
			r.Get("/resources", studentHandler.Resources)
			r.Get("/resources/{id}/view", studentHandler.ViewResource)
			r.Put("/resources/{id}/progress", studentHandler.UpdateProgress)
			r.Get("/progress/summary", studentHandler.Summary)
			r.Get("/profile", studentHandler.Profile)
			r.Put("/profile", studentHandler.UpdateProfile)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMW, adminMW)
			r.Get("/dashboard", adminHandler.Dashboard)

			r.Get("/users", adminHandler.Users)
			r.Get("/users/{id}", adminHandler.User)
			r.Put("/users/{id}/status", adminHandler.SetUserStatus)
			r.Get("/users/{id}/progress", adminHandler.UserProgress)

			r.Get("/resources", adminResourcesHandler.List)
			r.Post("/resources", adminResourcesHandler.Upload)
			r.Put("/resources/{id}", adminResourcesHandler.Update)
			r.Delete("/resources/{id}", adminResourcesHandler.Delete)
			r.Post("/resources/assign", adminResourcesHandler.Assign)
			r.Post("/resources/complete-category", adminResourcesHandler.MarkCategoryComplete)

			r.Get("/posts", adminContentHandler.Posts)
			r.Post("/posts", adminContentHandler.CreatePost)
			r.Put("/posts/{id}", adminContentHandler.UpdatePost)
			r.Delete("/posts/{id}", adminContentHandler.DeletePost)

			r.Get("/testimonials", adminContentHandler.Testimonials)
			r.Post("/testimonials", adminContentHandler.CreateTestimonial)
			r.Put("/testimonials/{id}", adminContentHandler.UpdateTestimonial)
			r.Delete("/testimonials/{id}", adminContentHandler.DeleteTestimonial)
			r.Get("/reviews", adminContentHandler.Reviews)
			r.Post("/reviews", adminContentHandler.CreateReview)
			r.Put("/reviews/{id}", adminContentHandler.UpdateReview)
			r.Delete("/reviews/{id}", adminContentHandler.DeleteReview)
			r.Get("/scores", adminContentHandler.ScoreSheets)
			r.Post("/scores", adminContentHandler.CreateScoreSheet)
			r.Put("/scores/{id}", adminContentHandler.UpdateScoreSheet)
			r.Delete("/scores/{id}", adminContentHandler.DeleteScoreSheet)
		})
	})
}
