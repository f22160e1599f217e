package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nmorel/habitude/internal/service"
)

type Server struct {
	mx              *chi.Mux
	userService     service.UserServiceI
	todosService    service.TodosServiceI
	activityService service.ActivityServiceI
	reminderService service.ReminderServiceI
	jwtService      JWTServiceI
	mounted         bool
}

type ServicesList struct {
	UserService     service.UserServiceI
	TodosService    service.TodosServiceI
	ActivityService service.ActivityServiceI
	ReminderService service.ReminderServiceI
	JwtService      JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:              chi.NewMux(),
		userService:     servicesOptions.UserService,
		todosService:    servicesOptions.TodosService,
		activityService: servicesOptions.ActivityService,
		reminderService: servicesOptions.ReminderService,
		jwtService:      servicesOptions.JwtService,
	}
}

func (s *Server) Run(address string) error {
	s.mountRoutes()
	return http.ListenAndServe(address, s.mx)
}

// Handler exposes the routed mux, used by the tests.
func (s *Server) Handler() http.Handler {
	s.mountRoutes()
	return s.mx
}

func (s *Server) mountRoutes() {
	if s.mounted {
		return
	}
	s.mounted = true
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Get("/health", s.Health)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.Register)
			r.Post("/login", s.Login)
			r.With(s.AuthMiddleware, s.LoggerExtensionMiddleware).Delete("/account", s.DeleteAccount)
		})
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Use(s.LoggerExtensionMiddleware)
			r.Route("/todos", func(r chi.Router) {
				r.Get("/", s.GetTodos)
				r.Post("/", s.CreateTodo)
				r.Post("/sync", s.SyncTodos)
				r.Put("/{id}", s.UpdateTodo)
				r.Delete("/{id}", s.DeleteTodo)
			})
			r.Route("/activity", func(r chi.Router) {
				r.Get("/", s.GetActivity)
				r.Delete("/", s.ResetActivity)
				r.Get("/streak", s.GetStreak)
				r.Post("/{day}", s.MarkDay)
				r.Delete("/{day}", s.UnmarkDay)
			})
			r.Post("/reminders/test", s.SendTestReminder)
		})
	})
}
