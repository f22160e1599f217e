package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/nmorel/habitude/internal/error_values"
	"github.com/nmorel/habitude/internal/ledger"
	"github.com/nmorel/habitude/internal/service"
	"github.com/nmorel/habitude/pkg/entity"
	"github.com/nmorel/habitude/pkg/httputil"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type CreateTodoRequest struct {
	Title string `json:"title"`
}

type UpdateTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

type SyncTodosRequest struct {
	Todos []*entity.Todo `json:"todos"`
}

type GetTodosResponse struct {
	UserID string         `json:"uid"`
	Todos  []*entity.Todo `json:"todos"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		var fieldErr validator.FieldError
		switch {
		case errors.Is(err, errorvalues.ErrUserExists):
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such email already exists", nil)
		case errors.As(err, &fieldErr):
			logger.Error("registering error: invalid credentials format")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid email or password format", nil)
		default:
			logger.Error("registering error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		}
		return
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("registering error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid":   user.ID.String(),
		"token": token,
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password are reported the same way
		if errors.Is(err, errorvalues.ErrWrongCredentials) {
			logger.Error("login error: wrong credentials")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		logger.Error("login error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
		return
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   user.ID.String(),
		"token": token,
	})
	logger.Info("successful login")
}

func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("account deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req DeleteAccountRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("account deletion error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.userService.DeleteAccount(ctx, uid, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("account deletion error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid password", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("account deletion error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("account deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting account", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("account deleted")
}

func (s *Server) GetTodos(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get todos error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	todos, err := s.todosService.ListTodos(ctx, uid)
	if err != nil {
		logger.Error("getting todos list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting todos list", nil)
		return
	}
	if todos == nil {
		todos = []*entity.Todo{}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetTodosResponse{
		UserID: uid.String(),
		Todos:  todos,
	})
	logger.Info("todos provided")
}

func (s *Server) CreateTodo(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create todo error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CreateTodoRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create todo error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	todo, err := s.todosService.CreateTodo(ctx, uid, req.Title)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrEmptyTitle):
			logger.Error("create todo error: empty title")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "title must not be empty", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("create todo error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't create todo: user doesn't exists", nil)
		default:
			logger.Error("create todo error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating todo", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, todo)
	logger.Info("todo created")
}

func (s *Server) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update todo error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update todo error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid todo id in path value", nil)
		return
	}
	var req UpdateTodoRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update todo error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	todo, err := s.todosService.UpdateTodo(ctx, id, uid, service.UpdateTodoRequest{
		Completed: req.Completed,
		Title:     req.Title,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTodoNotFound):
			logger.Error("update todo error: unexist todo")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "todo doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("update todo error: todo has different owner")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "todo doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrEmptyTitle):
			logger.Error("update todo error: empty title")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "title must not be empty", nil)
		default:
			logger.Error("update todo error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating todo", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, todo)
	logger.Info("todo updated")
}

func (s *Server) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("todo deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("todo deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid todo id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.todosService.DeleteTodo(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTodoNotFound):
			logger.Error("todo deletion error: unexist todo")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "todo doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("todo deletion error: todo has different owner")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "todo doesn't exist", nil)
		default:
			logger.Error("todo deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting todo", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("todo deleted")
}

func (s *Server) SyncTodos(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("sync todos error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req SyncTodosRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("sync todos error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	count, err := s.todosService.ReplaceAll(ctx, uid, req.Todos)
	if err != nil {
		logger.Error("sync todos error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while syncing todos", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"count": count})
	logger.Info("todos synced", slog.Int("count", count))
}

func (s *Server) GetActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get activity error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	days, err := s.activityService.Days(ctx, uid)
	if err != nil {
		logger.Error("getting activity error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting activity", nil)
		return
	}
	if days == nil {
		days = []ledger.Day{}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"days": days})
	logger.Info("activity provided")
}

func (s *Server) GetStreak(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get streak error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	streak, err := s.activityService.CurrentStreak(ctx, uid)
	if err != nil {
		logger.Error("getting streak error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting streak", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"streak": streak})
	logger.Info("streak provided")
}

func (s *Server) MarkDay(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("mark day error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	day := ledger.Day(r.PathValue("day"))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.activityService.MarkDay(ctx, uid, day)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrDayNotAllowed):
			logger.Error("mark day error: day rejected")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "day is malformed or in the future", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("mark day error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't mark day: user doesn't exists", nil)
		default:
			logger.Error("mark day error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while marking day", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("day marked", slog.String("day", string(day)))
}

func (s *Server) UnmarkDay(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("unmark day error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	day := ledger.Day(r.PathValue("day"))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.activityService.UnmarkDay(ctx, uid, day)
	if err != nil {
		logger.Error("unmark day error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while unmarking day", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("day unmarked", slog.String("day", string(day)))
}

func (s *Server) ResetActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("reset activity error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.activityService.Reset(ctx, uid)
	if err != nil {
		logger.Error("reset activity error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while resetting activity", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("activity reset")
}

func (s *Server) SendTestReminder(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("test reminder error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	err = s.reminderService.SendTest(ctx, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrDeliveryFailed):
			logger.Error("test reminder error: delivery failed")
			httputil.WriteErrorResponse(w, http.StatusBadGateway, "reminder delivery failed", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("test reminder error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("test reminder error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while sending reminder", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"status": "sent"})
	logger.Info("test reminder sent")
}
