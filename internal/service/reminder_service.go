package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/nmorel/habitude/internal/error_values"
	"github.com/nmorel/habitude/internal/reminder"
	"github.com/nmorel/habitude/internal/repository"
	"github.com/nmorel/habitude/pkg/entity"
)

type ReminderService struct {
	usersRepo repository.UsersRepositoryI
	todosRepo repository.TodosRepositoryI
	sender    reminder.Sender
	logger    *slog.Logger
}

func NewReminderService(usersRepo repository.UsersRepositoryI, todosRepo repository.TodosRepositoryI, sender reminder.Sender) *ReminderService {
	if usersRepo == nil || todosRepo == nil || sender == nil {
		log.Fatal("on reminder service provided nil dependencies")
	}
	return &ReminderService{
		usersRepo: usersRepo,
		todosRepo: todosRepo,
		sender:    sender,
		logger:    slog.Default().With(slog.String("component", "reminder_service")),
	}
}

// RunOnce scans every user once. One user's failure never aborts the scan of
// the others.
func (rs *ReminderService) RunOnce(ctx context.Context, now time.Time) {
	users, err := rs.usersRepo.All(ctx)
	if err != nil {
		rs.logger.Error("reminder scan aborted: listing users failed", slog.String("error", err.Error()))
		return
	}
	for _, user := range users {
		rs.remindUser(ctx, user, now)
	}
}

func (rs *ReminderService) remindUser(ctx context.Context, user *entity.User, now time.Time) {
	logger := rs.logger.With(slog.String("uid", user.ID.String()))
	pending, err := rs.todosRepo.GetPendingByUserID(ctx, user.ID)
	if err != nil {
		logger.Error("skipping user: getting pending todos failed", slog.String("error", err.Error()))
		return
	}
	if !needsReminder(pending, now) {
		return
	}
	if user.Email == "" {
		return
	}
	if !rs.sender.Send(ctx, user.Email, user.Name, titles(pending)) {
		// No stamp on failure, so the next scheduled run retries
		logger.Error("reminder delivery failed")
		return
	}
	if err = rs.todosRepo.StampReminders(ctx, user.ID, now); err != nil {
		logger.Error("stamping reminders failed", slog.String("error", err.Error()))
		return
	}
	logger.Info("reminder sent", slog.Int("pending", len(pending)))
}

func (rs *ReminderService) SendTest(ctx context.Context, uid uuid.UUID) error {
	user, err := rs.usersRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return err
		}
		return errors.New("users repository error: " + err.Error())
	}
	pending, err := rs.todosRepo.GetPendingByUserID(ctx, user.ID)
	if err != nil {
		return errors.New("todos repository error: " + err.Error())
	}
	list := titles(pending)
	if len(list) == 0 {
		list = []string{"Sample task 1", "Sample task 2"}
	}
	if !rs.sender.Send(ctx, user.Email, user.Name, list) {
		return errorvalues.ErrDeliveryFailed
	}
	return nil
}

// needsReminder reports whether the user is due at now: at least one pending
// item and none of them reminded within now's calendar day. The dedup key is
// coarse per user-day, not per item.
func needsReminder(pending []*entity.Todo, now time.Time) bool {
	if len(pending) == 0 {
		return false
	}
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, todo := range pending {
		if todo.LastReminderSent != nil && !todo.LastReminderSent.Before(dayStart) {
			return false
		}
	}
	return true
}

func titles(todos []*entity.Todo) []string {
	result := make([]string, 0, len(todos))
	for _, todo := range todos {
		result = append(result, todo.Title)
	}
	return result
}
