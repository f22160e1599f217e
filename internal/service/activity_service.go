package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/nmorel/habitude/internal/error_values"
	"github.com/nmorel/habitude/internal/ledger"
	"github.com/nmorel/habitude/internal/repository"
)

type ActivityService struct {
	repo repository.ActivityRepositoryI
	now  func() time.Time
}

func NewActivityService(activityRepo repository.ActivityRepositoryI) *ActivityService {
	if activityRepo == nil {
		log.Fatal("provided nil activityRepo")
	}
	return &ActivityService{
		repo: activityRepo,
		now:  time.Now,
	}
}

func (as *ActivityService) MarkDay(ctx context.Context, uid uuid.UUID, day ledger.Day) error {
	if !day.Valid() {
		return errorvalues.ErrDayNotAllowed
	}
	if day > ledger.DayOf(as.now()) {
		return errorvalues.ErrDayNotAllowed
	}
	err := as.repo.Create(ctx, uid, day)
	if err != nil {
		switch {
		// Marking a marked day is a no-op
		case errors.Is(err, errorvalues.ErrDayMarked):
			return nil
		case errors.Is(err, errorvalues.ErrUserNotFound):
			return err
		}
		return errors.New("activity repository error: " + err.Error())
	}
	return nil
}

func (as *ActivityService) UnmarkDay(ctx context.Context, uid uuid.UUID, day ledger.Day) error {
	err := as.repo.Delete(ctx, uid, day)
	if err != nil {
		// Unmarking an absent day is a no-op
		if errors.Is(err, errorvalues.ErrDayNotMarked) {
			return nil
		}
		return errors.New("activity repository error: " + err.Error())
	}
	return nil
}

func (as *ActivityService) Days(ctx context.Context, uid uuid.UUID) ([]ledger.Day, error) {
	days, err := as.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("activity repository error: " + err.Error())
	}
	return days, nil
}

func (as *ActivityService) Reset(ctx context.Context, uid uuid.UUID) error {
	err := as.repo.DeleteByUserID(ctx, uid)
	if err != nil {
		return errors.New("activity repository error: " + err.Error())
	}
	return nil
}

func (as *ActivityService) CurrentStreak(ctx context.Context, uid uuid.UUID) (int, error) {
	days, err := as.repo.GetByUserID(ctx, uid)
	if err != nil {
		return 0, errors.New("activity repository error: " + err.Error())
	}
	return ledger.CurrentStreak(ledger.FromDays(days), as.now()), nil
}
