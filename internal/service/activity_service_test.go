package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	errorvalues "github.com/nmorel/habitude/internal/error_values"
	"github.com/nmorel/habitude/internal/ledger"
	"github.com/nmorel/habitude/internal/repository/mocks"
	"github.com/nmorel/habitude/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	activityRepo := mocks.NewMockActivityRepositoryI(ctrl)
	serv := service.NewActivityService(activityRepo)
	uid := uuid.New()
	today := ledger.DayOf(time.Now())
	tomorrow := ledger.DayOf(time.Now().AddDate(0, 0, 1))
	testCases := []struct {
		Desc         string
		Day          ledger.Day
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc:  "success",
			Day:   today,
			Error: nil,
			MockPrepFunc: func() {
				activityRepo.EXPECT().Create(gomock.Any(), uid, today).Return(nil)
			},
		},
		{
			Desc:  "marking a marked day is a no-op",
			Day:   today,
			Error: nil,
			MockPrepFunc: func() {
				activityRepo.EXPECT().Create(gomock.Any(), uid, today).Return(errorvalues.ErrDayMarked)
			},
		},
		{
			Desc:         "future day rejected",
			Day:          tomorrow,
			Error:        errorvalues.ErrDayNotAllowed,
			MockPrepFunc: func() {},
		},
		{
			Desc:         "malformed day rejected",
			Day:          ledger.Day("30/08/2026"),
			Error:        errorvalues.ErrDayNotAllowed,
			MockPrepFunc: func() {},
		},
		{
			Desc:  "unknown user",
			Day:   today,
			Error: errorvalues.ErrUserNotFound,
			MockPrepFunc: func() {
				activityRepo.EXPECT().Create(gomock.Any(), uid, today).Return(errorvalues.ErrUserNotFound)
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			err := serv.MarkDay(ctx, uid, tc.Day)
			assert.ErrorIs(t, err, tc.Error)
		})
	}
}

func TestUnmarkDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	activityRepo := mocks.NewMockActivityRepositoryI(ctrl)
	serv := service.NewActivityService(activityRepo)
	uid := uuid.New()
	day := ledger.Day("2026-08-29")
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		activityRepo.EXPECT().Delete(gomock.Any(), uid, day).Return(nil)
		assert.NoError(t, serv.UnmarkDay(ctx, uid, day))
	})

	t.Run("unmarking an absent day is a no-op", func(t *testing.T) {
		activityRepo.EXPECT().Delete(gomock.Any(), uid, day).Return(errorvalues.ErrDayNotMarked)
		assert.NoError(t, serv.UnmarkDay(ctx, uid, day))
	})

	t.Run("repository error", func(t *testing.T) {
		activityRepo.EXPECT().Delete(gomock.Any(), uid, day).Return(assert.AnError)
		assert.Error(t, serv.UnmarkDay(ctx, uid, day))
	})
}

func TestCurrentStreak(t *testing.T) {
	ctrl := gomock.NewController(t)
	activityRepo := mocks.NewMockActivityRepositoryI(ctrl)
	serv := service.NewActivityService(activityRepo)
	uid := uuid.New()
	now := time.Now()
	ctx := context.Background()

	t.Run("consecutive days ending today", func(t *testing.T) {
		activityRepo.EXPECT().GetByUserID(gomock.Any(), uid).Return([]ledger.Day{
			ledger.DayOf(now.AddDate(0, 0, -2)),
			ledger.DayOf(now.AddDate(0, 0, -1)),
			ledger.DayOf(now),
		}, nil)
		streak, err := serv.CurrentStreak(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, 3, streak)
	})

	t.Run("no activity today or yesterday means zero", func(t *testing.T) {
		activityRepo.EXPECT().GetByUserID(gomock.Any(), uid).Return([]ledger.Day{
			ledger.DayOf(now.AddDate(0, 0, -5)),
		}, nil)
		streak, err := serv.CurrentStreak(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, 0, streak)
	})

	t.Run("repository error", func(t *testing.T) {
		activityRepo.EXPECT().GetByUserID(gomock.Any(), uid).Return(nil, assert.AnError)
		_, err := serv.CurrentStreak(ctx, uid)
		assert.Error(t, err)
	})
}

func TestResetActivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	activityRepo := mocks.NewMockActivityRepositoryI(ctrl)
	serv := service.NewActivityService(activityRepo)
	uid := uuid.New()

	activityRepo.EXPECT().DeleteByUserID(gomock.Any(), uid).Return(nil)
	assert.NoError(t, serv.Reset(context.Background(), uid))
}
