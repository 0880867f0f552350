package services

import (
	"context"
	"testing"

	apperrors "github.com/hyerin/tinywords/internal/errors"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProfileService() (ProfileService, *mocks.MockProfileRepository, *recorderStub) {
	profiles := new(mocks.MockProfileRepository)
	recorder := new(recorderStub)
	return NewProfileService(profiles, recorder), profiles, recorder
}

func TestInitializeCreatesDefaultProfile(t *testing.T) {
	svc, profiles, _ := newProfileService()
	ctx := context.Background()

	profiles.On("Get", ctx, "user-1").Return(nil, nil)
	profiles.On("Upsert", ctx, mock.MatchedBy(func(p models.UserProfile) bool {
		return p.DailyTarget == DefaultDailyTarget && p.Timezone == "Asia/Seoul" && p.ReminderEnabled
	})).Return(nil)

	result, err := svc.Initialize(ctx, "user-1", "Asia/Seoul")
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "Asia/Seoul", result.Profile.Timezone)
}

func TestInitializeIsIdempotent(t *testing.T) {
	svc, profiles, _ := newProfileService()
	ctx := context.Background()

	existing := defaultProfile("user-1")
	profiles.On("Get", ctx, "user-1").Return(&existing, nil)

	result, err := svc.Initialize(ctx, "user-1", "Asia/Seoul")
	require.NoError(t, err)
	assert.False(t, result.Created)
	profiles.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestInitializeRejectsUnknownTimezone(t *testing.T) {
	svc, profiles, _ := newProfileService()
	ctx := context.Background()
	profiles.On("Get", ctx, "user-1").Return(nil, nil)

	_, err := svc.Initialize(ctx, "user-1", "Mars/Olympus")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestPatchDailyTargetBounds(t *testing.T) {
	svc, profiles, _ := newProfileService()
	ctx := context.Background()

	existing := defaultProfile("user-1")
	profiles.On("Get", ctx, "user-1").Return(&existing, nil)

	for _, target := range []int{2, 6, 0, -1} {
		target := target
		_, err := svc.Patch(ctx, "user-1", models.ProfilePatch{DailyTarget: &target})
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	}
	profiles.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestPatchUpdatesProfile(t *testing.T) {
	svc, profiles, recorder := newProfileService()
	ctx := context.Background()

	existing := defaultProfile("user-1")
	profiles.On("Get", ctx, "user-1").Return(&existing, nil)
	profiles.On("Upsert", ctx, mock.MatchedBy(func(p models.UserProfile) bool {
		return p.DailyTarget == 5 && p.LearningFocus == "business"
	})).Return(nil)

	target := 5
	focus := "business"
	updated, err := svc.Patch(ctx, "user-1", models.ProfilePatch{DailyTarget: &target, LearningFocus: &focus})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.DailyTarget)
	assert.Contains(t, recorder.names(), models.EventSettingsUpdated)
}

func TestPatchMissingProfile(t *testing.T) {
	svc, profiles, _ := newProfileService()
	ctx := context.Background()
	profiles.On("Get", ctx, "user-1").Return(nil, nil)

	target := 4
	_, err := svc.Patch(ctx, "user-1", models.ProfilePatch{DailyTarget: &target})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestReset(t *testing.T) {
	svc, profiles, _ := newProfileService()
	ctx := context.Background()
	profiles.On("ResetUserData", ctx, "user-1").Return(nil)

	require.NoError(t, svc.Reset(ctx, "user-1"))
	profiles.AssertExpectations(t)
}
