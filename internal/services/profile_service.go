package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hyerin/tinywords/internal/errors"
	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
)

// Profile defaults applied at first contact.
const (
	DefaultDailyTarget = 3
	DefaultLevel       = "A2"
	DefaultFocus       = "travel"
	DefaultTimezone    = "UTC"
)

func defaultProfile(userID string) models.UserProfile {
	return models.UserProfile{
		UserID:          userID,
		DailyTarget:     DefaultDailyTarget,
		Level:           DefaultLevel,
		LearningFocus:   DefaultFocus,
		Timezone:        DefaultTimezone,
		ReminderEnabled: true,
	}
}

// InitializeResult reports whether the profile already existed.
type InitializeResult struct {
	Profile models.UserProfile `json:"profile"`
	Created bool               `json:"created"`
}

// ProfileService handles user profile business logic
type ProfileService interface {
	// Initialize creates the default profile on first contact and is a
	// no-op afterwards.
	Initialize(ctx context.Context, userID, timezone string) (*InitializeResult, error)
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Patch(ctx context.Context, userID string, patch models.ProfilePatch) (*models.UserProfile, error)
	// Reset wipes the user's learning data but keeps the profile.
	Reset(ctx context.Context, userID string) error
}

type profileService struct {
	profiles repository.ProfileRepository
	events   EventRecorder
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles repository.ProfileRepository, events EventRecorder) ProfileService {
	return &profileService{profiles: profiles, events: events}
}

func (s *profileService) Initialize(ctx context.Context, userID, timezone string) (*InitializeResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("initializing user: user_id=%s", userID)

	existing, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return &InitializeResult{Profile: *existing}, nil
	}

	profile := defaultProfile(userID)
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return nil, errors.NewValidationError("timezone", "unknown timezone")
		}
		profile.Timezone = timezone
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("created profile: user_id=%s timezone=%s", userID, profile.Timezone)
	return &InitializeResult{Profile: profile, Created: true}, nil
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", userID)
	}
	return profile, nil
}

func (s *profileService) Patch(ctx context.Context, userID string, patch models.ProfilePatch) (*models.UserProfile, error) {
	log := logger.FromContext(ctx)
	log.Debug("patching profile: user_id=%s", userID)

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", userID)
	}

	if patch.DailyTarget != nil {
		if *patch.DailyTarget < 3 || *patch.DailyTarget > 5 {
			return nil, errors.NewValidationError("daily_target", "must be 3, 4 or 5")
		}
		profile.DailyTarget = *patch.DailyTarget
	}
	if patch.Level != nil {
		if *patch.Level == "" {
			return nil, errors.NewValidationError("level", "must not be empty")
		}
		profile.Level = *patch.Level
	}
	if patch.LearningFocus != nil {
		if *patch.LearningFocus == "" {
			return nil, errors.NewValidationError("learning_focus", "must not be empty")
		}
		profile.LearningFocus = *patch.LearningFocus
	}
	if patch.ReminderEnabled != nil {
		profile.ReminderEnabled = *patch.ReminderEnabled
	}
	if patch.SpeechRequired != nil {
		profile.SpeechRequired = *patch.SpeechRequired
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Upsert(ctx, *profile); err != nil {
		return nil, errors.NewInternalError(err)
	}

	s.events.Record(models.ActivityEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		EventName:  models.EventSettingsUpdated,
		EntityType: "profile",
		EntityID:   userID,
		Payload:    map[string]any{"daily_target": profile.DailyTarget},
		OccurredAt: profile.UpdatedAt,
	})
	return profile, nil
}

func (s *profileService) Reset(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)
	log.Info("resetting user data: user_id=%s", userID)

	if err := s.profiles.ResetUserData(ctx, userID); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}
