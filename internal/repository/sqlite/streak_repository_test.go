package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
	"github.com/hyerin/tinywords/internal/repository/sqlite"
	"github.com/hyerin/tinywords/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type StreakRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.StreakRepository
}

func (s *StreakRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStreakRepository(s.db)

	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO profiles (user_id) VALUES (?)`, "user-1")
	s.Require().NoError(err)
}

func (s *StreakRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StreakRepositorySuite) TestGetZeroState() {
	state, err := s.repo.Get(context.Background(), "user-1")
	s.Require().NoError(err)
	s.Assert().Equal("user-1", state.UserID)
	s.Assert().Equal(0, state.CurrentStreak)
	s.Assert().Equal(0, state.LongestStreak)
	s.Assert().Nil(state.LastCompletedDate)
}

func (s *StreakRepositorySuite) TestUpsert() {
	ctx := context.Background()
	date := "2026-02-15"

	err := s.repo.Upsert(ctx, models.StreakState{
		UserID:            "user-1",
		CurrentStreak:     1,
		LongestStreak:     1,
		LastCompletedDate: &date,
	})
	s.Require().NoError(err)

	state, err := s.repo.Get(ctx, "user-1")
	s.Require().NoError(err)
	s.Assert().Equal(1, state.CurrentStreak)
	s.Require().NotNil(state.LastCompletedDate)
	s.Assert().Equal(date, *state.LastCompletedDate)

	// Second upsert overwrites in place.
	next := "2026-02-16"
	err = s.repo.Upsert(ctx, models.StreakState{
		UserID:            "user-1",
		CurrentStreak:     2,
		LongestStreak:     5,
		LastCompletedDate: &next,
	})
	s.Require().NoError(err)

	state, err = s.repo.Get(ctx, "user-1")
	s.Require().NoError(err)
	s.Assert().Equal(2, state.CurrentStreak)
	s.Assert().Equal(5, state.LongestStreak)
	s.Assert().Equal(next, *state.LastCompletedDate)
}

func TestStreakRepositorySuite(t *testing.T) {
	suite.Run(t, new(StreakRepositorySuite))
}
