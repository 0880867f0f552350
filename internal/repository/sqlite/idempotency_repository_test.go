package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/hyerin/tinywords/internal/repository"
	"github.com/hyerin/tinywords/internal/repository/sqlite"
	"github.com/hyerin/tinywords/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type IdempotencyRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.IdempotencyRepository
}

func (s *IdempotencyRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewIdempotencyRepository(s.db)
}

func (s *IdempotencyRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *IdempotencyRepositorySuite) TestPutAndGet() {
	ctx := context.Background()
	key := "POST:/api/v1/reviews/rev-1/submit:req-1"

	err := s.repo.Put(ctx, key, "user-1", []byte(`{"status":"done"}`), time.Hour)
	s.Require().NoError(err)

	response, ok, err := s.repo.Get(ctx, key)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Assert().JSONEq(`{"status":"done"}`, string(response))
}

func (s *IdempotencyRepositorySuite) TestGetMissing() {
	_, ok, err := s.repo.Get(context.Background(), "no-such-key")
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func (s *IdempotencyRepositorySuite) TestExpiredKeyIsMiss() {
	ctx := context.Background()
	key := "POST:/api/v1/day-plans/plan-1/complete:req-2"

	err := s.repo.Put(ctx, key, "user-1", []byte(`{}`), -time.Minute)
	s.Require().NoError(err)

	_, ok, err := s.repo.Get(ctx, key)
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func (s *IdempotencyRepositorySuite) TestPurgeExpired() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Put(ctx, "key-live", "user-1", []byte(`{}`), time.Hour))
	s.Require().NoError(s.repo.Put(ctx, "key-stale", "user-1", []byte(`{}`), -time.Minute))

	purged, err := s.repo.PurgeExpired(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(int64(1), purged)

	_, ok, err := s.repo.Get(ctx, "key-live")
	s.Require().NoError(err)
	s.Assert().True(ok)
}

func TestIdempotencyRepositorySuite(t *testing.T) {
	suite.Run(t, new(IdempotencyRepositorySuite))
}
