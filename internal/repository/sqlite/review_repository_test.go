package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/hyerin/tinywords/internal/models"
	"github.com/hyerin/tinywords/internal/repository"
	"github.com/hyerin/tinywords/internal/repository/sqlite"
	"github.com/hyerin/tinywords/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type ReviewRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ReviewRepository
}

func (s *ReviewRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewReviewRepository(s.db)

	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO profiles (user_id) VALUES (?)`, "user-1")
	s.Require().NoError(err)
}

func (s *ReviewRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func testTask(id, itemID string, stage models.ReviewStage, dueDate string) models.ReviewTask {
	return models.ReviewTask{
		ID:             id,
		UserID:         "user-1",
		LearningItemID: itemID,
		DueDate:        dueDate,
		Stage:          stage,
		Status:         models.ReviewQueued,
		CreatedAt:      time.Now().UTC(),
	}
}

func (s *ReviewRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Insert(ctx, testTask("rev-1", "li-1", models.StageD1, "2026-02-16")))

	task, err := s.repo.Get(ctx, "user-1", "rev-1")
	s.Require().NoError(err)
	s.Require().NotNil(task)
	s.Assert().Equal(models.StageD1, task.Stage)
	s.Assert().Equal("2026-02-16", task.DueDate)
	s.Assert().Equal(models.ReviewQueued, task.Status)
	s.Assert().Nil(task.CompletedAt)
}

func (s *ReviewRepositorySuite) TestGetMissing() {
	task, err := s.repo.Get(context.Background(), "user-1", "nope")
	s.Require().NoError(err)
	s.Assert().Nil(task)
}

func (s *ReviewRepositorySuite) TestQueuedDedup() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Insert(ctx, testTask("rev-1", "li-1", models.StageD1, "2026-02-16")))

	// Second queued task for the same (item, stage) is rejected.
	err := s.repo.Insert(ctx, testTask("rev-2", "li-1", models.StageD1, "2026-02-17"))
	s.Assert().ErrorIs(err, repository.ErrDuplicate)

	// A different stage for the same item is fine.
	s.Assert().NoError(s.repo.Insert(ctx, testTask("rev-3", "li-1", models.StageD3, "2026-02-18")))

	// Once the first task is done, a new queued one can exist again.
	done := testTask("rev-1", "li-1", models.StageD1, "2026-02-16")
	done.Status = models.ReviewDone
	now := time.Now().UTC()
	done.CompletedAt = &now
	s.Require().NoError(s.repo.Update(ctx, done))

	s.Assert().NoError(s.repo.Insert(ctx, testTask("rev-4", "li-1", models.StageD1, "2026-02-20")))
}

func (s *ReviewRepositorySuite) TestInsertCheckViolationIsNotDuplicate() {
	ctx := context.Background()

	// A bad stage string trips the CHECK constraint; it must surface as
	// a real error, not be swallowed as a queued duplicate.
	err := s.repo.Insert(ctx, testTask("rev-1", "li-1", models.ReviewStage("d99"), "2026-02-16"))
	s.Require().Error(err)
	s.Assert().NotErrorIs(err, repository.ErrDuplicate)
}

func (s *ReviewRepositorySuite) TestExistsQueued() {
	ctx := context.Background()

	exists, err := s.repo.ExistsQueued(ctx, "user-1", "li-1", models.StageD3)
	s.Require().NoError(err)
	s.Assert().False(exists)

	s.Require().NoError(s.repo.Insert(ctx, testTask("rev-1", "li-1", models.StageD3, "2026-02-18")))

	exists, err = s.repo.ExistsQueued(ctx, "user-1", "li-1", models.StageD3)
	s.Require().NoError(err)
	s.Assert().True(exists)
}

func (s *ReviewRepositorySuite) TestListQueuedSkipsDone() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Insert(ctx, testTask("rev-1", "li-1", models.StageD1, "2026-02-16")))
	s.Require().NoError(s.repo.Insert(ctx, testTask("rev-2", "li-2", models.StageD1, "2026-02-16")))

	done := testTask("rev-2", "li-2", models.StageD1, "2026-02-16")
	done.Status = models.ReviewDone
	now := time.Now().UTC()
	done.CompletedAt = &now
	s.Require().NoError(s.repo.Update(ctx, done))

	tasks, err := s.repo.ListQueued(ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Assert().Equal("rev-1", tasks[0].ID)
}

func (s *ReviewRepositorySuite) TestCounts() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Insert(ctx, testTask("rev-1", "li-1", models.StageD1, "2026-02-14")))
	s.Require().NoError(s.repo.Insert(ctx, testTask("rev-2", "li-2", models.StageD1, "2026-02-15")))
	s.Require().NoError(s.repo.Insert(ctx, testTask("rev-3", "li-3", models.StageD1, "2026-02-20")))

	dueBy, err := s.repo.CountQueuedDueBy(ctx, "user-1", "2026-02-15")
	s.Require().NoError(err)
	s.Assert().Equal(2, dueBy)

	done := testTask("rev-1", "li-1", models.StageD1, "2026-02-14")
	done.Status = models.ReviewDone
	completedAt := time.Date(2026, 2, 15, 9, 30, 0, 0, time.UTC)
	done.CompletedAt = &completedAt
	s.Require().NoError(s.repo.Update(ctx, done))

	doneToday, err := s.repo.CountDoneOn(ctx, "user-1", "2026-02-15")
	s.Require().NoError(err)
	s.Assert().Equal(1, doneToday)
}

func TestReviewRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReviewRepositorySuite))
}
