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

type PlanRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.PlanRepository
}

func (s *PlanRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewPlanRepository(s.db)
}

func (s *PlanRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *PlanRepositorySuite) seedProfile(userID string) {
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO profiles (user_id) VALUES (?)`, userID)
	s.Require().NoError(err)
}

func testPlan(userID, planID, planDate string) models.DayPlan {
	return models.DayPlan{
		ID:          planID,
		UserID:      userID,
		PlanDate:    planDate,
		DailyTarget: 3,
		Status:      models.PlanOpen,
		CreatedAt:   time.Now().UTC(),
		Items: []models.PlanItem{
			{
				ID: planID + "-i1", PlanID: planID, UserID: userID,
				LearningItemID: "li-1", ItemType: models.ItemTypeVocab,
				Lemma: "lantern", Meaning: "a portable light",
				RecallStatus: models.RecallPending, SentenceStatus: models.StepPending,
				SpeechStatus: models.StepPending, OrderNum: 1,
			},
			{
				ID: planID + "-i2", PlanID: planID, UserID: userID,
				LearningItemID: "li-2", ItemType: models.ItemTypeIdiom,
				Lemma: "hit the road", Meaning: "to leave",
				RecallStatus: models.RecallPending, SentenceStatus: models.StepPending,
				SpeechStatus: models.StepPending, OrderNum: 2,
			},
			{
				ID: planID + "-i3", PlanID: planID, UserID: userID,
				LearningItemID: "li-3", ItemType: models.ItemTypeVocab,
				Lemma: "sturdy", Meaning: "strongly built",
				RecallStatus: models.RecallPending, SentenceStatus: models.StepPending,
				SpeechStatus: models.StepPending, OrderNum: 3,
			},
		},
	}
}

func (s *PlanRepositorySuite) TestInsertAndGetByDate() {
	ctx := context.Background()
	s.seedProfile("user-1")

	err := s.repo.Insert(ctx, testPlan("user-1", "plan-1", "2026-02-15"))
	s.Require().NoError(err)

	p, err := s.repo.GetByDate(ctx, "user-1", "2026-02-15")
	s.Require().NoError(err)
	s.Require().NotNil(p)
	s.Assert().Equal("plan-1", p.ID)
	s.Assert().Equal(models.PlanOpen, p.Status)
	s.Require().Len(p.Items, 3)

	// Items come back in plan order.
	s.Assert().Equal("lantern", p.Items[0].Lemma)
	s.Assert().Equal("hit the road", p.Items[1].Lemma)
	s.Assert().Equal("sturdy", p.Items[2].Lemma)
}

func (s *PlanRepositorySuite) TestGetByDateMissing() {
	p, err := s.repo.GetByDate(context.Background(), "user-1", "2026-02-15")
	s.Require().NoError(err)
	s.Assert().Nil(p)
}

func (s *PlanRepositorySuite) TestInsertDuplicateDate() {
	ctx := context.Background()
	s.seedProfile("user-1")

	err := s.repo.Insert(ctx, testPlan("user-1", "plan-1", "2026-02-15"))
	s.Require().NoError(err)

	err = s.repo.Insert(ctx, testPlan("user-1", "plan-2", "2026-02-15"))
	s.Assert().ErrorIs(err, repository.ErrDuplicate)

	// A second plan for a different date is fine.
	err = s.repo.Insert(ctx, testPlan("user-1", "plan-3", "2026-02-16"))
	s.Assert().NoError(err)
}

func (s *PlanRepositorySuite) TestUpdateItem() {
	ctx := context.Background()
	s.seedProfile("user-1")
	s.Require().NoError(s.repo.Insert(ctx, testPlan("user-1", "plan-1", "2026-02-15")))

	item, err := s.repo.GetItem(ctx, "user-1", "plan-1", "plan-1-i1")
	s.Require().NoError(err)
	s.Require().NotNil(item)

	item.RecallStatus = models.RecallSuccess
	item.SentenceStatus = models.StepDone
	item.SpeechStatus = models.StepSkipped
	item.IsCompleted = true
	s.Require().NoError(s.repo.UpdateItem(ctx, *item))

	got, err := s.repo.GetItem(ctx, "user-1", "plan-1", "plan-1-i1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(models.RecallSuccess, got.RecallStatus)
	s.Assert().Equal(models.StepDone, got.SentenceStatus)
	s.Assert().Equal(models.StepSkipped, got.SpeechStatus)
	s.Assert().True(got.IsCompleted)
}

func (s *PlanRepositorySuite) TestComplete() {
	ctx := context.Background()
	s.seedProfile("user-1")
	s.Require().NoError(s.repo.Insert(ctx, testPlan("user-1", "plan-1", "2026-02-15")))

	completedAt := time.Now().UTC()
	s.Require().NoError(s.repo.Complete(ctx, "user-1", "plan-1", completedAt))

	p, err := s.repo.GetByID(ctx, "user-1", "plan-1")
	s.Require().NoError(err)
	s.Require().NotNil(p)
	s.Assert().Equal(models.PlanCompleted, p.Status)
	s.Require().NotNil(p.CompletedAt)

	// Completing again matches no open row and reports it, leaving the
	// original timestamp untouched.
	err = s.repo.Complete(ctx, "user-1", "plan-1", completedAt.Add(time.Hour))
	s.Assert().ErrorIs(err, repository.ErrNoRowsUpdated)
	p2, err := s.repo.GetByID(ctx, "user-1", "plan-1")
	s.Require().NoError(err)
	s.Assert().Equal(p.CompletedAt.Unix(), p2.CompletedAt.Unix())
}

func (s *PlanRepositorySuite) TestListCompleted() {
	ctx := context.Background()
	s.seedProfile("user-1")

	for i, date := range []string{"2026-02-13", "2026-02-14", "2026-02-15"} {
		plan := testPlan("user-1", "plan-"+date, date)
		s.Require().NoError(s.repo.Insert(ctx, plan))
		if i < 2 {
			s.Require().NoError(s.repo.Complete(ctx, "user-1", plan.ID, time.Now().UTC()))
		}
	}

	plans, err := s.repo.ListCompleted(ctx, "user-1", 10)
	s.Require().NoError(err)
	s.Require().Len(plans, 2)

	// Newest first, with items loaded.
	s.Assert().Equal("2026-02-14", plans[0].PlanDate)
	s.Assert().Equal("2026-02-13", plans[1].PlanDate)
	s.Assert().Len(plans[0].Items, 3)
}

func (s *PlanRepositorySuite) TestKnownLemmas() {
	ctx := context.Background()
	s.seedProfile("user-1")
	s.Require().NoError(s.repo.Insert(ctx, testPlan("user-1", "plan-1", "2026-02-15")))

	item, err := s.repo.GetItem(ctx, "user-1", "plan-1", "plan-1-i2")
	s.Require().NoError(err)
	item.RecallStatus = models.RecallSuccess
	s.Require().NoError(s.repo.UpdateItem(ctx, *item))

	lemmas, err := s.repo.KnownLemmas(ctx, "user-1")
	s.Require().NoError(err)
	s.Assert().Equal([]string{"hit the road"}, lemmas)
}

func (s *PlanRepositorySuite) TestRecentLemmas() {
	ctx := context.Background()
	s.seedProfile("user-1")
	s.Require().NoError(s.repo.Insert(ctx, testPlan("user-1", "plan-1", "2026-02-14")))
	s.Require().NoError(s.repo.Insert(ctx, testPlan("user-1", "plan-2", "2026-02-15")))

	lemmas, err := s.repo.RecentLemmas(ctx, "user-1", 4)
	s.Require().NoError(err)

	// Newest plan's lemmas first, duplicates collapsed.
	s.Require().NotEmpty(lemmas)
	s.Assert().Equal("lantern", lemmas[0])
	s.Assert().Len(lemmas, 3)
}

func TestPlanRepositorySuite(t *testing.T) {
	suite.Run(t, new(PlanRepositorySuite))
}
