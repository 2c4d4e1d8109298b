package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mbruna/mindvault/internal/db"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
	"github.com/mbruna/mindvault/internal/repository/sqlite"
	"github.com/mbruna/mindvault/internal/testutil"
)

type ExerciseRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.ExerciseRepository
}

func (s *ExerciseRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewExerciseRepository(s.db.DB)
}

func (s *ExerciseRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ExerciseRepositorySuite) setupNote(title string) int64 {
	res, err := s.db.ExecContext(context.Background(), `INSERT INTO notes (title, content) VALUES (?, ?)`, title, "content")
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *ExerciseRepositorySuite) insertExercise(noteID int64, prompt string) int64 {
	id, err := s.repo.Insert(context.Background(), models.Exercise{
		NoteID:    noteID,
		Prompt:    prompt,
		Answer:    "reference answer",
		CreatedAt: time.Now(),
	})
	s.Require().NoError(err)
	return id
}

func (s *ExerciseRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	noteID := s.setupNote("Raft")

	id := s.insertExercise(noteID, "Explain leader election")
	s.Assert().Greater(id, int64(0))

	ex, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(ex)
	s.Assert().Equal("Explain leader election", ex.Prompt)
	s.Assert().Equal("Raft", ex.NoteTitle)
}

func (s *ExerciseRepositorySuite) TestGetMissingReturnsNil() {
	ex, err := s.repo.Get(context.Background(), 9999)
	s.Require().NoError(err)
	s.Assert().Nil(ex)
}

func (s *ExerciseRepositorySuite) TestSampleHonorsLimit() {
	ctx := context.Background()
	noteID := s.setupNote("Sampling")

	for i := 0; i < 5; i++ {
		s.insertExercise(noteID, "prompt")
	}

	exercises, err := s.repo.Sample(ctx, 3)
	s.Require().NoError(err)
	s.Assert().Len(exercises, 3)

	all, err := s.repo.Sample(ctx, 10)
	s.Require().NoError(err)
	s.Assert().Len(all, 5)
}

func (s *ExerciseRepositorySuite) TestPracticeHistoryAndConfidence() {
	ctx := context.Background()
	noteID := s.setupNote("History")
	exID := s.insertExercise(noteID, "prompt")

	recordID, err := s.repo.InsertPracticeHistory(ctx, models.PracticeRecord{
		ExerciseID:  exID,
		Answer:      "my answer",
		Correct:     true,
		Quality:     3,
		Feedback:    "good",
		TimeSeconds: 12,
		PracticedAt: time.Now(),
	})
	s.Require().NoError(err)
	s.Assert().Greater(recordID, int64(0))

	// Confidence starts out unset.
	var confidence *float64
	err = s.db.QueryRowContext(ctx, `SELECT confidence FROM practice_history WHERE id = ?`, recordID).Scan(&confidence)
	s.Require().NoError(err)
	s.Assert().Nil(confidence)

	err = s.repo.UpdatePracticeConfidence(ctx, recordID, 0.75)
	s.Require().NoError(err)

	err = s.db.QueryRowContext(ctx, `SELECT confidence FROM practice_history WHERE id = ?`, recordID).Scan(&confidence)
	s.Require().NoError(err)
	s.Require().NotNil(confidence)
	s.Assert().Equal(0.75, *confidence)
}

func (s *ExerciseRepositorySuite) TestDeleteCascadesHistory() {
	ctx := context.Background()
	noteID := s.setupNote("Cascade")
	exID := s.insertExercise(noteID, "prompt")

	_, err := s.repo.InsertPracticeHistory(ctx, models.PracticeRecord{
		ExerciseID:  exID,
		Answer:      "a",
		Correct:     false,
		Quality:     1,
		PracticedAt: time.Now(),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, exID))

	var count int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM practice_history WHERE exercise_id = ?`, exID).Scan(&count)
	s.Require().NoError(err)
	s.Assert().Equal(0, count)
}

func TestExerciseRepositorySuite(t *testing.T) {
	suite.Run(t, new(ExerciseRepositorySuite))
}
