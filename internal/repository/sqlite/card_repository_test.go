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

type CardRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.CardRepository
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db.DB)
}

func (s *CardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CardRepositorySuite) setupNote(title string) int64 {
	ctx := context.Background()

	res, err := s.db.ExecContext(ctx, `INSERT INTO notes (title, content) VALUES (?, ?)`, title, "content")
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *CardRepositorySuite) insertCard(noteID int64, front string, dueAt time.Time) int64 {
	id, err := s.repo.Insert(context.Background(), models.Card{
		NoteID:     noteID,
		Front:      front,
		Back:       "back",
		DueAt:      dueAt,
		EaseFactor: 2.5,
		CreatedAt:  time.Now(),
	})
	s.Require().NoError(err)
	return id
}

func (s *CardRepositorySuite) TestInsertAndUpdate() {
	ctx := context.Background()
	noteID := s.setupNote("TCP Handshake")

	id := s.insertCard(noteID, "How many packets in the handshake?", time.Now())
	s.Assert().Greater(id, int64(0))

	card, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(card)
	s.Assert().Equal("TCP Handshake", card.NoteTitle)

	card.IntervalDays = 6
	card.EaseFactor = 2.6
	card.TimesReviewed = 1
	card.TimesCorrect = 1
	card.DueAt = time.Now().Add(6 * 24 * time.Hour)

	err = s.repo.Update(ctx, card.Card)
	s.Require().NoError(err)

	var interval int
	var ease float64
	err = s.db.QueryRowContext(ctx, `SELECT interval_days, ease_factor FROM cards WHERE id = ?`, id).Scan(&interval, &ease)
	s.Require().NoError(err)
	s.Assert().Equal(6, interval)
	s.Assert().Equal(2.6, ease)
}

func (s *CardRepositorySuite) TestGetMissingReturnsNil() {
	card, err := s.repo.Get(context.Background(), 9999)
	s.Require().NoError(err)
	s.Assert().Nil(card)
}

func (s *CardRepositorySuite) TestDueCards() {
	ctx := context.Background()
	noteID := s.setupNote("Sorting")
	now := time.Now()

	dueID := s.insertCard(noteID, "due", now.Add(-1*time.Hour))
	s.insertCard(noteID, "later", now.Add(24*time.Hour))

	cards, err := s.repo.DueCards(ctx, now, 10)
	s.Require().NoError(err)
	s.Require().Len(cards, 1)
	s.Assert().Equal(dueID, cards[0].ID)
	s.Assert().Equal("Sorting", cards[0].NoteTitle)

	count, err := s.repo.CountDue(ctx, now)
	s.Require().NoError(err)
	s.Assert().Equal(1, count)
}

func (s *CardRepositorySuite) TestDueCardsOrderAndLimit() {
	ctx := context.Background()
	noteID := s.setupNote("Ordering")
	now := time.Now()

	newer := s.insertCard(noteID, "newer", now.Add(-1*time.Hour))
	older := s.insertCard(noteID, "older", now.Add(-2*time.Hour))
	s.insertCard(noteID, "third", now.Add(-30*time.Minute))

	cards, err := s.repo.DueCards(ctx, now, 2)
	s.Require().NoError(err)
	s.Require().Len(cards, 2)
	s.Assert().Equal(older, cards[0].ID)
	s.Assert().Equal(newer, cards[1].ID)
}

func (s *CardRepositorySuite) TestForNote() {
	ctx := context.Background()
	noteA := s.setupNote("A")
	noteB := s.setupNote("B")

	s.insertCard(noteA, "a1", time.Now())
	s.insertCard(noteA, "a2", time.Now())
	s.insertCard(noteB, "b1", time.Now())

	cards, err := s.repo.ForNote(ctx, noteA)
	s.Require().NoError(err)
	s.Assert().Len(cards, 2)
}

func (s *CardRepositorySuite) TestInsertReviewHistory() {
	ctx := context.Background()
	noteID := s.setupNote("History")
	cardID := s.insertCard(noteID, "front", time.Now())

	err := s.repo.InsertReviewHistory(ctx, cardID, 3, 7)
	s.Require().NoError(err)

	var quality, seconds int
	err = s.db.QueryRowContext(ctx, `SELECT quality, time_seconds FROM review_history WHERE card_id = ?`, cardID).Scan(&quality, &seconds)
	s.Require().NoError(err)
	s.Assert().Equal(3, quality)
	s.Assert().Equal(7, seconds)
}

func (s *CardRepositorySuite) TestDeleteCascadesHistory() {
	ctx := context.Background()
	noteID := s.setupNote("Cascade")
	cardID := s.insertCard(noteID, "front", time.Now())

	s.Require().NoError(s.repo.InsertReviewHistory(ctx, cardID, 4, 2))
	s.Require().NoError(s.repo.Delete(ctx, cardID))

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM review_history WHERE card_id = ?`, cardID).Scan(&count)
	s.Require().NoError(err)
	s.Assert().Equal(0, count)
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
