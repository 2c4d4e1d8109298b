package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: note_id=%d", c.NoteID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (note_id, front, back, due_at, interval_days, ease_factor, times_reviewed, times_correct)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, c.NoteID, c.Front, c.Back, c.DueAt, c.IntervalDays, c.EaseFactor, c.TimesReviewed, c.TimesCorrect)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) Update(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%d, interval=%d, ease=%.2f", c.ID, c.IntervalDays, c.EaseFactor)

	_, err := r.db.ExecContext(ctx, `
UPDATE cards
SET front = ?, back = ?, due_at = ?, interval_days = ?, ease_factor = ?, times_reviewed = ?, times_correct = ?
WHERE id = ?
`, c.Front, c.Back, c.DueAt, c.IntervalDays, c.EaseFactor, c.TimesReviewed, c.TimesCorrect, c.ID)
	if err != nil {
		log.Error("failed to update card: %v", err)
	}
	return err
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
	}
	return err
}

const cardWithNoteColumns = `
c.id, c.note_id, c.front, c.back, c.due_at, c.interval_days, c.ease_factor,
c.times_reviewed, c.times_correct, c.created_at, n.title
`

func scanCardWithNote(scanner interface{ Scan(...any) error }) (models.CardWithNote, error) {
	var c models.CardWithNote
	err := scanner.Scan(&c.ID, &c.NoteID, &c.Front, &c.Back, &c.DueAt, &c.IntervalDays,
		&c.EaseFactor, &c.TimesReviewed, &c.TimesCorrect, &c.CreatedAt, &c.NoteTitle)
	return c, err
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.CardWithNote, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	row := r.db.QueryRowContext(ctx, `
SELECT `+cardWithNoteColumns+`
FROM cards c
JOIN notes n ON n.id = c.note_id
WHERE c.id = ?
`, id)
	c, err := scanCardWithNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) ForNote(ctx context.Context, noteID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards for note: note_id=%d", noteID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, note_id, front, back, due_at, interval_days, ease_factor, times_reviewed, times_correct, created_at
FROM cards
WHERE note_id = ?
ORDER BY created_at
`, noteID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.NoteID, &c.Front, &c.Back, &c.DueAt, &c.IntervalDays,
			&c.EaseFactor, &c.TimesReviewed, &c.TimesCorrect, &c.CreatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *cardRepository) DueCards(ctx context.Context, now time.Time, limit int) ([]models.CardWithNote, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching due cards: limit=%d", limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+cardWithNoteColumns+`
FROM cards c
JOIN notes n ON n.id = c.note_id
WHERE c.due_at <= ?
ORDER BY c.due_at
LIMIT ?
`, now, limit)
	if err != nil {
		log.Error("failed to query due cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.CardWithNote
	for rows.Next() {
		c, err := scanCardWithNote(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d due cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) CountDue(ctx context.Context, now time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE due_at <= ?`, now).Scan(&count)
	if err != nil {
		log.Error("failed to count due cards: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *cardRepository) InsertReviewHistory(ctx context.Context, cardID int64, quality, timeSeconds int) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting review history: card_id=%d, quality=%d", cardID, quality)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (card_id, quality, time_seconds) VALUES (?, ?, ?)
`, cardID, quality, timeSeconds)
	if err != nil {
		log.Error("failed to insert review history: %v", err)
	}
	return err
}
