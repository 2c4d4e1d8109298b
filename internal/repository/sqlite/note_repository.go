package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
)

type noteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new NoteRepository implementation
func NewNoteRepository(db *sql.DB) repository.NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Insert(ctx context.Context, n models.Note) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("inserting note: title=%q", n.Title)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO notes (title, content, created_at, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
`, n.Title, n.Content)
	if err != nil {
		log.Error("failed to insert note: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get note id: %v", err)
		return 0, err
	}
	log.Debug("note inserted: id=%d", id)
	return id, nil
}

func (r *noteRepository) Update(ctx context.Context, n models.Note) error {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("updating note: id=%d", n.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE notes
SET title = ?, content = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, n.Title, n.Content, n.ID)
	if err != nil {
		log.Error("failed to update note: %v", err)
	}
	return err
}

func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("deleting note: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete note: %v", err)
	}
	return err
}

func (r *noteRepository) Get(ctx context.Context, id int64) (*models.Note, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": id})
}

func (r *noteRepository) GetByTitle(ctx context.Context, title string) (*models.Note, error) {
	return r.getWhere(ctx, squirrel.Eq{"title": title})
}

func (r *noteRepository) getWhere(ctx context.Context, pred any) (*models.Note, error) {
	log := logger.FromContext(ctx).WithPrefix("note_repo")

	query, args, err := sqlBuilder.
		Select("id", "title", "content", "created_at", "updated_at").
		From("notes").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, err
	}

	var n models.Note
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("note not found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get note: %v", err)
		return nil, err
	}
	return &n, nil
}

func (r *noteRepository) List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("listing notes: query=%q, limit=%d, offset=%d", filter.Query, filter.Limit, filter.Offset)

	query := sqlBuilder.
		Select("id", "title", "content", "created_at", "updated_at").
		From("notes")

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"title": like},
			squirrel.Like{"content": like},
		})
	}
	switch filter.OrderBy {
	case "title":
		query = query.OrderBy("title ASC")
	case "created_at":
		query = query.OrderBy("created_at DESC")
	default:
		query = query.OrderBy("updated_at DESC")
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list notes: %v", err)
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			log.Error("failed to scan note row: %v", err)
			return nil, err
		}
		notes = append(notes, n)
	}
	log.Debug("found %d notes", len(notes))
	return notes, rows.Err()
}

func (r *noteRepository) Count(ctx context.Context, filter models.NoteFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("note_repo")

	query := sqlBuilder.Select("COUNT(*)").From("notes")
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"title": like},
			squirrel.Like{"content": like},
		})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count notes: %v", err)
		return 0, err
	}
	return count, nil
}
