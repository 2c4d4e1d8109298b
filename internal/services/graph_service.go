package services

import (
	"context"

	"github.com/mbruna/mindvault/internal/errors"
	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/markdown"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
)

// GraphService handles the knowledge graph built from note wiki-links
type GraphService interface {
	GetGraph(ctx context.Context) (*models.Graph, error)
	GetNeighbors(ctx context.Context, noteID int64) ([]models.GraphNode, error)
	ReindexNote(ctx context.Context, noteID int64) error
}

type graphService struct {
	noteRepo  repository.NoteRepository
	graphRepo repository.GraphRepository
}

// NewGraphService creates a new GraphService
func NewGraphService(noteRepo repository.NoteRepository, graphRepo repository.GraphRepository) GraphService {
	return &graphService{noteRepo: noteRepo, graphRepo: graphRepo}
}

func (s *graphService) GetGraph(ctx context.Context) (*models.Graph, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting knowledge graph")

	graph, err := s.graphRepo.Graph(ctx)
	if err != nil {
		log.Error("failed to load graph: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return graph, nil
}

func (s *graphService) GetNeighbors(ctx context.Context, noteID int64) ([]models.GraphNode, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting neighbors: note_id=%d", noteID)

	note, err := s.noteRepo.Get(ctx, noteID)
	if err != nil {
		log.Error("failed to get note: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if note == nil {
		return nil, errors.NewNotFoundError("note", noteID)
	}

	nodes, err := s.graphRepo.Neighbors(ctx, noteID)
	if err != nil {
		log.Error("failed to load neighbors: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return nodes, nil
}

// ReindexNote rebuilds the outgoing links of one note from its current
// content. Links to titles that do not resolve to a note are skipped; they
// become edges once the target note is created and the source is reindexed.
func (s *graphService) ReindexNote(ctx context.Context, noteID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("reindexing note links: note_id=%d", noteID)

	note, err := s.noteRepo.Get(ctx, noteID)
	if err != nil {
		return err
	}
	if note == nil {
		log.Debug("note gone before reindex, skipping: note_id=%d", noteID)
		return nil
	}

	var targetIDs []int64
	for _, title := range markdown.ExtractLinks(note.Content) {
		target, err := s.noteRepo.GetByTitle(ctx, title)
		if err != nil {
			return err
		}
		if target == nil {
			log.Debug("unresolved wiki-link %q in note %d", title, noteID)
			continue
		}
		targetIDs = append(targetIDs, target.ID)
	}

	if err := s.graphRepo.ReplaceLinks(ctx, noteID, targetIDs); err != nil {
		return err
	}
	log.Debug("note reindexed: note_id=%d, links=%d", noteID, len(targetIDs))
	return nil
}
