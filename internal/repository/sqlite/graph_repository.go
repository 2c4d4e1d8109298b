package sqlite

import (
	"context"
	"database/sql"

	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
)

type graphRepository struct {
	db *sql.DB
}

// NewGraphRepository creates a new GraphRepository implementation
func NewGraphRepository(db *sql.DB) repository.GraphRepository {
	return &graphRepository{db: db}
}

func (r *graphRepository) ReplaceLinks(ctx context.Context, sourceID int64, targetIDs []int64) error {
	log := logger.FromContext(ctx).WithPrefix("graph_repo")
	log.Debug("replacing links: source_id=%d, targets=%d", sourceID, len(targetIDs))

	return tx(ctx, r.db, func(t *sql.Tx) error {
		if _, err := t.ExecContext(ctx, `DELETE FROM note_links WHERE source_id = ?`, sourceID); err != nil {
			return err
		}
		for _, targetID := range targetIDs {
			if targetID == sourceID {
				continue // self-links carry no graph information
			}
			if _, err := t.ExecContext(ctx, `
INSERT OR IGNORE INTO note_links (source_id, target_id) VALUES (?, ?)
`, sourceID, targetID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *graphRepository) Graph(ctx context.Context) (*models.Graph, error) {
	log := logger.FromContext(ctx).WithPrefix("graph_repo")
	log.Debug("loading full graph")

	rows, err := r.db.QueryContext(ctx, `
SELECT n.id, n.title,
       (SELECT COUNT(*) FROM note_links l WHERE l.source_id = n.id OR l.target_id = n.id) AS link_count
FROM notes n
ORDER BY n.title
`)
	if err != nil {
		log.Error("failed to load graph nodes: %v", err)
		return nil, err
	}
	defer rows.Close()

	graph := &models.Graph{}
	for rows.Next() {
		var node models.GraphNode
		if err := rows.Scan(&node.NoteID, &node.Title, &node.LinkCount); err != nil {
			return nil, err
		}
		graph.Nodes = append(graph.Nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	edgeRows, err := r.db.QueryContext(ctx, `SELECT source_id, target_id FROM note_links`)
	if err != nil {
		log.Error("failed to load graph edges: %v", err)
		return nil, err
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var edge models.GraphEdge
		if err := edgeRows.Scan(&edge.SourceID, &edge.TargetID); err != nil {
			return nil, err
		}
		graph.Edges = append(graph.Edges, edge)
	}
	log.Debug("graph loaded: nodes=%d, edges=%d", len(graph.Nodes), len(graph.Edges))
	return graph, edgeRows.Err()
}

func (r *graphRepository) Neighbors(ctx context.Context, noteID int64) ([]models.GraphNode, error) {
	log := logger.FromContext(ctx).WithPrefix("graph_repo")
	log.Debug("loading neighbors: note_id=%d", noteID)

	rows, err := r.db.QueryContext(ctx, `
SELECT n.id, n.title,
       (SELECT COUNT(*) FROM note_links l WHERE l.source_id = n.id OR l.target_id = n.id) AS link_count
FROM notes n
WHERE n.id IN (
    SELECT target_id FROM note_links WHERE source_id = ?
    UNION
    SELECT source_id FROM note_links WHERE target_id = ?
)
ORDER BY n.title
`, noteID, noteID)
	if err != nil {
		log.Error("failed to load neighbors: %v", err)
		return nil, err
	}
	defer rows.Close()

	var nodes []models.GraphNode
	for rows.Next() {
		var node models.GraphNode
		if err := rows.Scan(&node.NoteID, &node.Title, &node.LinkCount); err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}
