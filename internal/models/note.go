package models

import "time"

type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	HTML      string    `json:"html,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NoteFilter struct {
	Query   string
	Limit   int
	Offset  int
	OrderBy string
}

// GraphNode is one note as seen by the knowledge graph.
type GraphNode struct {
	NoteID    int64  `json:"note_id"`
	Title     string `json:"title"`
	LinkCount int    `json:"link_count"`
}

// GraphEdge is a directed wiki-link between two notes.
type GraphEdge struct {
	SourceID int64 `json:"source_id"`
	TargetID int64 `json:"target_id"`
}

type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
