package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mbruna/mindvault/internal/db"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
	"github.com/mbruna/mindvault/internal/repository/sqlite"
	"github.com/mbruna/mindvault/internal/testutil"
)

type NoteRepositorySuite struct {
	suite.Suite
	db    *db.DB
	repo  repository.NoteRepository
	graph repository.GraphRepository
}

func (s *NoteRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewNoteRepository(s.db.DB)
	s.graph = sqlite.NewGraphRepository(s.db.DB)
}

func (s *NoteRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *NoteRepositorySuite) insertNote(title, content string) int64 {
	id, err := s.repo.Insert(context.Background(), models.Note{Title: title, Content: content})
	s.Require().NoError(err)
	return id
}

func (s *NoteRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id := s.insertNote("Spaced Repetition", "Review at growing intervals.")
	s.Assert().Greater(id, int64(0))

	note, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(note)
	s.Assert().Equal("Spaced Repetition", note.Title)
	s.Assert().Equal("Review at growing intervals.", note.Content)
}

func (s *NoteRepositorySuite) TestGetMissingReturnsNil() {
	note, err := s.repo.Get(context.Background(), 9999)
	s.Require().NoError(err)
	s.Assert().Nil(note)
}

func (s *NoteRepositorySuite) TestGetByTitle() {
	ctx := context.Background()
	s.insertNote("Active Recall", "Test yourself.")

	note, err := s.repo.GetByTitle(ctx, "Active Recall")
	s.Require().NoError(err)
	s.Require().NotNil(note)
	s.Assert().Equal("Active Recall", note.Title)

	missing, err := s.repo.GetByTitle(ctx, "No Such Note")
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func (s *NoteRepositorySuite) TestUpdate() {
	ctx := context.Background()
	id := s.insertNote("Draft", "first version")

	err := s.repo.Update(ctx, models.Note{ID: id, Title: "Draft", Content: "second version"})
	s.Require().NoError(err)

	note, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(note)
	s.Assert().Equal("second version", note.Content)
}

func (s *NoteRepositorySuite) TestListWithQueryFilter() {
	ctx := context.Background()
	s.insertNote("Go Concurrency", "goroutines and channels")
	s.insertNote("Go Generics", "type parameters")
	s.insertNote("SQL Joins", "inner and outer")

	notes, err := s.repo.List(ctx, models.NoteFilter{Query: "Go"})
	s.Require().NoError(err)
	s.Assert().Len(notes, 2)

	count, err := s.repo.Count(ctx, models.NoteFilter{Query: "Go"})
	s.Require().NoError(err)
	s.Assert().Equal(2, count)

	all, err := s.repo.List(ctx, models.NoteFilter{})
	s.Require().NoError(err)
	s.Assert().Len(all, 3)
}

func (s *NoteRepositorySuite) TestDeleteCascadesLinks() {
	ctx := context.Background()
	sourceID := s.insertNote("Source", "links to [[Target]]")
	targetID := s.insertNote("Target", "")

	err := s.graph.ReplaceLinks(ctx, sourceID, []int64{targetID})
	s.Require().NoError(err)

	err = s.repo.Delete(ctx, sourceID)
	s.Require().NoError(err)

	var count int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM note_links WHERE source_id = ?`, sourceID).Scan(&count)
	s.Require().NoError(err)
	s.Assert().Equal(0, count)
}

func (s *NoteRepositorySuite) TestReplaceLinksAndGraph() {
	ctx := context.Background()
	a := s.insertNote("A", "")
	b := s.insertNote("B", "")
	c := s.insertNote("C", "")

	err := s.graph.ReplaceLinks(ctx, a, []int64{b, c})
	s.Require().NoError(err)

	// Replacing drops the old edge set.
	err = s.graph.ReplaceLinks(ctx, a, []int64{b})
	s.Require().NoError(err)

	graph, err := s.graph.Graph(ctx)
	s.Require().NoError(err)
	s.Assert().Len(graph.Nodes, 3)
	s.Require().Len(graph.Edges, 1)
	s.Assert().Equal(a, graph.Edges[0].SourceID)
	s.Assert().Equal(b, graph.Edges[0].TargetID)
}

func (s *NoteRepositorySuite) TestNeighbors() {
	ctx := context.Background()
	a := s.insertNote("A", "")
	b := s.insertNote("B", "")
	c := s.insertNote("C", "")

	s.Require().NoError(s.graph.ReplaceLinks(ctx, a, []int64{b}))
	s.Require().NoError(s.graph.ReplaceLinks(ctx, c, []int64{a}))

	// Neighbors include both outgoing and incoming links.
	neighbors, err := s.graph.Neighbors(ctx, a)
	s.Require().NoError(err)
	s.Assert().Len(neighbors, 2)
}

func TestNoteRepositorySuite(t *testing.T) {
	suite.Run(t, new(NoteRepositorySuite))
}
