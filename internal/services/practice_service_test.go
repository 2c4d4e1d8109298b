package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbruna/mindvault/internal/evaluator"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
	"github.com/mbruna/mindvault/internal/repository/sqlite"
	"github.com/mbruna/mindvault/internal/services"
	"github.com/mbruna/mindvault/internal/testutil"
)

func setupPracticeService(t *testing.T) (services.PracticeService, repository.ExerciseRepository, []int64) {
	t.Helper()
	ctx := context.Background()

	database := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, database) })

	noteRepo := sqlite.NewNoteRepository(database.DB)
	exerciseRepo := sqlite.NewExerciseRepository(database.DB)

	noteID, err := noteRepo.Insert(ctx, models.Note{Title: "Goroutines", Content: ""})
	require.NoError(t, err)

	var exerciseIDs []int64
	for i := 0; i < 2; i++ {
		id, err := exerciseRepo.Insert(ctx, models.Exercise{
			NoteID: noteID,
			Prompt: "What is a goroutine?",
			Answer: "lightweight thread managed by the runtime scheduler",
		})
		require.NoError(t, err)
		exerciseIDs = append(exerciseIDs, id)
	}

	svc := services.NewPracticeService(exerciseRepo, evaluator.NewHeuristic(), 10)
	return svc, exerciseRepo, exerciseIDs
}

func TestPracticeSession_FullFlow(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupPracticeService(t)

	state, err := svc.StartSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, state.Current)
	assert.Equal(t, 2, state.Progress.Total)

	// A close answer grades as correct.
	state, err = svc.SubmitAnswer(ctx, state.SessionID, state.Current.ID,
		"a lightweight thread managed by the go runtime scheduler")
	require.NoError(t, err)
	require.NotNil(t, state.LastGrade)
	assert.True(t, state.LastGrade.Correct)
	assert.Equal(t, 1, state.Progress.Completed)

	// An unrelated answer grades as incorrect.
	state, err = svc.SubmitAnswer(ctx, state.SessionID, state.Current.ID, "a kind of sandwich")
	require.NoError(t, err)
	assert.False(t, state.LastGrade.Correct)
	assert.True(t, state.Exhausted)

	summary, err := svc.GetSummary(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Progress.Completed)
	assert.Equal(t, 1, summary.Progress.Correct)
	assert.Len(t, summary.Outcomes, 2)

	require.NoError(t, svc.EndSession(ctx, state.SessionID))
}

func TestPracticeSession_PersistsHistory(t *testing.T) {
	ctx := context.Background()
	svc, exerciseRepo, _ := setupPracticeService(t)

	state, err := svc.StartSession(ctx)
	require.NoError(t, err)
	exerciseID := state.Current.ID

	_, err = svc.SubmitAnswer(ctx, state.SessionID, exerciseID,
		"lightweight thread managed by the runtime scheduler")
	require.NoError(t, err)

	err = svc.SetConfidence(ctx, state.SessionID, exerciseID, 0.8)
	require.NoError(t, err)

	// The graded attempt and the late confidence both reached the store.
	ex, err := exerciseRepo.Get(ctx, exerciseID)
	require.NoError(t, err)
	require.NotNil(t, ex)

	summary, err := svc.GetSummary(ctx, state.SessionID)
	require.NoError(t, err)
	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, 0.8, summary.Outcomes[0].Extra["confidence"])
}

func TestPracticeSession_ConfidenceValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, exerciseIDs := setupPracticeService(t)

	state, err := svc.StartSession(ctx)
	require.NoError(t, err)

	assert.Error(t, svc.SetConfidence(ctx, state.SessionID, exerciseIDs[0], 1.5))
	assert.Error(t, svc.SetConfidence(ctx, state.SessionID, exerciseIDs[0], -0.1))

	// Confidence for an ungraded exercise is a no-op.
	assert.NoError(t, svc.SetConfidence(ctx, state.SessionID, exerciseIDs[0], 0.5))
}

func TestPracticeSession_EmptyAnswerRejected(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupPracticeService(t)

	state, err := svc.StartSession(ctx)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, state.SessionID, state.Current.ID, "")
	assert.Error(t, err)
}

func TestPracticeSession_Undo(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupPracticeService(t)

	state, err := svc.StartSession(ctx)
	require.NoError(t, err)
	exerciseID := state.Current.ID

	state, err = svc.SubmitAnswer(ctx, state.SessionID, exerciseID,
		"lightweight thread managed by the runtime scheduler")
	require.NoError(t, err)
	assert.Equal(t, 1, state.Progress.Completed)

	state, err = svc.Undo(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Progress.Completed)
	assert.Nil(t, state.LastGrade)
	require.NotNil(t, state.Current)
	assert.Equal(t, exerciseID, state.Current.ID)
}
