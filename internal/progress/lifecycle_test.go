package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sals_backend/internal/concept"
)

func TestTrackerHappyPath(t *testing.T) {
	tr := NewTracker()
	assert.Equal(t, StageNotStarted, tr.Stage)

	_, err := tr.ImprovementPercentage()
	assert.ErrorIs(t, err, ErrUndefinedProgress)

	assert.True(t, tr.RecordInitialAttempt(1, concept.NewSet("BST", "Heap", "Sort")))
	assert.Equal(t, StageInitialAttemptRecorded, tr.Stage)

	tr.AssignLearningPath(7)
	assert.Equal(t, StageLearningPathAssigned, tr.Stage)
	require.NotNil(t, tr.LearningPathID)
	assert.Equal(t, uint(7), *tr.LearningPathID)

	out := tr.RecordFinalAttempt(2, concept.NewSet("Heap", "Graph"))
	assert.False(t, out.Degraded)
	assert.NoError(t, out.Err)
	assert.Equal(t, 50.0, out.Report.ImprovementPercentage)
	assert.Equal(t, StageFinalAttemptRecorded, tr.Stage)

	pct, err := tr.ImprovementPercentage()
	require.NoError(t, err)
	assert.Equal(t, 50.0, pct)

	r, err := tr.Report()
	require.NoError(t, err)
	assert.Equal(t, []string{"Graph"}, r.NewlyWeak.Names())
}

func TestTrackerFirstInitialAttemptWins(t *testing.T) {
	tr := NewTracker()
	assert.True(t, tr.RecordInitialAttempt(1, concept.NewSet("BST")))
	assert.False(t, tr.RecordInitialAttempt(2, concept.NewSet("Heap")))

	assert.Equal(t, uint(1), *tr.InitialAttemptID)
	assert.Equal(t, []string{"BST"}, tr.InitialWeak.Names())
}

func TestTrackerNeverMovesBackward(t *testing.T) {
	tr := NewTracker()
	tr.RecordInitialAttempt(1, concept.NewSet("BST"))
	tr.RecordFinalAttempt(2, concept.NewSet())
	assert.Equal(t, StageFinalAttemptRecorded, tr.Stage)

	tr.AssignLearningPath(9)
	assert.Equal(t, StageFinalAttemptRecorded, tr.Stage)
	assert.Equal(t, uint(9), *tr.LearningPathID)
}

func TestTrackerFinalWithoutInitialIsDegraded(t *testing.T) {
	tr := NewTracker()
	out := tr.RecordFinalAttempt(5, concept.NewSet("Heap"))

	assert.True(t, out.Degraded)
	assert.ErrorIs(t, out.Err, ErrUndefinedProgress)
	assert.Equal(t, []string{"Heap"}, out.Report.NewlyWeak.Names())
	assert.True(t, out.Report.Improved.IsEmpty())
	assert.Nil(t, tr.Percentage)
	assert.Equal(t, StageFinalAttemptRecorded, tr.Stage)

	_, err := tr.ImprovementPercentage()
	assert.ErrorIs(t, err, ErrUndefinedProgress)
	_, err = tr.Report()
	assert.ErrorIs(t, err, ErrUndefinedProgress)
}

func TestTrackerZeroIsDistinctFromUnset(t *testing.T) {
	tr := NewTracker()
	tr.RecordInitialAttempt(1, concept.NewSet())
	tr.RecordFinalAttempt(2, concept.NewSet())

	require.NotNil(t, tr.Percentage)
	pct, err := tr.ImprovementPercentage()
	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)
}

func TestStageValid(t *testing.T) {
	assert.True(t, StageLearningPathAssigned.Valid())
	assert.False(t, Stage("finished").Valid())
}
