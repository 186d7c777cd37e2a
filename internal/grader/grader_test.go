package grader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sals_backend/internal/model"
)

func q(concept string, answer model.Choice) model.Question {
	return model.Question{
		Text:          "Q about " + concept,
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: answer,
		Concept:       concept,
		Difficulty:    model.DifficultyMedium,
	}
}

func TestGradeScenario(t *testing.T) {
	questions := []model.Question{q("BST", model.ChoiceA), q("Heap", model.ChoiceC)}

	weak, err := Grade(questions, []model.Choice{"A", "D"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Heap"}, weak.Names())
}

func TestGradeAllCorrectIsEmpty(t *testing.T) {
	questions := []model.Question{q("BST", "A"), q("Heap", "C"), q("Sort", "B")}

	weak, err := Grade(questions, []model.Choice{"A", "c", " b "}, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, weak.IsEmpty())
}

func TestGradeDeduplicatesConcepts(t *testing.T) {
	questions := []model.Question{q("Heap", "A"), q("heap ", "B"), q("Graph", "C")}

	weak, err := Grade(questions, []model.Choice{"B", "C", "C"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Heap"}, weak.Names())
}

func TestGradeAbsentAnswersAreWrong(t *testing.T) {
	questions := []model.Question{q("BST", "A"), q("Heap", "C")}

	weak, err := Grade(questions, []model.Choice{model.NoAnswer, "C"}, Options{CountMissingAsWrong: false})
	require.NoError(t, err)
	assert.Equal(t, []string{"BST"}, weak.Names())
}

func TestGradeMissingTrailingAnswers(t *testing.T) {
	questions := []model.Question{q("BST", "A"), q("Heap", "C"), q("Trie", "D")}
	submitted := []model.Choice{"A"}

	t.Run("counted as wrong", func(t *testing.T) {
		r, err := GradeDetailed(questions, submitted, Options{CountMissingAsWrong: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"Heap", "Trie"}, r.Weak.Names())
		assert.Equal(t, 3, r.Graded)
		assert.InDelta(t, 100.0/3, r.Score(), 1e-9)
	})

	t.Run("skipped", func(t *testing.T) {
		r, err := GradeDetailed(questions, submitted, Options{CountMissingAsWrong: false})
		require.NoError(t, err)
		assert.True(t, r.Weak.IsEmpty())
		assert.Equal(t, 1, r.Graded)
		assert.Equal(t, []bool{true}, r.Correct)
		assert.Equal(t, 100.0, r.Score())
	})
}

func TestGradeInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		questions []model.Question
		submitted []model.Choice
	}{
		{"more answers than questions", []model.Question{q("BST", "A")}, []model.Choice{"A", "B"}},
		{"empty concept", []model.Question{q("  ", "A")}, []model.Choice{"A"}},
		{"bad answer letter", []model.Question{q("BST", "A")}, []model.Choice{"E"}},
		{"bad answer key", []model.Question{q("BST", "Z")}, []model.Choice{"A"}},
		{"missing answer key", []model.Question{q("BST", model.NoAnswer)}, []model.Choice{"A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Grade(tt.questions, tt.submitted, DefaultOptions())
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	r, err := GradeDetailed(nil, nil, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, r.Weak.IsEmpty())
	assert.Equal(t, 0.0, r.Score())
}

func TestGradeWeakIsSubsetOfQuizConcepts(t *testing.T) {
	questions := []model.Question{q("BST", "A"), q("Heap", "B"), q("Sort", "C"), q("Graph", "D")}
	all := []string{}
	for _, qq := range questions {
		all = append(all, qq.Concept)
	}

	weak, err := Grade(questions, []model.Choice{"B", "B", "A"}, DefaultOptions())
	require.NoError(t, err)
	for _, name := range weak.Names() {
		assert.Contains(t, all, name)
	}
	assert.Equal(t, []string{"BST", "Graph", "Sort"}, weak.Names())
}
