package service

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sals_backend/internal/llm"
	"sals_backend/internal/model"
)

func TestParseQuizPayloadDiagnostic(t *testing.T) {
	pq, qs, err := parseQuizPayload(diagnosticReply)
	require.NoError(t, err)
	assert.Empty(t, pq.Title)
	require.Len(t, qs, 3)
	assert.Equal(t, "BST", qs[0].Concept)
	assert.Equal(t, model.DifficultyHard, qs[2].Difficulty)
}

func TestParseQuizPayloadFinal(t *testing.T) {
	pq, qs, err := parseQuizPayload(finalReply)
	require.NoError(t, err)
	assert.Equal(t, "measure", pq.Description)
	require.Len(t, qs, 3)
	assert.Equal(t, "sift down", qs[0].Explanation)
	assert.Equal(t, model.ChoiceB, qs[1].CorrectAnswer)
}

func TestParseQuizPayloadUnknownDifficultyDefaultsToMedium(t *testing.T) {
	_, qs, err := parseQuizPayload(`[{"question": "q", "options": ["a","b","c","d"], "answer": "a", "concept": "DP", "difficulty": "easy/medium/hard"}]`)
	require.NoError(t, err)
	assert.Equal(t, model.DifficultyMedium, qs[0].Difficulty)
}

func TestParseQuizPayloadRejects(t *testing.T) {
	for name, raw := range map[string]string{
		"answer matches no option": `[{"question": "q", "options": ["a","b","c","d"], "answer": "z", "concept": "DP"}]`,
		"blank concept":            `[{"question": "q", "options": ["a","b","c","d"], "answer": "A", "concept": "   "}]`,
		"blank question":           `[{"question": "", "options": ["a","b","c","d"], "answer": "A", "concept": "DP"}]`,
		"not json":                 "Sure! Here's your quiz.",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := parseQuizPayload(raw)
			var malformed *llm.MalformedResponse
			assert.True(t, errors.As(err, &malformed), "got %v", err)
		})
	}
}

func TestParseLearningPathPayload(t *testing.T) {
	m, err := parseLearningPathPayload("```json\n" + pathReply + "\n```")
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.Equal(t, "Sort", m[1].Concept)

	_, err = parseLearningPathPayload(`{"concept": "Heap"}`)
	var malformed *llm.MalformedResponse
	assert.True(t, errors.As(err, &malformed))
}

func TestSubmittedAnswersUnmarshal(t *testing.T) {
	var a SubmittedAnswers
	require.NoError(t, json.Unmarshal([]byte(`["A", null, "c"]`), &a))
	require.Len(t, a, 3)
	assert.Equal(t, "A", *a[0])
	assert.Nil(t, a[1])

	var indexed SubmittedAnswers
	require.NoError(t, json.Unmarshal([]byte(`[{"question_id": "2", "answer": "B) Queue"}, {"question_id": 0, "answer": "A"}]`), &indexed))
	require.Len(t, indexed, 3)
	assert.Equal(t, "A", *indexed[0])
	assert.Nil(t, indexed[1])
	assert.Equal(t, "B) Queue", *indexed[2])

	assert.Error(t, json.Unmarshal([]byte(`[1]`), &a))
	assert.Error(t, json.Unmarshal([]byte(`[{"question_id": -1, "answer": "A"}]`), &a))
	assert.Error(t, json.Unmarshal([]byte(`[{"question_id": 1000000000, "answer": "A"}]`), &a))
	assert.Error(t, json.Unmarshal([]byte(`[{"question_id": "5000000", "answer": "A"}]`), &a))
	assert.Error(t, json.Unmarshal([]byte("["+strings.Repeat(`"A",`, maxAnswers)+`"A"]`), &a))
}
