package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sals_backend/internal/concept"
)

func TestParseChoice(t *testing.T) {
	for in, want := range map[string]Choice{"a": ChoiceA, " B ": ChoiceB, "d": ChoiceD, "": NoAnswer, "  ": NoAnswer} {
		got, err := ParseChoice(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"E", "AB", "B) Heap"} {
		_, err := ParseChoice(in)
		assert.ErrorIs(t, err, ErrInvalidChoice, in)
	}
}

func TestParseAnswerText(t *testing.T) {
	for in, want := range map[string]Choice{"B) Binary Search": ChoiceB, "c. Heap": ChoiceC, "A": ChoiceA, "D:": ChoiceD} {
		got, err := ParseAnswerText(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseAnswerText("Binary Search")
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestResolveChoice(t *testing.T) {
	options := []string{"A) Stack", "B) Queue", "C) Heap", "D) Trie"}

	got, err := ResolveChoice("B", options)
	require.NoError(t, err)
	assert.Equal(t, ChoiceB, got)

	got, err = ResolveChoice("Heap", options)
	require.NoError(t, err)
	assert.Equal(t, ChoiceC, got)

	got, err = ResolveChoice("D) Trie", options)
	require.NoError(t, err)
	assert.Equal(t, ChoiceD, got)

	got, err = ResolveChoice("queue", []string{"Stack", "Queue", "Heap", "Trie"})
	require.NoError(t, err)
	assert.Equal(t, ChoiceB, got)

	_, err = ResolveChoice("Linked List", options)
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestParseAnswers(t *testing.T) {
	questions := []Question{
		{Options: []string{"Stack", "Queue", "Heap", "Set"}},
		{Options: []string{"A) O(1)", "B) O(log n)", "C) O(n)", "D) O(n^2)"}},
		{Options: []string{"a", "b", "c", "d"}},
	}
	b, stack, blank := "B) Queue", "Stack", "  "
	got, err := ParseAnswers([]*string{&b, nil, &blank}, questions)
	require.NoError(t, err)
	assert.Equal(t, Answers{ChoiceB, NoAnswer, NoAnswer}, got)

	got, err = ParseAnswers([]*string{&stack, strPtr("o(log n)")}, questions)
	require.NoError(t, err)
	assert.Equal(t, Answers{ChoiceA, ChoiceB}, got)

	_, err = ParseAnswers([]*string{strPtr("maybe")}, questions)
	assert.ErrorIs(t, err, ErrInvalidChoice)

	_, err = ParseAnswers([]*string{strPtr("A"), strPtr("B"), strPtr("C"), strPtr("Stack")}, questions)
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func strPtr(s string) *string { return &s }

func TestAnswersJSON(t *testing.T) {
	b, err := json.Marshal(Answers{ChoiceA, NoAnswer})
	require.NoError(t, err)
	assert.JSONEq(t, `["A", null]`, string(b))

	var back Answers
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, Answers{ChoiceA, NoAnswer}, back)
}

func TestQuizConcepts(t *testing.T) {
	q := Quiz{Questions: Questions{{Concept: "BST"}, {Concept: "bst "}, {Concept: "Heap"}}}
	assert.True(t, q.Concepts().Equal(concept.NewSet("BST", "Heap")))
}
