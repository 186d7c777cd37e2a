package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare", `["BST"]`, `["BST"]`},
		{"padded", "  \n[\"BST\"]\n ", `["BST"]`},
		{"json fence", "```json\n[\"BST\"]\n```", `["BST"]`},
		{"plain fence", "```\n[\"BST\"]\n```", `["BST"]`},
		{"inline json fence", "```json[\"BST\"]```", `["BST"]`},
		{"prose around fence", "Here you go:\n```json\n{\"a\":1}\n```\nGood luck!", `{"a":1}`},
		{"think block", "<think>\nthe user wants a list\n</think>\n```json\n[1,2]\n```", `[1,2]`},
		{"unclosed fence", "```json\n[1,2]", `[1,2]`},
		{"fence inside bare json", "[\"run ```go\\nx := 1\\n``` first\"]", "[\"run ```go\\nx := 1\\n``` first\"]"},
		{"fence inside fenced json", "```json\n[\"```py\\nprint(1)\\n```\"]\n```", "[\"```py\\nprint(1)\\n```\"]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.raw))
		})
	}
}

func TestUnpack(t *testing.T) {
	var got []string
	require.NoError(t, Unpack("```json\n[\"Binary Search\", \"Dynamic Programming\"]\n```", &got))
	assert.Equal(t, []string{"Binary Search", "Dynamic Programming"}, got)
}

func TestUnpackCodeSnippetInQuestion(t *testing.T) {
	raw := `[{"question": "What does this print? ` + "```go\\nfmt.Println(1)\\n```" + `", "options": ["0", "1", "2", "panic"], "answer": "B", "concept": "Printing"}]`
	var got []map[string]any
	require.NoError(t, Unpack(raw, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "What does this print? ```go\nfmt.Println(1)\n```", got[0]["question"])

	require.NoError(t, UnpackValidated("```json\n"+raw+"\n```", QuizSchema, &got))
	assert.Equal(t, "B", got[0]["answer"])
}

func TestUnpackMalformed(t *testing.T) {
	for _, raw := range []string{"", "```json\n```", "Sorry, I cannot help with that.", `{"a":`} {
		var v any
		err := Unpack(raw, &v)
		require.Error(t, err, raw)

		var malformed *MalformedResponse
		require.True(t, errors.As(err, &malformed), raw)
		assert.Equal(t, raw, malformed.Raw)
		assert.True(t, IsUpstreamError(err))
	}
}

func TestUnpackValidatedQuiz(t *testing.T) {
	diagnostic := "```json\n" + `[
  {"question": "Which traversal uses a queue?", "options": ["DFS", "BFS", "Inorder", "Preorder"],
   "answer": "B", "difficulty": "easy", "concept": "Breadth First Search"}
]` + "\n```"
	var arr []map[string]any
	require.NoError(t, UnpackValidated(diagnostic, QuizSchema, &arr))
	assert.Len(t, arr, 1)

	final := `{"title": "Final Assessment Quiz - Graphs", "questions": [
  {"id": 1, "question": "Dijkstra fails with?", "options": ["A) cycles", "B) negative edges", "C) trees", "D) DAGs"],
   "correct_answer": "B", "concept_tested": "Dijkstra", "difficulty": "medium", "is_reinforcement": true}
]}`
	var obj map[string]any
	require.NoError(t, UnpackValidated(final, QuizSchema, &obj))
	assert.Equal(t, "Final Assessment Quiz - Graphs", obj["title"])
}

func TestUnpackValidatedRejectsShape(t *testing.T) {
	tests := map[string]string{
		"three options":  `[{"question": "q", "options": ["a","b","c"], "answer": "A", "concept": "c"}]`,
		"no answer":      `[{"question": "q", "options": ["a","b","c","d"], "concept": "c"}]`,
		"no concept":     `[{"question": "q", "options": ["a","b","c","d"], "answer": "A"}]`,
		"empty quiz":     `[]`,
		"wrong top type": `"quiz"`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			var v any
			err := UnpackValidated(raw, QuizSchema, &v)
			var malformed *MalformedResponse
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, raw, malformed.Raw)
		})
	}
}

func TestUnpackValidatedLearningPath(t *testing.T) {
	raw := `[{"concept": "Heap", "explanation": "Think of a priority queue.", "resource": "https://example.org/heap"}]`
	var v []map[string]string
	require.NoError(t, UnpackValidated(raw, LearningPathSchema, &v))
	assert.Equal(t, "Heap", v[0]["concept"])

	err := UnpackValidated(`[{"explanation": "x"}]`, LearningPathSchema, &v)
	var malformed *MalformedResponse
	assert.True(t, errors.As(err, &malformed))
}

func TestStripReasoning(t *testing.T) {
	raw := "<think>draft</think>\n\nGreat progress on BST.\n```go\nx := 1\n```"
	assert.Equal(t, "Great progress on BST.\n```go\nx := 1\n```", StripReasoning(raw))
}
