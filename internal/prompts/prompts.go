// Package prompts renders the instructions sent to the completion service.
package prompts

import (
	"bytes"
	"strings"
	"text/template"

	"sals_backend/internal/progress"
)

var funcs = template.FuncMap{
	"join": func(items []string) string { return strings.Join(items, ", ") },
	"list": func(items []string) string {
		if len(items) == 0 {
			return "[]"
		}
		return "[" + strings.Join(quoteAll(items), ", ") + "]"
	},
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = "'" + s + "'"
	}
	return out
}

var quizTemplate = template.Must(template.New("quiz").Funcs(funcs).Parse(`You are an expert DSA instructor.

Generate a 10-question diagnostic quiz on the topic: "{{.Topic}}".
Rules:
- 3 easy, 4 medium, 3 hard MCQs
- Cover a wide range of sub-concepts
- Use clear, concise questions and 4 options (A–D)
- Each must include: question, options, correct answer (A/B/C/D), difficulty, and concept

Return output in *pure* JSON format (no explanation, no markdown), like:
[
  {
    "question": "...",
    "options": ["A", "B", "C", "D"],
    "answer": "B",
    "difficulty": "medium",
    "concept": "Topological Sort"
  },
  ...
]
`))

var learningPathTemplate = template.Must(template.New("learning_path").Funcs(funcs).Parse(`You are an expert tutor guiding a student through weaknesses in DSA.

For each of these concepts: {{join .Concepts}}
Do the following:
1. Give a brief 2–3 line explanation (not definition, a teaching tip)
2. Suggest a high-quality online resource (GFG, YouTube, docs)

Return as a pure JSON array:
[
  {
    "concept": "Dynamic Programming",
    "explanation": "...",
    "resource": "https://..."
  },
  ...
]
No markdown. No extra text.
`))

var finalQuizTemplate = template.Must(template.New("final_quiz").Funcs(funcs).Parse(`Generate a final assessment quiz for the topic "{{.Topic}}" that focuses on reinforcement learning and measuring improvement.

The student previously struggled with these concepts: {{list .InitialWeak}}
They have been working on improving these areas: {{list .Weak}}

Create a quiz that:
1. Primarily tests the previously weak concepts to measure improvement
2. Includes some new, related concepts to assess broader understanding
3. Has questions of varying difficulty levels
4. Focuses on practical application rather than just theory

Format the response as a JSON object with this structure:
{
    "title": "Final Assessment Quiz - {{.Topic}}",
    "description": "This quiz measures your improvement and understanding after the learning path",
    "questions": [
        {
            "id": 1,
            "question": "Question text",
            "options": ["A", "B", "C", "D"],
            "correct_answer": "A/B/C/D",
            "explanation": "Detailed explanation of the correct answer",
            "concept_tested": "Specific concept being tested",
            "difficulty": "easy/medium/hard",
            "is_reinforcement": true
        }
    ]
}

Set is_reinforcement to true only when the question tests a previously weak concept.
Include at least 5 questions, with at least 3 focusing on previously weak concepts.
Make sure the questions are challenging but fair, and provide clear explanations.
Return pure JSON, no markdown.
`))

var feedbackTemplate = template.Must(template.New("feedback").Funcs(funcs).Parse(`Based on the following learning journey:
Initial weak concepts: {{list .InitialWeak}}
Final weak concepts: {{list .FinalWeak}}
Improved concepts: {{list .Improved}}
Still weak concepts: {{list .StillWeak}}
New weak concepts: {{list .NewlyWeak}}

Provide a detailed analysis of the student's progress and specific recommendations for further improvement.
Focus on:
1. Areas of significant improvement
2. Concepts that still need work
3. New areas that emerged as weak
4. Specific study recommendations
`))

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	// The templates are fixed and the data is plain strings, so execution
	// cannot fail.
	_ = t.Execute(&buf, data)
	return buf.String()
}

// Quiz asks for a ten question diagnostic quiz on topic.
func Quiz(topic string) string {
	return render(quizTemplate, struct{ Topic string }{topic})
}

// LearningPath asks for one teaching tip and resource per concept.
func LearningPath(concepts []string) string {
	return render(learningPathTemplate, struct{ Concepts []string }{concepts})
}

// FinalQuiz asks for a reinforcement quiz seeded with the initial weak set.
func FinalQuiz(topic string, weak, initialWeak []string) string {
	return render(finalQuizTemplate, struct {
		Topic       string
		Weak        []string
		InitialWeak []string
	}{topic, weak, initialWeak})
}

// Feedback asks for a written review of the change between two attempts.
func Feedback(initialWeak, finalWeak []string, r progress.Report) string {
	return render(feedbackTemplate, struct {
		InitialWeak, FinalWeak         []string
		Improved, StillWeak, NewlyWeak []string
	}{
		InitialWeak: initialWeak,
		FinalWeak:   finalWeak,
		Improved:    r.Improved.Names(),
		StillWeak:   r.StillWeak.Names(),
		NewlyWeak:   r.NewlyWeak.Names(),
	})
}
