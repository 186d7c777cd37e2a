package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"sals_backend/internal/concept"
	"sals_backend/internal/config"
	"sals_backend/internal/grader"
	"sals_backend/internal/llm"
	"sals_backend/internal/model"
	"sals_backend/internal/progress"
	"sals_backend/internal/prompts"
	"sals_backend/internal/repository"
	"sals_backend/pkg/logger"
	"sals_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const (
	degradedWarning = "no initial attempt was recorded for this topic, so the improvement percentage is undefined"
	feedbackWarning = "detailed feedback is unavailable"
)

type QuizService struct {
	TopicRepo *repository.TopicRepository
	QuizRepo  *repository.QuizRepository
	Progress  *ProgressService
	LLM       llm.Completer

	mu  sync.RWMutex
	cfg config.QuizConfig
}

func NewQuizService(
	topicRepo *repository.TopicRepository,
	quizRepo *repository.QuizRepository,
	progressService *ProgressService,
	completer llm.Completer,
	cfg config.QuizConfig,
) *QuizService {
	return &QuizService{
		TopicRepo: topicRepo,
		QuizRepo:  quizRepo,
		Progress:  progressService,
		LLM:       completer,
		cfg:       cfg,
	}
}

// SetQuizConfig swaps the grading and generation policy at runtime.
func (s *QuizService) SetQuizConfig(cfg config.QuizConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *QuizService) quizConfig() config.QuizConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *QuizService) topicName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.quizConfig().DefaultTopic
	}
	return name
}

// GenerateQuiz asks the LLM for a diagnostic quiz and stores it under topic,
// creating the topic on first use.
func (s *QuizService) GenerateQuiz(ctx context.Context, topicName string) (*GeneratedQuiz, error) {
	name := s.topicName(topicName)
	topic, err := s.TopicRepo.GetOrCreate(name)
	if err != nil {
		return nil, err
	}

	raw, err := s.LLM.Complete(ctx, prompts.Quiz(name))
	if err != nil {
		return nil, err
	}
	payload, questions, err := parseQuizPayload(raw)
	if err != nil {
		logger.Log.Warn("Quiz reply rejected", zap.String("topic", name), zap.Error(err))
		return nil, err
	}

	title := payload.Title
	if title == "" {
		title = "Diagnostic Quiz - " + name
	}
	quiz := &model.Quiz{
		TopicID:     topic.ID,
		Title:       title,
		Description: payload.Description,
		Questions:   questions,
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}

	logger.Log.Info("Quiz generated",
		zap.String("topic", name),
		zap.Uint("quiz_id", quiz.ID),
		zap.Int("questions", len(questions)))
	return generated(quiz, nil), nil
}

func generated(quiz *model.Quiz, initialWeak []string) *GeneratedQuiz {
	return &GeneratedQuiz{
		Quiz:               quiz,
		QuizID:             quiz.ID,
		Title:              quiz.Title,
		Description:        quiz.Description,
		Questions:          quiz.Questions,
		InitialWeakConcept: initialWeak,
	}
}

// grade parses the answer sheet and grades it against the quiz.
func (s *QuizService) grade(quiz *model.Quiz, raw SubmittedAnswers) (model.Answers, grader.Result, error) {
	if len(raw) > len(quiz.Questions) {
		return nil, grader.Result{}, fmt.Errorf("%w: %d answers for %d questions", grader.ErrInvalidInput, len(raw), len(quiz.Questions))
	}
	answers, err := model.ParseAnswers(raw, quiz.Questions)
	if err != nil {
		return nil, grader.Result{}, fmt.Errorf("%w: %w", grader.ErrInvalidInput, err)
	}
	opts := grader.Options{CountMissingAsWrong: s.quizConfig().CountMissingAsWrong}
	res, err := grader.GradeDetailed(quiz.Questions, answers, opts)
	if err != nil {
		return nil, grader.Result{}, err
	}
	return answers, res, nil
}

func (s *QuizService) saveAttempt(quiz *model.Quiz, answers model.Answers, res grader.Result) (*model.QuizAttempt, error) {
	attempt := &model.QuizAttempt{
		QuizID:       quiz.ID,
		UserAnswers:  answers,
		Score:        res.Score(),
		WeakConcepts: res.Weak,
		CompletedAt:  time.Now(),
	}
	if err := s.QuizRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// SubmitQuiz grades a diagnostic attempt and records it as the topic's
// initial attempt if none exists yet.
func (s *QuizService) SubmitQuiz(ctx context.Context, req SubmitQuizRequest) (*AttemptResult, error) {
	quiz, err := s.QuizRepo.FindByID(req.QuizID)
	if err != nil {
		return nil, err
	}
	if quiz.IsFinalQuiz {
		return nil, fmt.Errorf("%w: quiz %d is a final quiz", grader.ErrInvalidInput, quiz.ID)
	}

	answers, res, err := s.grade(quiz, req.UserAnswers)
	if err != nil {
		return nil, err
	}
	attempt, err := s.saveAttempt(quiz, answers, res)
	if err != nil {
		return nil, err
	}
	monitoring.ObserveAttempt("initial")

	if err := s.Progress.RecordInitialAttempt(ctx, quiz.Topic, attempt); err != nil {
		return nil, err
	}

	return &AttemptResult{
		QuizAttemptID: attempt.ID,
		QuizID:        quiz.ID,
		UserAnswers:   answers,
		WeakConcepts:  res.Weak.Names(),
		Score:         attempt.Score,
		Correct:       res.Correct,
	}, nil
}

// GenerateFinalQuiz builds a reinforcement quiz for an existing topic. With no
// weak concepts in the request the initial weak set is used.
func (s *QuizService) GenerateFinalQuiz(ctx context.Context, req FinalQuizRequest) (*GeneratedQuiz, error) {
	name := s.topicName(req.Topic)
	topic, err := s.TopicRepo.FindByName(name)
	if err != nil {
		return nil, err
	}

	weak, err := concept.FromStrings(req.WeakConcepts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", grader.ErrInvalidInput, err)
	}
	initialWeak, err := s.Progress.InitialWeakConcepts(topic.ID)
	if err != nil {
		return nil, err
	}
	if weak.IsEmpty() {
		weak = initialWeak
	}

	raw, err := s.LLM.Complete(ctx, prompts.FinalQuiz(name, weak.Names(), initialWeak.Names()))
	if err != nil {
		return nil, err
	}
	payload, questions, err := parseQuizPayload(raw)
	if err != nil {
		logger.Log.Warn("Final quiz reply rejected", zap.String("topic", name), zap.Error(err))
		return nil, err
	}

	title := payload.Title
	if title == "" {
		title = "Final Assessment Quiz - " + name
	}
	quiz := &model.Quiz{
		TopicID:     topic.ID,
		Title:       title,
		Description: payload.Description,
		Questions:   questions,
		IsFinalQuiz: true,
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}

	logger.Log.Info("Final quiz generated",
		zap.String("topic", name),
		zap.Uint("quiz_id", quiz.ID),
		zap.Strings("weak_concepts", weak.Names()))
	return generated(quiz, initialWeak.Names()), nil
}

// SubmitFinalQuiz grades a final attempt and measures improvement against the
// topic's initial attempt.
func (s *QuizService) SubmitFinalQuiz(ctx context.Context, req SubmitQuizRequest) (*FinalResult, error) {
	quiz, err := s.QuizRepo.FindByID(req.QuizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsFinalQuiz {
		return nil, fmt.Errorf("%w: quiz %d is not a final quiz", grader.ErrInvalidInput, quiz.ID)
	}

	answers, res, err := s.grade(quiz, req.UserAnswers)
	if err != nil {
		return nil, err
	}
	attempt, err := s.saveAttempt(quiz, answers, res)
	if err != nil {
		return nil, err
	}
	monitoring.ObserveAttempt("final")

	out, p, err := s.Progress.RecordFinalAttempt(ctx, quiz.Topic, attempt)
	if err != nil {
		return nil, err
	}

	result := &FinalResult{
		Message:            "Final quiz submitted successfully",
		QuizAttemptID:      attempt.ID,
		Score:              attempt.Score,
		WeakConcepts:       res.Weak.Names(),
		ImprovementMetrics: newImprovementMetrics(out.Report, p.ProgressPercentage),
		Degraded:           out.Degraded,
		ReportURL:          p.ReportURL,
	}

	var warnings []string
	if out.Degraded {
		warnings = append(warnings, degradedWarning)
	}
	if s.quizConfig().DetailedFeedback {
		initialWeak, err := s.Progress.InitialWeakConcepts(quiz.TopicID)
		if err == nil {
			result.DetailedFeedback, err = s.feedback(ctx, initialWeak.Names(), res.Weak.Names(), out)
		}
		if err != nil {
			logger.Log.Warn("Feedback generation failed", zap.Uint("quiz_attempt_id", attempt.ID), zap.Error(err))
			warnings = append(warnings, feedbackWarning)
		}
	}
	result.Warning = strings.Join(warnings, "; ")
	return result, nil
}

func (s *QuizService) feedback(ctx context.Context, initialWeak, finalWeak []string, out progress.Outcome) (string, error) {
	raw, err := s.LLM.Complete(ctx, prompts.Feedback(initialWeak, finalWeak, out.Report))
	if err != nil {
		return "", err
	}
	return llm.StripReasoning(raw), nil
}

// GetAttempt returns a stored attempt.
func (s *QuizService) GetAttempt(id uint) (*AttemptResult, error) {
	attempt, err := s.QuizRepo.FindAttemptByID(id)
	if err != nil {
		return nil, err
	}
	return &AttemptResult{
		QuizAttemptID: attempt.ID,
		QuizID:        attempt.QuizID,
		UserAnswers:   attempt.UserAnswers,
		WeakConcepts:  attempt.WeakConcepts.Names(),
		Score:         attempt.Score,
	}, nil
}
