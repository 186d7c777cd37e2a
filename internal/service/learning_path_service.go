package service

import (
	"context"
	"fmt"
	"time"

	"sals_backend/internal/concept"
	"sals_backend/internal/grader"
	"sals_backend/internal/llm"
	"sals_backend/internal/model"
	"sals_backend/internal/prompts"
	"sals_backend/internal/repository"
	"sals_backend/pkg/logger"

	"go.uber.org/zap"
)

type LearningPathService struct {
	PathRepo *repository.LearningPathRepository
	QuizRepo *repository.QuizRepository
	Progress *ProgressService
	Cache    *CacheService
	LLM      llm.Completer
}

func NewLearningPathService(
	pathRepo *repository.LearningPathRepository,
	quizRepo *repository.QuizRepository,
	progressService *ProgressService,
	cache *CacheService,
	completer llm.Completer,
) *LearningPathService {
	return &LearningPathService{
		PathRepo: pathRepo,
		QuizRepo: quizRepo,
		Progress: progressService,
		Cache:    cache,
		LLM:      completer,
	}
}

// Create builds a learning path for the weak concepts of an attempt. Weak
// concepts given in the request take precedence over the attempt's own.
func (s *LearningPathService) Create(ctx context.Context, req LearningPathRequest) (*LearningPathResult, error) {
	attempt, err := s.QuizRepo.FindAttemptByID(req.QuizAttemptID)
	if err != nil {
		return nil, err
	}

	weak, err := concept.FromStrings(req.WeakConcepts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", grader.ErrInvalidInput, err)
	}
	if weak.IsEmpty() {
		weak = attempt.WeakConcepts
	}

	materials, cached, err := s.materials(ctx, weak)
	if err != nil {
		return nil, err
	}

	path := &model.LearningPath{
		TopicID:       attempt.Quiz.TopicID,
		QuizAttemptID: attempt.ID,
		WeakConcepts:  weak,
		AllConcepts:   attempt.Quiz.Concepts(),
		Materials:     materials,
	}
	if err := s.PathRepo.Create(path); err != nil {
		return nil, err
	}

	if err := s.Progress.AssignLearningPath(ctx, attempt.Quiz.Topic, path); err != nil {
		return nil, err
	}

	logger.Log.Info("Learning path created",
		zap.Uint("learning_path_id", path.ID),
		zap.Uint("quiz_attempt_id", attempt.ID),
		zap.Bool("cached", cached))

	res := pathResult(path)
	res.Cached = cached
	return res, nil
}

// materials returns guidance for every weak concept, from cache when possible.
func (s *LearningPathService) materials(ctx context.Context, weak concept.Set) (model.Materials, bool, error) {
	if weak.IsEmpty() {
		return model.Materials{}, false, nil
	}
	if m, ok := s.Cache.GetMaterials(ctx, weak); ok {
		return m, true, nil
	}

	raw, err := s.LLM.Complete(ctx, prompts.LearningPath(weak.Names()))
	if err != nil {
		return nil, false, err
	}
	m, err := parseLearningPathPayload(raw)
	if err != nil {
		logger.Log.Warn("Learning path reply rejected", zap.Error(err))
		return nil, false, err
	}

	s.Cache.SetMaterials(ctx, weak, m)
	return m, false, nil
}

func (s *LearningPathService) Get(id uint) (*LearningPathResult, error) {
	path, err := s.PathRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return pathResult(path), nil
}

// Complete marks a learning path as worked through.
func (s *LearningPathService) Complete(id uint) (*LearningPathResult, error) {
	if _, err := s.PathRepo.FindByID(id); err != nil {
		return nil, err
	}
	if err := s.PathRepo.MarkCompleted(id, time.Now()); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func pathResult(path *model.LearningPath) *LearningPathResult {
	materials := path.Materials
	if materials == nil {
		materials = model.Materials{}
	}
	return &LearningPathResult{
		LearningPathID: path.ID,
		LearningPath:   materials,
		WeakConcepts:   path.WeakConcepts.Names(),
		AllConcepts:    path.AllConcepts.Names(),
		Completed:      path.Completed,
	}
}
