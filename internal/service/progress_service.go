package service

import (
	"context"
	"errors"
	"time"

	"sals_backend/internal/concept"
	"sals_backend/internal/event"
	"sals_backend/internal/model"
	"sals_backend/internal/progress"
	"sals_backend/internal/repository"
	"sals_backend/pkg/logger"
	"sals_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressService drives the per topic lifecycle tracker and persists it.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	QuizRepo     *repository.QuizRepository
	TopicRepo    *repository.TopicRepository
	Storage      *StorageService
	Events       event.Publisher
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	quizRepo *repository.QuizRepository,
	topicRepo *repository.TopicRepository,
	storage *StorageService,
	events event.Publisher,
) *ProgressService {
	if events == nil {
		events = event.NoopPublisher{}
	}
	return &ProgressService{
		ProgressRepo: progressRepo,
		QuizRepo:     quizRepo,
		TopicRepo:    topicRepo,
		Storage:      storage,
		Events:       events,
	}
}

// load returns the topic record and a tracker seeded with the weak set of its
// initial attempt.
func (s *ProgressService) load(topicID uint) (*model.Progress, *progress.Tracker, error) {
	p, err := s.ProgressRepo.GetOrCreate(topicID)
	if err != nil {
		return nil, nil, err
	}
	initialWeak, err := s.attemptWeak(p.InitialQuizAttemptID)
	if err != nil {
		return nil, nil, err
	}
	finalWeak, err := s.attemptWeak(p.FinalQuizAttemptID)
	if err != nil {
		return nil, nil, err
	}
	return p, p.Tracker(initialWeak, finalWeak), nil
}

func (s *ProgressService) attemptWeak(id *uint) (concept.Set, error) {
	if id == nil {
		return concept.Set{}, nil
	}
	a, err := s.QuizRepo.FindAttemptByID(*id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return concept.Set{}, nil
	}
	if err != nil {
		return concept.Set{}, err
	}
	return a.WeakConcepts, nil
}

// InitialWeakConcepts returns the weak set of the topic's diagnostic attempt,
// empty when none was recorded.
func (s *ProgressService) InitialWeakConcepts(topicID uint) (concept.Set, error) {
	_, tr, err := s.load(topicID)
	if err != nil {
		return concept.Set{}, err
	}
	return tr.InitialWeak, nil
}

// RecordInitialAttempt stores the first diagnostic attempt of a topic. Later
// initial attempts are kept as attempts but do not replace the reference.
func (s *ProgressService) RecordInitialAttempt(ctx context.Context, topic *model.Topic, attempt *model.QuizAttempt) error {
	p, tr, err := s.load(topic.ID)
	if err != nil {
		return err
	}
	if !tr.RecordInitialAttempt(attempt.ID, attempt.WeakConcepts) {
		logger.Log.Info("Initial attempt already recorded",
			zap.String("topic", topic.Name),
			zap.Uint("attempt_id", attempt.ID))
		return nil
	}
	p.Apply(tr)
	if err := s.ProgressRepo.Save(p); err != nil {
		return err
	}

	s.publish(ctx, event.TypeInitialRecorded, event.InitialRecorded{
		TopicID:      topic.ID,
		Topic:        topic.Name,
		AttemptID:    attempt.ID,
		WeakConcepts: attempt.WeakConcepts.Names(),
	})
	return nil
}

// AssignLearningPath points the topic at its newest learning path.
func (s *ProgressService) AssignLearningPath(ctx context.Context, topic *model.Topic, path *model.LearningPath) error {
	p, tr, err := s.load(topic.ID)
	if err != nil {
		return err
	}
	tr.AssignLearningPath(path.ID)
	p.Apply(tr)
	if err := s.ProgressRepo.Save(p); err != nil {
		return err
	}

	s.publish(ctx, event.TypePathAssigned, event.PathAssigned{
		TopicID:        topic.ID,
		Topic:          topic.Name,
		LearningPathID: path.ID,
		WeakConcepts:   path.WeakConcepts.Names(),
	})
	return nil
}

// RecordFinalAttempt diffs the final attempt against the initial one and
// stores the result. Without an initial attempt the outcome is degraded and
// the percentage stays unset.
func (s *ProgressService) RecordFinalAttempt(ctx context.Context, topic *model.Topic, attempt *model.QuizAttempt) (progress.Outcome, *model.Progress, error) {
	p, tr, err := s.load(topic.ID)
	if err != nil {
		return progress.Outcome{}, nil, err
	}

	out := tr.RecordFinalAttempt(attempt.ID, attempt.WeakConcepts)
	p.Apply(tr)
	p.SetReport(out.Report)

	if out.Degraded {
		logger.Log.Warn("Final attempt recorded without an initial attempt",
			zap.String("topic", topic.Name),
			zap.Uint("attempt_id", attempt.ID))
	} else {
		monitoring.ObserveImprovement(out.Report.ImprovementPercentage)
	}

	p.ReportURL = s.archive(ctx, topic, p, tr, out)

	if err := s.ProgressRepo.Save(p); err != nil {
		return progress.Outcome{}, nil, err
	}

	s.publish(ctx, event.TypeFinalRecorded, event.FinalRecorded{
		TopicID:               topic.ID,
		Topic:                 topic.Name,
		AttemptID:             attempt.ID,
		ImprovementPercentage: p.ProgressPercentage,
		Improved:              out.Report.Improved.Names(),
		StillWeak:             out.Report.StillWeak.Names(),
		NewlyWeak:             out.Report.NewlyWeak.Names(),
		Degraded:              out.Degraded,
	})
	return out, p, nil
}

type progressReport struct {
	Topic                string             `json:"topic"`
	InitialQuizAttemptID *uint              `json:"initial_quiz_attempt_id"`
	FinalQuizAttemptID   *uint              `json:"final_quiz_attempt_id"`
	InitialWeakConcepts  []string           `json:"initial_weak_concepts"`
	FinalWeakConcepts    []string           `json:"final_weak_concepts"`
	Metrics              ImprovementMetrics `json:"improvement_metrics"`
	Degraded             bool               `json:"degraded"`
	GeneratedAt          time.Time          `json:"generated_at"`
}

// archive writes the report to object storage. Failures only cost the URL.
func (s *ProgressService) archive(ctx context.Context, topic *model.Topic, p *model.Progress, tr *progress.Tracker, out progress.Outcome) string {
	if s.Storage == nil {
		return p.ReportURL
	}
	url, err := s.Storage.ArchiveReport(ctx, topic.Name, progressReport{
		Topic:                topic.Name,
		InitialQuizAttemptID: tr.InitialAttemptID,
		FinalQuizAttemptID:   tr.FinalAttemptID,
		InitialWeakConcepts:  tr.InitialWeak.Names(),
		FinalWeakConcepts:    tr.FinalWeak.Names(),
		Metrics:              newImprovementMetrics(out.Report, tr.Percentage),
		Degraded:             out.Degraded,
		GeneratedAt:          time.Now().UTC(),
	})
	if err != nil {
		logger.Log.Warn("Failed to archive progress report", zap.String("topic", topic.Name), zap.Error(err))
		return p.ReportURL
	}
	return url
}

func (s *ProgressService) publish(ctx context.Context, eventType string, payload interface{}) {
	if err := s.Events.Publish(ctx, eventType, payload); err != nil {
		logger.Log.Warn("Failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

// GetByTopic returns the progress of the named topic.
func (s *ProgressService) GetByTopic(name string) (*ProgressView, error) {
	topic, err := s.TopicRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	p, err := s.ProgressRepo.FindByTopic(topic.ID)
	if err != nil {
		return nil, err
	}
	return s.view(p)
}

func (s *ProgressService) List() ([]ProgressView, error) {
	ps, err := s.ProgressRepo.List()
	if err != nil {
		return nil, err
	}
	views := make([]ProgressView, 0, len(ps))
	for i := range ps {
		v, err := s.view(&ps[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *ProgressService) view(p *model.Progress) (*ProgressView, error) {
	initialWeak, err := s.attemptWeak(p.InitialQuizAttemptID)
	if err != nil {
		return nil, err
	}
	v := &ProgressView{
		Stage:                p.Stage,
		InitialQuizAttemptID: p.InitialQuizAttemptID,
		LearningPathID:       p.LearningPathID,
		FinalQuizAttemptID:   p.FinalQuizAttemptID,
		ProgressPercentage:   p.ProgressPercentage,
		InitialWeakConcepts:  initialWeak.Names(),
		ImprovedConcepts:     p.ImprovedConcepts.Names(),
		StillWeakConcepts:    p.StillWeakConcepts.Names(),
		NewWeakConcepts:      p.NewWeakConcepts.Names(),
		ReportURL:            p.ReportURL,
	}
	if p.Topic != nil {
		v.Topic = p.Topic.Name
	}
	return v, nil
}
