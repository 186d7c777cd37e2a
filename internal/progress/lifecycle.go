package progress

import (
	"sals_backend/internal/concept"
)

// Stage is the position of a topic in the quiz lifecycle. Stages only move forward.
type Stage string

const (
	StageNotStarted             Stage = "not_started"
	StageInitialAttemptRecorded Stage = "initial_attempt_recorded"
	StageLearningPathAssigned   Stage = "learning_path_assigned"
	StageFinalAttemptRecorded   Stage = "final_attempt_recorded"
)

func (s Stage) rank() int {
	switch s {
	case StageInitialAttemptRecorded:
		return 1
	case StageLearningPathAssigned:
		return 2
	case StageFinalAttemptRecorded:
		return 3
	default:
		return 0
	}
}

func (s Stage) Valid() bool {
	switch s {
	case StageNotStarted, StageInitialAttemptRecorded, StageLearningPathAssigned, StageFinalAttemptRecorded:
		return true
	}
	return false
}

// Tracker is the lifecycle state of one topic. It is a plain value: callers
// load it from the record store, apply a transition and save it back.
type Tracker struct {
	Stage            Stage
	InitialAttemptID *uint
	InitialWeak      concept.Set
	LearningPathID   *uint
	FinalAttemptID   *uint
	FinalWeak        concept.Set
	// Percentage is nil until a final attempt has been diffed against an initial one.
	Percentage *float64
}

func NewTracker() *Tracker {
	return &Tracker{Stage: StageNotStarted}
}

func (t *Tracker) advance(to Stage) {
	if to.rank() > t.Stage.rank() {
		t.Stage = to
	}
}

// RecordInitialAttempt stores the diagnostic attempt. The first initial attempt
// wins; later calls leave the tracker untouched and return false.
func (t *Tracker) RecordInitialAttempt(attemptID uint, weak concept.Set) bool {
	if t.InitialAttemptID != nil {
		return false
	}
	id := attemptID
	t.InitialAttemptID = &id
	t.InitialWeak = weak
	t.advance(StageInitialAttemptRecorded)
	return true
}

// AssignLearningPath points the topic at its newest learning path.
func (t *Tracker) AssignLearningPath(pathID uint) {
	id := pathID
	t.LearningPathID = &id
	t.advance(StageLearningPathAssigned)
}

// Outcome is the result of recording a final attempt.
type Outcome struct {
	Report Report
	// Degraded is set when no initial attempt existed. The report was computed
	// against an empty initial set and the percentage stays undefined.
	Degraded bool
	// Err carries ErrUndefinedProgress for degraded outcomes.
	Err error
}

// RecordFinalAttempt diffs the final weak set against the stored initial one.
// Recording out of order is allowed but the outcome is degraded.
func (t *Tracker) RecordFinalAttempt(attemptID uint, finalWeak concept.Set) Outcome {
	id := attemptID
	t.FinalAttemptID = &id
	t.FinalWeak = finalWeak
	t.advance(StageFinalAttemptRecorded)

	if t.InitialAttemptID == nil {
		t.Percentage = nil
		return Outcome{
			Report:   Compute(concept.Set{}, finalWeak),
			Degraded: true,
			Err:      ErrUndefinedProgress,
		}
	}

	r := Compute(t.InitialWeak, finalWeak)
	pct := r.ImprovementPercentage
	t.Percentage = &pct
	return Outcome{Report: r}
}

// ImprovementPercentage returns the stored percentage or ErrUndefinedProgress.
func (t *Tracker) ImprovementPercentage() (float64, error) {
	if t.Percentage == nil || t.InitialAttemptID == nil || t.FinalAttemptID == nil {
		return 0, ErrUndefinedProgress
	}
	return *t.Percentage, nil
}

// Report recomputes the partitions from the stored attempts.
func (t *Tracker) Report() (Report, error) {
	if t.InitialAttemptID == nil || t.FinalAttemptID == nil {
		return Report{}, ErrUndefinedProgress
	}
	return Compute(t.InitialWeak, t.FinalWeak), nil
}
