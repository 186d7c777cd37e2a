package model

import (
	"sals_backend/internal/concept"
	"sals_backend/internal/progress"
)

// Progress is the lifecycle record of one topic.
//
// swagger:model Progress
type Progress struct {
	BaseModel
	TopicID              uint           `gorm:"uniqueIndex;not null" json:"topicId"`
	Topic                *Topic         `json:"topic,omitempty"`
	Stage                progress.Stage `gorm:"size:40;default:'not_started'" json:"stage"`
	InitialQuizAttemptID *uint          `json:"initialQuizAttemptId"`
	LearningPathID       *uint          `json:"learningPathId"`
	FinalQuizAttemptID   *uint          `json:"finalQuizAttemptId"`
	ProgressPercentage   *float64       `json:"progressPercentage"`
	ImprovedConcepts     concept.Set    `json:"improvedConcepts"`
	StillWeakConcepts    concept.Set    `json:"stillWeakConcepts"`
	NewWeakConcepts      concept.Set    `json:"newWeakConcepts"`
	ReportURL            string         `gorm:"size:512" json:"reportUrl,omitempty"`
}

func (Progress) TableName() string {
	return "progress"
}

// Tracker builds the lifecycle tracker from the record. The weak sets of the
// referenced attempts are not stored here and must be passed in.
func (p *Progress) Tracker(initialWeak, finalWeak concept.Set) *progress.Tracker {
	stage := p.Stage
	if !stage.Valid() {
		stage = progress.StageNotStarted
	}
	return &progress.Tracker{
		Stage:            stage,
		InitialAttemptID: p.InitialQuizAttemptID,
		InitialWeak:      initialWeak,
		LearningPathID:   p.LearningPathID,
		FinalAttemptID:   p.FinalQuizAttemptID,
		FinalWeak:        finalWeak,
		Percentage:       p.ProgressPercentage,
	}
}

// Apply copies the tracker state back onto the record.
func (p *Progress) Apply(t *progress.Tracker) {
	p.Stage = t.Stage
	p.InitialQuizAttemptID = t.InitialAttemptID
	p.LearningPathID = t.LearningPathID
	p.FinalQuizAttemptID = t.FinalAttemptID
	p.ProgressPercentage = t.Percentage
}

// SetReport stores the partitions of the last final attempt.
func (p *Progress) SetReport(r progress.Report) {
	p.ImprovedConcepts = r.Improved
	p.StillWeakConcepts = r.StillWeak
	p.NewWeakConcepts = r.NewlyWeak
}
