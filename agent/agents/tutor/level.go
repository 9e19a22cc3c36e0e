package tutor

import (
	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

const recentActivityWindow = 5

type learnerContext struct {
	Level              contractx.Level
	ProgressPercentage float64
	RecordsConsidered  int
	RecentLessons      []string
}

// ProgressPercentage is completed/total*100, and 0 for an empty history.
func ProgressPercentage(records []contractx.ProgressRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	completed := 0
	for _, r := range records {
		if r.IsCompleted {
			completed++
		}
	}
	return float64(completed) * 100 / float64(len(records))
}

// ClassifyLevel maps a progress percentage onto a learner level.
func ClassifyLevel(progress float64, s Settings) contractx.Level {
	switch {
	case progress > s.AdvancedThreshold:
		return contractx.LevelAdvanced
	case progress > s.IntermediateThreshold:
		return contractx.LevelIntermediate
	default:
		return contractx.LevelBeginner
	}
}

func buildLearnerContext(records []contractx.ProgressRecord, s Settings) learnerContext {
	progress := ProgressPercentage(records)

	start := len(records) - recentActivityWindow
	if start < 0 {
		start = 0
	}
	recent := make([]string, 0, len(records)-start)
	for _, r := range records[start:] {
		if r.LessonID != "" {
			recent = append(recent, r.LessonID)
		}
	}

	return learnerContext{
		Level:              ClassifyLevel(progress, s),
		ProgressPercentage: progress,
		RecordsConsidered:  len(records),
		RecentLessons:      recent,
	}
}
