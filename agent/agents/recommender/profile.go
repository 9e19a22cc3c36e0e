package recommender

import (
	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

// Profile is the learner summary derived from history on every request.
type Profile struct {
	EstimatedLevel       contractx.Level `json:"estimated_level"`
	InterestedCategories []string        `json:"interested_categories"`
	AvailableTime        float64         `json:"available_time"`
	CompletionRate       float64         `json:"completion_rate"`
	TotalCourses         int             `json:"total_courses"`
}

func (p Profile) HasCategory(category string) bool {
	for _, c := range p.InterestedCategories {
		if c == category {
			return true
		}
	}
	return false
}

// BuildProfile derives a Profile from enrollment and progress history.
func BuildProfile(enrollments []contractx.EnrollmentRecord, progress []contractx.ProgressRecord, s Settings) Profile {
	seen := make(map[string]struct{}, len(enrollments))
	categories := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		c := e.Course.Category
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}

	avgProgress := 0.0
	availableTime := s.DefaultAvailableTime
	if n := len(progress); n > 0 {
		var pctSum, timeSum float64
		for _, p := range progress {
			pctSum += p.Percentage
			timeSum += p.TimeSpent
		}
		avgProgress = pctSum / float64(n)
		if timeSum > 0 {
			availableTime = timeSum / float64(n)
		}
	}

	count := len(enrollments)
	level := contractx.LevelBeginner
	switch {
	case avgProgress > s.AdvancedProgress && count > s.AdvancedEnrollments:
		level = contractx.LevelAdvanced
	case avgProgress > s.IntermediateProgress && count > s.IntermediateEnrollments:
		level = contractx.LevelIntermediate
	}

	return Profile{
		EstimatedLevel:       level,
		InterestedCategories: categories,
		AvailableTime:        availableTime,
		CompletionRate:       avgProgress,
		TotalCourses:         count,
	}
}
