package recommender

import (
	"math"
	"sort"
	"strings"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

// ScoredCandidate is a catalog course annotated with its relevance score.
type ScoredCandidate struct {
	Course contractx.CourseRecord `json:"course"`
	Score  float64                `json:"score"`
	Reason string                 `json:"reason"`
}

// IsLevelAppropriate reports whether the course is at the learner's tier or exactly one above.
func IsLevelAppropriate(course, learner contractx.Level) bool {
	c, l := course.Rank(), learner.Rank()
	if c < 0 || l < 0 {
		return false
	}
	return c >= l && c <= l+1
}

func popularity(enrollments int, s Settings) float64 {
	if enrollments <= 0 || s.PopularityScale <= 0 {
		return 0
	}
	return math.Min(float64(enrollments)/s.PopularityScale*s.PopularityWeight, s.PopularityWeight)
}

func durationFits(course contractx.CourseRecord, p Profile, s Settings) bool {
	return course.Duration != nil && float64(*course.Duration) <= p.AvailableTime*s.DurationFlexibility
}

// Score adds up the scoring components of a course against a profile.
func Score(course contractx.CourseRecord, p Profile, s Settings) float64 {
	score := 0.0
	if IsLevelAppropriate(course.Level, p.EstimatedLevel) {
		score += s.LevelWeight
	}
	if p.HasCategory(course.Category) {
		score += s.CategoryWeight
	}
	score += popularity(course.EnrollmentCount, s)
	if durationFits(course, p, s) {
		score += s.DurationWeight
	}
	return score
}

// Rank scores every candidate and returns the top RecommendationCount, best first.
// Equal scores are ordered by course id so repeated calls agree.
func Rank(courses []contractx.CourseRecord, p Profile, s Settings) []ScoredCandidate {
	scored := make([]ScoredCandidate, 0, len(courses))
	for _, c := range courses {
		scored = append(scored, ScoredCandidate{
			Course: c,
			Score:  Score(c, p, s),
			Reason: reason(c, p, s),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Course.ID < scored[j].Course.ID
	})

	if s.RecommendationCount > 0 && len(scored) > s.RecommendationCount {
		scored = scored[:s.RecommendationCount]
	}
	return scored
}

func reason(course contractx.CourseRecord, p Profile, s Settings) string {
	var parts []string
	if p.HasCategory(course.Category) {
		parts = append(parts, "you are interested in "+course.Category)
	}
	if IsLevelAppropriate(course.Level, p.EstimatedLevel) {
		parts = append(parts, "suited to your "+strings.ToLower(string(p.EstimatedLevel))+" level")
	}
	if course.EnrollmentCount > s.PopularThreshold {
		parts = append(parts, "very popular with students")
	}
	if len(parts) == 0 {
		return "Might interest you"
	}
	return "Recommended because " + strings.Join(parts, ", ")
}
