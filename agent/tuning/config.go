package tuning

import (
	"fmt"
	"time"

	recommenderx "github.com/tanpawarit/Chative-Learning-Agents/agent/agents/recommender"
	tutorx "github.com/tanpawarit/Chative-Learning-Agents/agent/agents/tutor"
	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

// Config carries every heuristic constant of the responders. Load it with
// config.MustNew[tuning.Config]("AGENT").
type Config struct {
	ProcessTimeout time.Duration `split_words:"true" default:"0s"`
	LogTimeout     time.Duration `split_words:"true" default:"5s"`

	TutorAdvancedThreshold      float64 `split_words:"true" default:"70"`
	TutorIntermediateThreshold  float64 `split_words:"true" default:"30"`
	TutorBeginnerConfidence     float64 `split_words:"true" default:"0.85"`
	TutorIntermediateConfidence float64 `split_words:"true" default:"0.92"`
	TutorAdvancedConfidence     float64 `split_words:"true" default:"0.88"`
	TutorNoHistoryConfidence    float64 `split_words:"true" default:"0.6"`
	TutorMaxResponseLength      int     `split_words:"true" default:"500"`
	TutorPersonalityTrait       string  `split_words:"true" default:"encouraging"`
	TutorDifficultyAdaptation   bool    `split_words:"true" default:"true"`

	RecommendationCount      int     `split_words:"true" default:"5"`
	RecommendationConfidence float64 `split_words:"true" default:"0.9"`
	LevelWeight              float64 `split_words:"true" default:"40"`
	CategoryWeight           float64 `split_words:"true" default:"30"`
	PopularityWeight         float64 `split_words:"true" default:"20"`
	PopularityScale          float64 `split_words:"true" default:"100"`
	DurationWeight           float64 `split_words:"true" default:"10"`
	DurationFlexibility      float64 `split_words:"true" default:"10"`
	PopularThreshold         int     `split_words:"true" default:"50"`
	DefaultAvailableTime     float64 `split_words:"true" default:"30"`
	AdvancedProgress         float64 `split_words:"true" default:"70"`
	AdvancedEnrollments      int     `split_words:"true" default:"2"`
	IntermediateProgress     float64 `split_words:"true" default:"40"`
	IntermediateEnrollments  int     `split_words:"true" default:"1"`
	SimilarityThreshold      float64 `split_words:"true" default:"0.7"`
	DiversityFactor          float64 `split_words:"true" default:"0.3"`
}

// Default mirrors the envconfig defaults for callers that do not read the environment.
func Default() Config {
	t := tutorx.DefaultSettings()
	r := recommenderx.DefaultSettings()
	return Config{
		LogTimeout: 5 * time.Second,

		TutorAdvancedThreshold:      t.AdvancedThreshold,
		TutorIntermediateThreshold:  t.IntermediateThreshold,
		TutorBeginnerConfidence:     t.BeginnerConfidence,
		TutorIntermediateConfidence: t.IntermediateConfidence,
		TutorAdvancedConfidence:     t.AdvancedConfidence,
		TutorNoHistoryConfidence:    t.NoHistoryConfidence,
		TutorMaxResponseLength:      t.MaxResponseLength,
		TutorPersonalityTrait:       t.PersonalityTrait,
		TutorDifficultyAdaptation:   t.DifficultyAdaptation,

		RecommendationCount:      r.RecommendationCount,
		RecommendationConfidence: r.Confidence,
		LevelWeight:              r.LevelWeight,
		CategoryWeight:           r.CategoryWeight,
		PopularityWeight:         r.PopularityWeight,
		PopularityScale:          r.PopularityScale,
		DurationWeight:           r.DurationWeight,
		DurationFlexibility:      r.DurationFlexibility,
		PopularThreshold:         r.PopularThreshold,
		DefaultAvailableTime:     r.DefaultAvailableTime,
		AdvancedProgress:         r.AdvancedProgress,
		AdvancedEnrollments:      r.AdvancedEnrollments,
		IntermediateProgress:     r.IntermediateProgress,
		IntermediateEnrollments:  r.IntermediateEnrollments,
		SimilarityThreshold:      r.SimilarityThreshold,
		DiversityFactor:          r.DiversityFactor,
	}
}

func (c Config) Validate() error {
	confidences := map[string]float64{
		"tutor beginner confidence":     c.TutorBeginnerConfidence,
		"tutor intermediate confidence": c.TutorIntermediateConfidence,
		"tutor advanced confidence":     c.TutorAdvancedConfidence,
		"tutor no-history confidence":   c.TutorNoHistoryConfidence,
		"recommendation confidence":     c.RecommendationConfidence,
	}
	for name, v := range confidences {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be within [0,1], got %v", contractx.ErrValidation, name, v)
		}
	}
	minLevel := min(c.TutorBeginnerConfidence, c.TutorIntermediateConfidence, c.TutorAdvancedConfidence)
	if c.TutorNoHistoryConfidence > minLevel {
		return fmt.Errorf("%w: tutor no-history confidence must not exceed the level confidences", contractx.ErrValidation)
	}
	if c.TutorIntermediateThreshold >= c.TutorAdvancedThreshold {
		return fmt.Errorf("%w: tutor intermediate threshold must be below the advanced threshold", contractx.ErrValidation)
	}
	if c.RecommendationCount <= 0 {
		return fmt.Errorf("%w: recommendation count must be positive", contractx.ErrValidation)
	}
	if c.PopularityScale <= 0 {
		return fmt.Errorf("%w: popularity scale must be positive", contractx.ErrValidation)
	}
	if c.DefaultAvailableTime <= 0 {
		return fmt.Errorf("%w: default available time must be positive", contractx.ErrValidation)
	}
	for name, w := range map[string]float64{
		"level weight":         c.LevelWeight,
		"category weight":      c.CategoryWeight,
		"popularity weight":    c.PopularityWeight,
		"duration weight":      c.DurationWeight,
		"duration flexibility": c.DurationFlexibility,
	} {
		if w < 0 {
			return fmt.Errorf("%w: %s must be >= 0", contractx.ErrValidation, name)
		}
	}
	if c.ProcessTimeout < 0 || c.LogTimeout < 0 {
		return fmt.Errorf("%w: timeouts must be >= 0", contractx.ErrValidation)
	}
	return nil
}

func (c Config) TutorSettings() tutorx.Settings {
	return tutorx.Settings{
		AdvancedThreshold:      c.TutorAdvancedThreshold,
		IntermediateThreshold:  c.TutorIntermediateThreshold,
		BeginnerConfidence:     c.TutorBeginnerConfidence,
		IntermediateConfidence: c.TutorIntermediateConfidence,
		AdvancedConfidence:     c.TutorAdvancedConfidence,
		NoHistoryConfidence:    c.TutorNoHistoryConfidence,
		MaxResponseLength:      c.TutorMaxResponseLength,
		PersonalityTrait:       c.TutorPersonalityTrait,
		DifficultyAdaptation:   c.TutorDifficultyAdaptation,
	}
}

func (c Config) RecommenderSettings() recommenderx.Settings {
	return recommenderx.Settings{
		RecommendationCount:     c.RecommendationCount,
		LevelWeight:             c.LevelWeight,
		CategoryWeight:          c.CategoryWeight,
		PopularityWeight:        c.PopularityWeight,
		PopularityScale:         c.PopularityScale,
		DurationWeight:          c.DurationWeight,
		DurationFlexibility:     c.DurationFlexibility,
		PopularThreshold:        c.PopularThreshold,
		DefaultAvailableTime:    c.DefaultAvailableTime,
		AdvancedProgress:        c.AdvancedProgress,
		AdvancedEnrollments:     c.AdvancedEnrollments,
		IntermediateProgress:    c.IntermediateProgress,
		IntermediateEnrollments: c.IntermediateEnrollments,
		Confidence:              c.RecommendationConfidence,
		SimilarityThreshold:     c.SimilarityThreshold,
		DiversityFactor:         c.DiversityFactor,
	}
}
