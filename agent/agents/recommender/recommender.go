package recommender

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
	"github.com/tanpawarit/Chative-Learning-Agents/agent/intent"
)

const (
	Name      = "Content Recommender"
	Algorithm = "profile_scoring"

	lookupFailureText = "I could not generate personalized recommendations right now."
)

type Settings struct {
	RecommendationCount int

	LevelWeight         float64
	CategoryWeight      float64
	PopularityWeight    float64
	PopularityScale     float64
	DurationWeight      float64
	DurationFlexibility float64
	PopularThreshold    int

	DefaultAvailableTime    float64
	AdvancedProgress        float64
	AdvancedEnrollments     int
	IntermediateProgress    float64
	IntermediateEnrollments int

	Confidence          float64
	SimilarityThreshold float64
	DiversityFactor     float64
}

func DefaultSettings() Settings {
	return Settings{
		RecommendationCount: 5,

		LevelWeight:         40,
		CategoryWeight:      30,
		PopularityWeight:    20,
		PopularityScale:     100,
		DurationWeight:      10,
		DurationFlexibility: 10,
		PopularThreshold:    50,

		DefaultAvailableTime:    30,
		AdvancedProgress:        70,
		AdvancedEnrollments:     2,
		IntermediateProgress:    40,
		IntermediateEnrollments: 1,

		Confidence:          0.9,
		SimilarityThreshold: 0.7,
		DiversityFactor:     0.3,
	}
}

type Recommender struct {
	records  contractx.RecordStore
	settings Settings
	logger   zerolog.Logger
}

type Option func(*Recommender)

func WithSettings(s Settings) Option {
	return func(r *Recommender) {
		r.settings = s
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Recommender) {
		r.logger = l
	}
}

func New(records contractx.RecordStore, opts ...Option) *Recommender {
	r := &Recommender{
		records:  records,
		settings: DefaultSettings(),
		logger:   log.Logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.logger = r.logger.With().Str("component", "recommender").Logger()
	return r
}

func (r *Recommender) Info() contractx.Descriptor {
	return contractx.Descriptor{
		Name:        Name,
		Type:        contractx.AgentTypeContentRecommender,
		Description: "AI agent that recommends personalized learning content",
		Capabilities: []string{
			"content_recommendation",
			"learning_path_optimization",
			"skill_gap_analysis",
			"adaptive_curriculum",
		},
		Settings: map[string]any{
			"recommendation_count": r.settings.RecommendationCount,
			"similarity_threshold": r.settings.SimilarityThreshold,
			"diversity_factor":     r.settings.DiversityFactor,
			"level_weight":         r.settings.LevelWeight,
			"category_weight":      r.settings.CategoryWeight,
			"popularity_weight":    r.settings.PopularityWeight,
			"duration_weight":      r.settings.DurationWeight,
		},
	}
}

func (r *Recommender) CanHandle(req contractx.Request) bool {
	return intent.MatchAny(req.Query, intent.RecommendationKeywords)
}

func (r *Recommender) Process(ctx context.Context, req contractx.Request) (contractx.Response, error) {
	profile, candidates, err := r.load(ctx, req.UserID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", req.UserID).Msg("load recommendation inputs")
		return contractx.ErrorResponse(lookupFailureText), nil
	}

	recs := Rank(candidates, profile, r.settings)

	r.logger.Debug().
		Str("user_id", req.UserID).
		Str("level", string(profile.EstimatedLevel)).
		Int("candidates", len(candidates)).
		Int("recommended", len(recs)).
		Msg("recommendations ranked")

	confidence := r.settings.Confidence
	topScore := 0.0
	if len(recs) == 0 {
		confidence = 0
	} else {
		topScore = recs[0].Score
	}

	titles := make([]string, 0, len(recs))
	for _, rec := range recs {
		titles = append(titles, rec.Course.Title)
	}

	return contractx.Response{
		Text:        formatRecommendations(recs),
		Confidence:  confidence,
		Suggestions: titles,
		Metadata: map[string]any{
			"total_recommendations": len(recs),
			"algorithm":             Algorithm,
			"personalized_score":    topScore,
			"estimated_level":       string(profile.EstimatedLevel),
			"interested_categories": profile.InterestedCategories,
			"total_courses":         profile.TotalCourses,
		},
	}, nil
}

// load issues the three record reads concurrently.
func (r *Recommender) load(ctx context.Context, userID string) (Profile, []contractx.CourseRecord, error) {
	if r.records == nil {
		return BuildProfile(nil, nil, r.settings), nil, nil
	}

	var (
		enrollments []contractx.EnrollmentRecord
		progress    []contractx.ProgressRecord
		candidates  []contractx.CourseRecord
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		enrollments, err = r.records.ListEnrollments(gCtx, userID)
		if err != nil {
			return fmt.Errorf("%w: enrollments: %v", contractx.ErrLookup, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		progress, err = r.records.ListProgress(gCtx, userID, "")
		if err != nil {
			return fmt.Errorf("%w: progress: %v", contractx.ErrLookup, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		candidates, err = r.records.ListCandidateCourses(gCtx, userID)
		if err != nil {
			return fmt.Errorf("%w: candidate courses: %v", contractx.ErrLookup, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Profile{}, nil, err
	}

	return BuildProfile(enrollments, progress, r.settings), candidates, nil
}
