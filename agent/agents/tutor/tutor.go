package tutor

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
	"github.com/tanpawarit/Chative-Learning-Agents/agent/intent"
	promptx "github.com/tanpawarit/Chative-Learning-Agents/agent/prompt"
)

const (
	Name = "Personal Tutor"

	lookupFailureText = "Sorry, I could not process your question right now. Please try again."
)

type Settings struct {
	AdvancedThreshold      float64
	IntermediateThreshold  float64
	BeginnerConfidence     float64
	IntermediateConfidence float64
	AdvancedConfidence     float64
	// NoHistoryConfidence replaces the level confidence when the learner has no progress records.
	NoHistoryConfidence  float64
	MaxResponseLength    int
	PersonalityTrait     string
	DifficultyAdaptation bool
}

func DefaultSettings() Settings {
	return Settings{
		AdvancedThreshold:      70,
		IntermediateThreshold:  30,
		BeginnerConfidence:     0.85,
		IntermediateConfidence: 0.92,
		AdvancedConfidence:     0.88,
		NoHistoryConfidence:    0.6,
		MaxResponseLength:      500,
		PersonalityTrait:       "encouraging",
		DifficultyAdaptation:   true,
	}
}

var levelSuggestions = map[contractx.Level][]string{
	contractx.LevelBeginner:     {"See practical examples", "Related exercises", "Prerequisite concepts"},
	contractx.LevelIntermediate: {"Hands-on project", "Case studies", "Advanced documentation"},
	contractx.LevelAdvanced:     {"Further research", "Advanced implementation", "Optimizations"},
}

// Suggestions returns a copy of the follow-up actions offered at a level.
func Suggestions(level contractx.Level) []string {
	return append([]string(nil), levelSuggestions[level]...)
}

type Tutor struct {
	records   contractx.RecordStore
	templates *promptx.TemplateSet
	settings  Settings
	logger    zerolog.Logger
	now       func() time.Time
}

type Option func(*Tutor)

func WithSettings(s Settings) Option {
	return func(t *Tutor) {
		t.settings = s
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(t *Tutor) {
		t.logger = l
	}
}

func WithClock(now func() time.Time) Option {
	return func(t *Tutor) {
		if now != nil {
			t.now = now
		}
	}
}

func New(records contractx.RecordStore, opts ...Option) *Tutor {
	t := &Tutor{
		records:   records,
		templates: promptx.MustLoadTemplateSet(),
		settings:  DefaultSettings(),
		logger:    log.Logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	t.logger = t.logger.With().Str("component", "tutor").Logger()
	return t
}

func (t *Tutor) Info() contractx.Descriptor {
	return contractx.Descriptor{
		Name:        Name,
		Type:        contractx.AgentTypeTutor,
		Description: "AI tutor that provides personalized explanations and guidance",
		Capabilities: []string{
			"explain_concepts",
			"answer_questions",
			"provide_examples",
			"adaptive_teaching",
		},
		Settings: map[string]any{
			"max_response_length":   t.settings.MaxResponseLength,
			"personality_trait":     t.settings.PersonalityTrait,
			"difficulty_adaptation": t.settings.DifficultyAdaptation,
		},
	}
}

func (t *Tutor) CanHandle(req contractx.Request) bool {
	return intent.IsTutorQuestion(req.Query)
}

func (t *Tutor) Process(ctx context.Context, req contractx.Request) (contractx.Response, error) {
	var records []contractx.ProgressRecord
	if t.records != nil {
		var err error
		// Level is estimated from the whole history, not only the requested course.
		records, err = t.records.ListProgress(ctx, req.UserID, "")
		if err != nil {
			t.logger.Error().Err(err).Str("user_id", req.UserID).Str("course_id", req.CourseID).Msg("load progress records")
			return contractx.ErrorResponse(lookupFailureText), nil
		}
	}

	lc := buildLearnerContext(records, t.settings)
	if !t.settings.DifficultyAdaptation {
		lc.Level = contractx.LevelBeginner
	}

	text, err := t.templates.Render(lc.Level, req.Query, req.Context)
	if err != nil {
		t.logger.Error().Err(err).Str("level", string(lc.Level)).Msg("render tutor template")
		return contractx.ErrorResponse(lookupFailureText), nil
	}

	t.logger.Debug().
		Str("user_id", req.UserID).
		Str("level", string(lc.Level)).
		Float64("progress", lc.ProgressPercentage).
		Int("records", lc.RecordsConsidered).
		Msg("tutor response built")

	metadata := map[string]any{
		"user_level":          string(lc.Level),
		"progress_percentage": lc.ProgressPercentage,
		"records_considered":  lc.RecordsConsidered,
		"recent_lessons":      lc.RecentLessons,
		"responded_at":        t.now().UTC().Format(time.RFC3339),
	}
	if req.CourseID != "" {
		metadata["course_id"] = req.CourseID
	}

	return contractx.Response{
		Text:        truncate(text, t.settings.MaxResponseLength),
		Confidence:  t.confidence(lc),
		Suggestions: Suggestions(lc.Level),
		Metadata:    metadata,
	}, nil
}

func (t *Tutor) confidence(lc learnerContext) float64 {
	if lc.RecordsConsidered == 0 {
		return t.settings.NoHistoryConfidence
	}
	switch lc.Level {
	case contractx.LevelAdvanced:
		return t.settings.AdvancedConfidence
	case contractx.LevelIntermediate:
		return t.settings.IntermediateConfidence
	default:
		return t.settings.BeginnerConfidence
	}
}

func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
