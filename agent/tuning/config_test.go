package tuning

import (
	"errors"
	"testing"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recommenderx "github.com/tanpawarit/Chative-Learning-Agents/agent/agents/recommender"
	tutorx "github.com/tanpawarit/Chative-Learning-Agents/agent/agents/tutor"
	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

func TestDefaultMatchesResponderDefaults(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, tutorx.DefaultSettings(), cfg.TutorSettings())
	assert.Equal(t, recommenderx.DefaultSettings(), cfg.RecommenderSettings())
}

func TestEnvconfigDefaultsMatchDefault(t *testing.T) {
	var cfg Config
	require.NoError(t, envconfig.Process("TUNING_TEST_UNSET", &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("AGENT_RECOMMENDATION_COUNT", "3")
	t.Setenv("AGENT_LEVEL_WEIGHT", "55")
	t.Setenv("AGENT_PROCESS_TIMEOUT", "2s")

	var cfg Config
	require.NoError(t, envconfig.Process("AGENT", &cfg))
	assert.Equal(t, 3, cfg.RecommenderSettings().RecommendationCount)
	assert.Equal(t, 55.0, cfg.RecommenderSettings().LevelWeight)
	assert.Equal(t, "2s", cfg.ProcessTimeout.String())
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "confidence above one", mutate: func(c *Config) { c.TutorAdvancedConfidence = 1.2 }},
		{name: "no-history above levels", mutate: func(c *Config) { c.TutorNoHistoryConfidence = 0.9 }},
		{name: "thresholds inverted", mutate: func(c *Config) { c.TutorIntermediateThreshold = 80 }},
		{name: "zero recommendation count", mutate: func(c *Config) { c.RecommendationCount = 0 }},
		{name: "zero popularity scale", mutate: func(c *Config) { c.PopularityScale = 0 }},
		{name: "negative weight", mutate: func(c *Config) { c.CategoryWeight = -1 }},
		{name: "zero available time", mutate: func(c *Config) { c.DefaultAvailableTime = 0 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, contractx.ErrValidation), "got %v", err)
		})
	}
}
