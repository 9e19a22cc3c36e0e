package manager

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	recommenderx "github.com/tanpawarit/Chative-Learning-Agents/agent/agents/recommender"
	registryx "github.com/tanpawarit/Chative-Learning-Agents/agent/agents/registry"
	tutorx "github.com/tanpawarit/Chative-Learning-Agents/agent/agents/tutor"
	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
	intentx "github.com/tanpawarit/Chative-Learning-Agents/agent/intent"
	nodex "github.com/tanpawarit/Chative-Learning-Agents/agent/nodes"
	tuningx "github.com/tanpawarit/Chative-Learning-Agents/agent/tuning"
	"github.com/tanpawarit/Chative-Learning-Agents/pkg/metrics"
)

// FallbackType is the responder type used when no other responder fits.
const FallbackType = contractx.AgentTypeTutor

type Config struct {
	// Tuning defaults to tuning.Default() when nil.
	Tuning *tuningx.Config
	Logger *zerolog.Logger
	Clock  func() time.Time
	NewID  func() string
}

type Manager struct {
	records      contractx.RecordStore
	interactions contractx.InteractionLog

	registry *registryx.Registry

	fallbackMu  sync.Mutex
	fallback    contractx.Responder
	newFallback func() contractx.Responder

	initOnce sync.Once
	pending  sync.WaitGroup

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	tuning tuningx.Config
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

func New(
	records contractx.RecordStore,
	interactions contractx.InteractionLog,
	cfg Config,
) (*Manager, error) {
	if records == nil {
		return nil, errors.New("record store is required")
	}
	if interactions == nil {
		interactions = noopInteractionLog{}
	}

	tuning := tuningx.Default()
	if cfg.Tuning != nil {
		tuning = *cfg.Tuning
	}
	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	m := &Manager{
		records:      records,
		interactions: interactions,
		registry:     registryx.New(),
		tuning:       tuning,
		logger:       logger.With().Str("component", "agent_manager").Logger(),
		now:          now,
		newID:        newID,
	}
	m.newFallback = m.newTutor

	graphRunner, err := m.compileHandleRequestGraph(context.Background())
	if err != nil {
		return nil, err
	}
	m.graphRunner = graphRunner

	return m, nil
}

// Init registers the default responders that are not registered yet and
// prepares the fallback. It runs at most once and Handle calls it implicitly.
func (m *Manager) Init() {
	m.initOnce.Do(func() {
		for _, resp := range m.defaultResponders() {
			info := resp.Info()
			if m.registry.Has(info.Type) {
				continue
			}
			if err := m.registry.Register(resp); err != nil {
				m.logger.Error().Err(err).Str("agent", info.Name).Msg("register default responder")
				continue
			}
			m.logger.Info().Str("agent", info.Name).Str("agent_type", string(info.Type)).Msg("responder registered")
		}
		m.fallbackResponder()
		m.logger.Info().Int("responders", m.registry.Len()).Msg("agent manager initialized")
	})
}

// Handle answers a request with exactly one responder. Only validation
// failures surface as errors; every other failure becomes the error result.
func (m *Manager) Handle(ctx context.Context, req contractx.Request) (res contractx.Result, err error) {
	if err := req.Validate(); err != nil {
		return contractx.Result{}, err
	}
	m.Init()

	defer func() {
		if rec := recover(); rec != nil {
			m.logger.Error().Interface("panic", rec).Str("user_id", req.UserID).Msg("dispatch panicked")
			metrics.DispatchFailures.WithLabelValues(metrics.StagePanic).Inc()
			res, err = contractx.ErrorResult(), nil
		}
	}()

	out, err := m.graphRunner.Invoke(ctx, nodex.GraphInput{Request: req})
	if err != nil {
		if errors.Is(err, contractx.ErrValidation) {
			return contractx.Result{}, err
		}
		m.logger.Error().Err(err).Str("user_id", req.UserID).Msg("dispatch failed")
		metrics.DispatchFailures.WithLabelValues(failureStage(err)).Inc()
		return contractx.ErrorResult(), nil
	}
	return out.Result, nil
}

// Select picks the first registered responder that claims the request, then
// falls back on keyword intent and finally on the fallback responder.
func (m *Manager) Select(req contractx.Request) contractx.Responder {
	for _, resp := range m.registry.Snapshot() {
		if resp.CanHandle(req) {
			return resp
		}
	}

	switch {
	case intentx.IsRecommendation(req.Query):
		if resp, ok := m.registry.Get(contractx.AgentTypeContentRecommender); ok {
			return resp
		}
	case intentx.IsTutorial(req.Query):
		if resp, ok := m.registry.Get(contractx.AgentTypeTutor); ok {
			return resp
		}
	}
	return m.fallbackResponder()
}

// AddResponder registers resp, replacing any responder of the same type.
func (m *Manager) AddResponder(resp contractx.Responder) error {
	if err := m.registry.Register(resp); err != nil {
		return err
	}
	info := resp.Info()
	m.logger.Info().Str("agent", info.Name).Str("agent_type", string(info.Type)).Msg("responder registered")
	return nil
}

// RemoveResponder unregisters the responder of the given type. Removing the
// fallback type also drops the cached fallback so it is rebuilt on demand.
func (m *Manager) RemoveResponder(agentType contractx.AgentType) bool {
	removed := m.registry.Remove(agentType)
	if agentType == FallbackType {
		m.fallbackMu.Lock()
		m.fallback = nil
		m.fallbackMu.Unlock()
	}
	if removed {
		m.logger.Info().Str("agent_type", string(agentType)).Msg("responder removed")
	}
	return removed
}

func (m *Manager) Responder(agentType contractx.AgentType) (contractx.Responder, bool) {
	return m.registry.Get(agentType)
}

// ListResponders returns the descriptors of the registered responders in
// registration order.
func (m *Manager) ListResponders() []contractx.Descriptor {
	m.Init()
	return m.registry.Descriptors()
}

// History returns the most recent interactions of a user when the
// interaction log can be read back.
func (m *Manager) History(ctx context.Context, userID string, limit int) ([]contractx.Interaction, error) {
	h, ok := m.interactions.(contractx.InteractionHistory)
	if !ok {
		return []contractx.Interaction{}, nil
	}
	return h.History(ctx, userID, limit)
}

// Wait blocks until every pending interaction write has finished.
func (m *Manager) Wait() {
	m.pending.Wait()
}

func (m *Manager) defaultResponders() []contractx.Responder {
	return []contractx.Responder{
		m.newTutor(),
		recommenderx.New(m.records,
			recommenderx.WithSettings(m.tuning.RecommenderSettings()),
			recommenderx.WithLogger(m.logger),
		),
	}
}

func (m *Manager) newTutor() contractx.Responder {
	return tutorx.New(m.records,
		tutorx.WithSettings(m.tuning.TutorSettings()),
		tutorx.WithLogger(m.logger),
		tutorx.WithClock(m.now),
	)
}

func (m *Manager) fallbackResponder() contractx.Responder {
	if resp, ok := m.registry.Get(FallbackType); ok {
		return resp
	}

	m.fallbackMu.Lock()
	defer m.fallbackMu.Unlock()
	if m.fallback == nil {
		m.fallback = m.newFallback()
		m.logger.Debug().Str("agent", m.fallback.Info().Name).Msg("fallback responder created")
	}
	return m.fallback
}

// recordAsync writes the interaction in the background. Failures are logged
// and counted but never reach the caller.
func (m *Manager) recordAsync(in contractx.Interaction) {
	m.logger.Info().
		Str("interaction_id", in.ID).
		Str("user_id", in.UserID).
		Str("agent", in.AgentName).
		Float64("confidence", in.Confidence).
		Msg("agent interaction")

	m.pending.Add(1)
	go func() {
		defer m.pending.Done()
		defer func() {
			if rec := recover(); rec != nil {
				metrics.InteractionLogFailures.Inc()
				m.logger.Warn().Interface("panic", rec).Str("interaction_id", in.ID).Msg("record interaction panicked")
			}
		}()

		ctx := context.Background()
		if m.tuning.LogTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, m.tuning.LogTimeout)
			defer cancel()
		}
		if err := m.interactions.Record(ctx, in); err != nil {
			metrics.InteractionLogFailures.Inc()
			m.logger.Warn().Err(err).Str("interaction_id", in.ID).Msg("record interaction")
		}
	}()
}

func failureStage(err error) string {
	switch {
	case errors.Is(err, contractx.ErrProcessTimeout):
		return metrics.StageTimeout
	case errors.Is(err, contractx.ErrResponderPanic):
		return metrics.StagePanic
	case errors.Is(err, nodex.ErrSelection):
		return metrics.StageSelect
	default:
		return metrics.StageDispatch
	}
}

type noopInteractionLog struct{}

func (noopInteractionLog) Record(context.Context, contractx.Interaction) error {
	return nil
}
