package nodes

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

type funcResponder struct {
	process func(ctx context.Context) (contractx.Response, error)
}

func (f funcResponder) Info() contractx.Descriptor {
	return contractx.Descriptor{Name: "Stub", Type: contractx.AgentTypeMentor}
}

func (f funcResponder) CanHandle(contractx.Request) bool { return true }

func (f funcResponder) Process(ctx context.Context, req contractx.Request) (contractx.Response, error) {
	return f.process(ctx)
}

type selectorFunc func(req contractx.Request) contractx.Responder

func (f selectorFunc) Select(req contractx.Request) contractx.Responder { return f(req) }

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func stateWith(r contractx.Responder) *GraphState {
	return &GraphState{
		Request:    contractx.Request{UserID: "u1", Query: "q"},
		Responder:  r,
		Descriptor: r.Info(),
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	st, err := ValidateRequest(GraphInput{Request: contractx.Request{UserID: " u1 ", Query: " hi "}}, clock)
	require.NoError(t, err)
	assert.Equal(t, "u1", st.Request.UserID)
	assert.Equal(t, "hi", st.Request.Query)
	assert.Equal(t, fixedNow, st.StartedAt)

	_, err = ValidateRequest(GraphInput{Request: contractx.Request{UserID: "u1"}}, clock)
	require.ErrorIs(t, err, contractx.ErrInvalidQuery)
}

func TestSelectResponder(t *testing.T) {
	t.Parallel()

	r := funcResponder{}
	st, err := SelectResponder(&GraphState{}, selectorFunc(func(contractx.Request) contractx.Responder { return r }))
	require.NoError(t, err)
	assert.Equal(t, "Stub", st.Descriptor.Name)

	_, err = SelectResponder(&GraphState{}, selectorFunc(func(contractx.Request) contractx.Responder { return nil }))
	require.ErrorIs(t, err, ErrSelection)

	_, err = SelectResponder(&GraphState{}, selectorFunc(func(contractx.Request) contractx.Responder { panic("bad") }))
	require.ErrorIs(t, err, ErrSelection)
}

func TestDispatchResponderOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
		process func(ctx context.Context) (contractx.Response, error)
		wantErr error
		want    float64
	}{
		{
			name:    "ok",
			process: func(context.Context) (contractx.Response, error) { return contractx.Response{Text: "a", Confidence: 0.5}, nil },
			want:    0.5,
		},
		{
			name:    "clamps high",
			process: func(context.Context) (contractx.Response, error) { return contractx.Response{Confidence: 3}, nil },
			want:    1,
		},
		{
			name:    "clamps nan",
			process: func(context.Context) (contractx.Response, error) { return contractx.Response{Confidence: math.NaN()}, nil },
			want:    0,
		},
		{
			name:    "error",
			process: func(context.Context) (contractx.Response, error) { return contractx.Response{}, errors.New("boom") },
			wantErr: contractx.ErrDispatch,
		},
		{
			name:    "panic",
			process: func(context.Context) (contractx.Response, error) { panic("bad") },
			wantErr: contractx.ErrResponderPanic,
		},
		{
			name:    "panic with timeout",
			timeout: time.Second,
			process: func(context.Context) (contractx.Response, error) { panic("bad") },
			wantErr: contractx.ErrResponderPanic,
		},
		{
			name:    "timeout",
			timeout: 10 * time.Millisecond,
			process: func(ctx context.Context) (contractx.Response, error) {
				<-ctx.Done()
				return contractx.Response{}, ctx.Err()
			},
			wantErr: contractx.ErrProcessTimeout,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st, err := DispatchResponder(context.Background(), stateWith(funcResponder{process: tt.process}), tt.timeout, clock)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, st.Response.Confidence)
		})
	}
}

func TestDispatchResponderParentCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DispatchResponder(ctx, stateWith(funcResponder{process: func(ctx context.Context) (contractx.Response, error) {
		<-ctx.Done()
		return contractx.Response{}, ctx.Err()
	}}), time.Second, clock)
	require.ErrorIs(t, err, contractx.ErrDispatch)
	assert.NotErrorIs(t, err, contractx.ErrProcessTimeout)
}

func TestRecordInteractionAndFinalize(t *testing.T) {
	t.Parallel()

	st := stateWith(funcResponder{})
	st.StartedAt = fixedNow
	st.Response = contractx.Response{Text: "answer", Confidence: 0.9, Suggestions: []string{"x"}}

	var got contractx.Interaction
	_, err := RecordInteraction(st, func() string { return "id-1" }, func(in contractx.Interaction) { got = in })
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "Stub", got.AgentName)
	assert.Equal(t, contractx.AgentTypeMentor, got.AgentType)
	assert.Equal(t, "answer", got.Response)
	assert.Equal(t, fixedNow, got.CreatedAt)

	out, err := FinalizeReply(st)
	require.NoError(t, err)
	assert.Equal(t, "Stub", out.Result.AgentUsed)
	assert.Equal(t, "answer", out.Result.Text)

	_, err = FinalizeReply(nil)
	require.Error(t, err)
}
