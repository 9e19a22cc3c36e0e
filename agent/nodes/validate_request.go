package nodes

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

var ErrSelection = errors.New("responder selection failed")

type GraphInput struct {
	Request contractx.Request
}

type GraphOutput struct {
	Result contractx.Result
}

type GraphState struct {
	Request   contractx.Request
	StartedAt time.Time

	Responder  contractx.Responder
	Descriptor contractx.Descriptor

	Response contractx.Response
	Elapsed  time.Duration
}

// ValidateRequest rejects requests without a user or query before any dispatch.
func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	if err := in.Request.Validate(); err != nil {
		return nil, err
	}

	req := in.Request
	req.UserID = strings.TrimSpace(req.UserID)
	req.Query = strings.TrimSpace(req.Query)
	req.CourseID = strings.TrimSpace(req.CourseID)
	req.LessonID = strings.TrimSpace(req.LessonID)

	return &GraphState{
		Request:   req,
		StartedAt: nowFn().UTC(),
	}, nil
}
