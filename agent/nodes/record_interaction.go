package nodes

import (
	"fmt"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

// Recorder accepts an interaction for logging. It must return without waiting
// for the write to finish.
type Recorder func(in contractx.Interaction)

func RecordInteraction(in *GraphState, newID func() string, record Recorder) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrDispatch)
	}

	record(contractx.Interaction{
		ID:          newID(),
		UserID:      in.Request.UserID,
		AgentName:   in.Descriptor.Name,
		AgentType:   in.Descriptor.Type,
		Query:       in.Request.Query,
		Response:    in.Response.Text,
		Confidence:  in.Response.Confidence,
		Suggestions: in.Response.Suggestions,
		Context:     in.Request.Context,
		CourseID:    in.Request.CourseID,
		LessonID:    in.Request.LessonID,
		CreatedAt:   in.StartedAt,
	})
	return in, nil
}
