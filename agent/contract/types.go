package contract

import (
	"fmt"
	"strings"
)

type AgentType string

const (
	AgentTypeTutor              AgentType = "TUTOR"
	AgentTypeMentor             AgentType = "MENTOR"
	AgentTypeAssessor           AgentType = "ASSESSOR"
	AgentTypeContentRecommender AgentType = "CONTENT_RECOMMENDER"
	AgentTypeStudyPlanner       AgentType = "STUDY_PLANNER"
)

// ErrorHandlerName is reported as the agent when dispatch itself fails.
const ErrorHandlerName = "Error Handler"

type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
)

var levelOrder = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Rank orders levels BEGINNER < INTERMEDIATE < ADVANCED. Unknown levels rank -1.
func (l Level) Rank() int {
	for i, lv := range levelOrder {
		if lv == l {
			return i
		}
	}
	return -1
}

func ParseLevel(s string) (Level, error) {
	lv := Level(strings.ToUpper(strings.TrimSpace(s)))
	if lv.Rank() < 0 {
		return "", fmt.Errorf("%w: unknown level %q", ErrValidation, s)
	}
	return lv, nil
}

type Request struct {
	UserID   string         `json:"user_id"`
	Query    string         `json:"query"`
	Context  map[string]any `json:"context,omitempty"`
	CourseID string         `json:"course_id,omitempty"`
	LessonID string         `json:"lesson_id,omitempty"`
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidUser)
	}
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidQuery)
	}
	return nil
}

type Response struct {
	Text        string         `json:"response"`
	Confidence  float64        `json:"confidence"`
	Suggestions []string       `json:"suggestions,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// IsError reports whether the response carries the error flag.
func (r Response) IsError() bool {
	flag, _ := r.Metadata["error"].(bool)
	return flag
}

// Result is a Response annotated with the responder that produced it.
type Result struct {
	Response
	AgentUsed string `json:"agent_used"`
}

type Descriptor struct {
	Name         string         `json:"name"`
	Type         AgentType      `json:"type"`
	Description  string         `json:"description"`
	Capabilities []string       `json:"capabilities"`
	Settings     map[string]any `json:"settings,omitempty"`
}

// ErrorResponse builds the confidence-0 response used for recovered failures.
func ErrorResponse(text string) Response {
	return Response{
		Text:       text,
		Confidence: 0,
		Metadata:   map[string]any{"error": true},
	}
}

// ErrorResult is the uniform result returned when selection or dispatch fails.
func ErrorResult() Result {
	return Result{
		Response:  ErrorResponse("Sorry, I had a problem processing your request. Could you try rephrasing it?"),
		AgentUsed: ErrorHandlerName,
	}
}
