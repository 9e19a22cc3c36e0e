package contract

import "time"

// ProgressRecord is one lesson progress row for a learner.
type ProgressRecord struct {
	UserID      string    `json:"user_id"`
	LessonID    string    `json:"lesson_id"`
	CourseID    string    `json:"course_id"`
	IsCompleted bool      `json:"is_completed"`
	Percentage  float64   `json:"percentage"`
	TimeSpent   float64   `json:"time_spent"` // minutes
	UpdatedAt   time.Time `json:"updated_at"`
}

type CourseRecord struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Category        string `json:"category"`
	Level           Level  `json:"level"`
	Duration        *int   `json:"duration,omitempty"` // minutes, nil when unknown
	IsPublished     bool   `json:"is_published"`
	InstructorID    string `json:"instructor_id,omitempty"`
	InstructorName  string `json:"instructor_name,omitempty"`
	EnrollmentCount int    `json:"enrollment_count"`
}

type EnrollmentRecord struct {
	UserID     string       `json:"user_id"`
	CourseID   string       `json:"course_id"`
	Course     CourseRecord `json:"course"`
	EnrolledAt time.Time    `json:"enrolled_at"`
}

// Interaction is one dispatched request/response pair kept for analytics.
type Interaction struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	AgentName   string         `json:"agent_name"`
	AgentType   AgentType      `json:"agent_type"`
	Query       string         `json:"query"`
	Response    string         `json:"response"`
	Confidence  float64        `json:"confidence"`
	Suggestions []string       `json:"suggestions,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
	CourseID    string         `json:"course_id,omitempty"`
	LessonID    string         `json:"lesson_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
