package records

import (
	"time"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        string    `bun:"id,pk"`
	Email     string    `bun:"email,notnull,unique"`
	Username  string    `bun:"username,notnull"`
	FirstName string    `bun:"first_name,notnull"`
	LastName  string    `bun:"last_name,notnull"`
	Role      string    `bun:"role,notnull,default:'STUDENT'"`
	Bio       string    `bun:"bio"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`

	ID           string    `bun:"id,pk"`
	Title        string    `bun:"title,notnull"`
	Description  string    `bun:"description"`
	Category     string    `bun:"category,notnull"`
	Level        string    `bun:"level,notnull"`
	Duration     *int      `bun:"duration"`
	IsPublished  bool      `bun:"is_published,notnull"`
	InstructorID string    `bun:"instructor_id"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`

	InstructorName  string `bun:"instructor_name,scanonly"`
	EnrollmentCount int    `bun:"enrollment_count,scanonly"`
}

type Lesson struct {
	bun.BaseModel `bun:"table:lessons,alias:l"`

	ID       string `bun:"id,pk"`
	CourseID string `bun:"course_id,notnull"`
	Title    string `bun:"title,notnull"`
	Duration int    `bun:"duration"`
	Position int    `bun:"position,notnull"`
}

type Enrollment struct {
	bun.BaseModel `bun:"table:enrollments,alias:e"`

	ID         string    `bun:"id,pk"`
	UserID     string    `bun:"user_id,notnull,unique:user_course"`
	CourseID   string    `bun:"course_id,notnull,unique:user_course"`
	Status     string    `bun:"status,notnull,default:'ACTIVE'"`
	Progress   float64   `bun:"progress,notnull,default:0"`
	EnrolledAt time.Time `bun:"enrolled_at,nullzero,notnull,default:current_timestamp"`
}

type Progress struct {
	bun.BaseModel `bun:"table:progress,alias:p"`

	ID          string    `bun:"id,pk"`
	UserID      string    `bun:"user_id,notnull,unique:user_lesson"`
	LessonID    string    `bun:"lesson_id,notnull,unique:user_lesson"`
	Percentage  float64   `bun:"percentage,notnull,default:0"`
	TimeSpent   float64   `bun:"time_spent,notnull,default:0"`
	IsCompleted bool      `bun:"is_completed,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	CourseID string `bun:"course_id,scanonly"`
}

type InteractionRow struct {
	bun.BaseModel `bun:"table:ai_interactions,alias:ai"`

	ID          string         `bun:"id,pk"`
	UserID      string         `bun:"user_id,notnull"`
	AgentName   string         `bun:"agent_name,notnull"`
	AgentType   string         `bun:"agent_type,notnull"`
	Query       string         `bun:"query,notnull"`
	Response    string         `bun:"response,notnull"`
	Confidence  float64        `bun:"confidence,notnull"`
	Suggestions []string       `bun:"suggestions,type:text"`
	Context     map[string]any `bun:"context,type:text"`
	CourseID    string         `bun:"course_id"`
	LessonID    string         `bun:"lesson_id"`
	CreatedAt   time.Time      `bun:"created_at,notnull"`
}

func (c Course) toRecord() contractx.CourseRecord {
	return contractx.CourseRecord{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		Category:        c.Category,
		Level:           contractx.Level(c.Level),
		Duration:        c.Duration,
		IsPublished:     c.IsPublished,
		InstructorID:    c.InstructorID,
		InstructorName:  c.InstructorName,
		EnrollmentCount: c.EnrollmentCount,
	}
}

func (p Progress) toRecord() contractx.ProgressRecord {
	return contractx.ProgressRecord{
		UserID:      p.UserID,
		LessonID:    p.LessonID,
		CourseID:    p.CourseID,
		IsCompleted: p.IsCompleted,
		Percentage:  p.Percentage,
		TimeSpent:   p.TimeSpent,
		UpdatedAt:   p.UpdatedAt,
	}
}

func interactionRow(in contractx.Interaction) *InteractionRow {
	return &InteractionRow{
		ID:          in.ID,
		UserID:      in.UserID,
		AgentName:   in.AgentName,
		AgentType:   string(in.AgentType),
		Query:       in.Query,
		Response:    in.Response,
		Confidence:  in.Confidence,
		Suggestions: in.Suggestions,
		Context:     in.Context,
		CourseID:    in.CourseID,
		LessonID:    in.LessonID,
		CreatedAt:   in.CreatedAt.UTC(),
	}
}

func (r InteractionRow) toInteraction() contractx.Interaction {
	return contractx.Interaction{
		ID:          r.ID,
		UserID:      r.UserID,
		AgentName:   r.AgentName,
		AgentType:   contractx.AgentType(r.AgentType),
		Query:       r.Query,
		Response:    r.Response,
		Confidence:  r.Confidence,
		Suggestions: r.Suggestions,
		Context:     r.Context,
		CourseID:    r.CourseID,
		LessonID:    r.LessonID,
		CreatedAt:   r.CreatedAt,
	}
}
