package records

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
	"github.com/uptrace/bun"
)

const defaultHistoryLimit = 20

var (
	_ contractx.RecordStore        = (*Store)(nil)
	_ contractx.InteractionLog     = (*Store)(nil)
	_ contractx.InteractionHistory = (*Store)(nil)
)

// Store reads learning records and persists agent interactions through bun.
type Store struct {
	db bun.IDB
}

func NewStore(db bun.IDB) *Store {
	return &Store{db: db}
}

func (s *Store) ListProgress(ctx context.Context, userID string, courseID string) ([]contractx.ProgressRecord, error) {
	var rows []Progress
	q := s.db.NewSelect().
		Model(&rows).
		ColumnExpr("p.*").
		ColumnExpr("l.course_id AS course_id").
		Join("LEFT JOIN lessons AS l ON l.id = p.lesson_id").
		Where("p.user_id = ?", userID).
		OrderExpr("p.updated_at ASC, p.id ASC")
	if courseID = strings.TrimSpace(courseID); courseID != "" {
		q = q.Where("l.course_id = ?", courseID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	out := make([]contractx.ProgressRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRecord())
	}
	return out, nil
}

func (s *Store) ListEnrollments(ctx context.Context, userID string) ([]contractx.EnrollmentRecord, error) {
	var enrollments []Enrollment
	if err := s.db.NewSelect().
		Model(&enrollments).
		Where("e.user_id = ?", userID).
		OrderExpr("e.enrolled_at ASC, e.id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	if len(enrollments) == 0 {
		return []contractx.EnrollmentRecord{}, nil
	}

	ids := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		ids = append(ids, e.CourseID)
	}

	var courses []Course
	if err := s.courseQuery(&courses).
		Where("c.id IN (?)", bun.In(ids)).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("load enrolled courses: %w", err)
	}
	byID := make(map[string]Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	out := make([]contractx.EnrollmentRecord, 0, len(enrollments))
	for _, e := range enrollments {
		course, ok := byID[e.CourseID]
		if !ok {
			course = Course{ID: e.CourseID}
		}
		out = append(out, contractx.EnrollmentRecord{
			UserID:     e.UserID,
			CourseID:   e.CourseID,
			Course:     course.toRecord(),
			EnrolledAt: e.EnrolledAt,
		})
	}
	return out, nil
}

func (s *Store) ListCandidateCourses(ctx context.Context, userID string) ([]contractx.CourseRecord, error) {
	var courses []Course
	if err := s.courseQuery(&courses).
		Where("c.is_published = ?", true).
		Where("NOT EXISTS (SELECT 1 FROM enrollments AS ue WHERE ue.course_id = c.id AND ue.user_id = ?)", userID).
		OrderExpr("c.id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("list candidate courses: %w", err)
	}

	out := make([]contractx.CourseRecord, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.toRecord())
	}
	return out, nil
}

func (s *Store) Record(ctx context.Context, in contractx.Interaction) error {
	if _, err := s.db.NewInsert().
		Model(interactionRow(in)).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx); err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// History returns the latest interactions of a user, newest first.
func (s *Store) History(ctx context.Context, userID string, limit int) ([]contractx.Interaction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	var rows []InteractionRow
	if err := s.db.NewSelect().
		Model(&rows).
		Where("ai.user_id = ?", userID).
		OrderExpr("ai.created_at DESC, ai.id DESC").
		Limit(limit).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	out := make([]contractx.Interaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toInteraction())
	}
	return out, nil
}

func (s *Store) courseQuery(courses *[]Course) *bun.SelectQuery {
	return s.db.NewSelect().
		Model(courses).
		ColumnExpr("c.*").
		ColumnExpr("COALESCE(u.first_name || ' ' || u.last_name, '') AS instructor_name").
		ColumnExpr("(SELECT COUNT(*) FROM enrollments AS ec WHERE ec.course_id = c.id) AS enrollment_count").
		Join("LEFT JOIN users AS u ON u.id = c.instructor_id")
}
