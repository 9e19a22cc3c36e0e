package records

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Demo identities created by Seed.
const (
	SeedAdminID      = "user-admin"
	SeedInstructorID = "user-instructor"
	SeedStudentID    = "user-student"
)

func intPtr(v int) *int { return &v }

// Seed inserts a small demo catalog. Rows that already exist are left untouched.
func Seed(ctx context.Context, db *bun.DB, now time.Time) error {
	now = now.UTC()

	users := []User{
		{ID: SeedAdminID, Email: "admin@lms.com", Username: "admin", FirstName: "Admin", LastName: "User", Role: "ADMIN", Bio: "Administrador del sistema LMS", CreatedAt: now},
		{ID: SeedInstructorID, Email: "instructor@lms.com", Username: "instructor", FirstName: "Maria", LastName: "Rodriguez", Role: "INSTRUCTOR", Bio: "Experta en desarrollo web y tecnologías modernas", CreatedAt: now},
		{ID: SeedStudentID, Email: "student@lms.com", Username: "student", FirstName: "Juan", LastName: "Pérez", Role: "STUDENT", Bio: "Estudiante entusiasta de programación", CreatedAt: now},
	}

	courses := []Course{
		{
			ID:           "course-1",
			Title:        "Introducción a JavaScript",
			Description:  "Aprende los fundamentos de JavaScript desde cero.",
			Category:     "Programación",
			Level:        "BEGINNER",
			Duration:     intPtr(1200),
			IsPublished:  true,
			InstructorID: SeedInstructorID,
			CreatedAt:    now,
		},
		{
			ID:           "course-2",
			Title:        "React Avanzado",
			Description:  "Domina React con hooks, context, y patrones avanzados.",
			Category:     "Desarrollo Web",
			Level:        "ADVANCED",
			Duration:     intPtr(1800),
			IsPublished:  true,
			InstructorID: SeedInstructorID,
			CreatedAt:    now,
		},
		{
			ID:           "course-3",
			Title:        "Node.js y APIs REST",
			Description:  "Construye servicios backend con Node.js.",
			Category:     "Programación",
			Level:        "INTERMEDIATE",
			Duration:     intPtr(240),
			IsPublished:  true,
			InstructorID: SeedInstructorID,
			CreatedAt:    now,
		},
		{
			ID:           "course-4",
			Title:        "Borrador: TypeScript",
			Description:  "Curso en preparación.",
			Category:     "Programación",
			Level:        "BEGINNER",
			IsPublished:  false,
			InstructorID: SeedInstructorID,
			CreatedAt:    now,
		},
	}

	lessons := []Lesson{
		{ID: "lesson-1", CourseID: "course-1", Title: "Variables y Tipos de Datos", Duration: 30, Position: 1},
		{ID: "lesson-2", CourseID: "course-1", Title: "Operadores en JavaScript", Duration: 25, Position: 2},
	}

	enrollments := []Enrollment{
		{ID: "enrollment-1", UserID: SeedStudentID, CourseID: "course-1", Status: "ACTIVE", Progress: 25, EnrolledAt: now},
	}

	progress := []Progress{
		{ID: "progress-1", UserID: SeedStudentID, LessonID: "lesson-1", Percentage: 100, TimeSpent: 30, IsCompleted: true, UpdatedAt: now},
		{ID: "progress-2", UserID: SeedStudentID, LessonID: "lesson-2", Percentage: 50, TimeSpent: 15, IsCompleted: false, UpdatedAt: now.Add(time.Minute)},
	}

	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		inserts := []struct {
			name  string
			model any
		}{
			{"users", &users},
			{"courses", &courses},
			{"lessons", &lessons},
			{"enrollments", &enrollments},
			{"progress", &progress},
		}
		for _, ins := range inserts {
			if _, err := tx.NewInsert().Model(ins.model).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
				return fmt.Errorf("seed %s: %w", ins.name, err)
			}
		}
		return nil
	})
}
