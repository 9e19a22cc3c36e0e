package records

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

var models = []any{
	(*User)(nil),
	(*Course)(nil),
	(*Lesson)(nil),
	(*Enrollment)(nil),
	(*Progress)(nil),
	(*InteractionRow)(nil),
}

// Migrate creates the tables and indexes when they do not exist yet.
func Migrate(ctx context.Context, db bun.IDB) error {
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}

	indexes := []struct {
		model   any
		name    string
		columns []string
	}{
		{(*Lesson)(nil), "lessons_course_idx", []string{"course_id"}},
		{(*Progress)(nil), "progress_user_idx", []string{"user_id"}},
		{(*Enrollment)(nil), "enrollments_course_idx", []string{"course_id"}},
		{(*InteractionRow)(nil), "ai_interactions_user_created_idx", []string{"user_id", "created_at"}},
	}
	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}
	return nil
}
