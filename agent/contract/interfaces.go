package contract

import "context"

// Responder turns a Request into a Response for one category of intent.
type Responder interface {
	Info() Descriptor
	// CanHandle must be cheap and must not perform I/O.
	CanHandle(req Request) bool
	Process(ctx context.Context, req Request) (Response, error)
}

// CatchAll claims every request. Responders that answer whatever reaches them
// embed it instead of writing their own CanHandle.
type CatchAll struct{}

func (CatchAll) CanHandle(Request) bool {
	return true
}

// RecordStore is the read side of the learning records. Empty results are valid.
type RecordStore interface {
	// ListProgress returns progress rows for the user, limited to courseID when it is not empty.
	ListProgress(ctx context.Context, userID string, courseID string) ([]ProgressRecord, error)
	ListEnrollments(ctx context.Context, userID string) ([]EnrollmentRecord, error)
	// ListCandidateCourses returns published courses the user is not enrolled in.
	ListCandidateCourses(ctx context.Context, userID string) ([]CourseRecord, error)
}

type InteractionLog interface {
	Record(ctx context.Context, in Interaction) error
}

type InteractionHistory interface {
	History(ctx context.Context, userID string, limit int) ([]Interaction, error)
}
