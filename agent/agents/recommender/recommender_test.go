package recommender

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

type fakeRecords struct {
	enrollments []contractx.EnrollmentRecord
	progress    []contractx.ProgressRecord
	candidates  []contractx.CourseRecord
	err         error
}

func (f *fakeRecords) ListProgress(ctx context.Context, userID string, courseID string) ([]contractx.ProgressRecord, error) {
	return f.progress, nil
}

func (f *fakeRecords) ListEnrollments(ctx context.Context, userID string) ([]contractx.EnrollmentRecord, error) {
	return f.enrollments, nil
}

func (f *fakeRecords) ListCandidateCourses(ctx context.Context, userID string) ([]contractx.CourseRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func intPtr(v int) *int { return &v }

func enrollment(courseID, category string) contractx.EnrollmentRecord {
	return contractx.EnrollmentRecord{
		UserID:   "u1",
		CourseID: courseID,
		Course:   contractx.CourseRecord{ID: courseID, Category: category, Level: contractx.LevelBeginner},
	}
}

func TestBuildProfileEmptyHistory(t *testing.T) {
	t.Parallel()

	p := BuildProfile(nil, nil, DefaultSettings())
	assert.Equal(t, contractx.LevelBeginner, p.EstimatedLevel)
	assert.Empty(t, p.InterestedCategories)
	assert.Equal(t, 30.0, p.AvailableTime)
	assert.Equal(t, 0.0, p.CompletionRate)
	assert.Equal(t, 0, p.TotalCourses)
}

func TestBuildProfileLevels(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	high := []contractx.ProgressRecord{{Percentage: 80, TimeSpent: 20}, {Percentage: 90, TimeSpent: 40}}
	mid := []contractx.ProgressRecord{{Percentage: 50, TimeSpent: 10}}

	three := []contractx.EnrollmentRecord{enrollment("c1", "Programming"), enrollment("c2", "Design"), enrollment("c3", "Programming")}
	two := three[:2]

	advanced := BuildProfile(three, high, s)
	assert.Equal(t, contractx.LevelAdvanced, advanced.EstimatedLevel)
	assert.Equal(t, []string{"Programming", "Design"}, advanced.InterestedCategories)
	assert.Equal(t, 30.0, advanced.AvailableTime)
	assert.Equal(t, 85.0, advanced.CompletionRate)

	assert.Equal(t, contractx.LevelIntermediate, BuildProfile(two, high, s).EstimatedLevel)
	assert.Equal(t, contractx.LevelIntermediate, BuildProfile(two, mid, s).EstimatedLevel)
	assert.Equal(t, contractx.LevelBeginner, BuildProfile(three[:1], high, s).EstimatedLevel)
	assert.Equal(t, 10.0, BuildProfile(two, mid, s).AvailableTime)
}

func TestBuildProfileZeroTimeSpentUsesDefaultAvailableTime(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	idle := []contractx.ProgressRecord{{Percentage: 40}, {Percentage: 60}}

	p := BuildProfile([]contractx.EnrollmentRecord{enrollment("c1", "Programming")}, idle, s)
	assert.Equal(t, s.DefaultAvailableTime, p.AvailableTime)
	assert.Equal(t, 50.0, p.CompletionRate)
}

func TestIsLevelAppropriate(t *testing.T) {
	t.Parallel()

	assert.True(t, IsLevelAppropriate(contractx.LevelBeginner, contractx.LevelBeginner))
	assert.True(t, IsLevelAppropriate(contractx.LevelIntermediate, contractx.LevelBeginner))
	assert.False(t, IsLevelAppropriate(contractx.LevelAdvanced, contractx.LevelBeginner))
	assert.False(t, IsLevelAppropriate(contractx.LevelBeginner, contractx.LevelIntermediate))
	assert.True(t, IsLevelAppropriate(contractx.LevelAdvanced, contractx.LevelAdvanced))
	assert.False(t, IsLevelAppropriate(contractx.Level("EXPERT"), contractx.LevelAdvanced))
}

func TestScoreComponents(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	p := Profile{EstimatedLevel: contractx.LevelBeginner, InterestedCategories: []string{"Programming"}, AvailableTime: 30}

	full := contractx.CourseRecord{ID: "a", Category: "Programming", Level: contractx.LevelIntermediate, EnrollmentCount: 250, Duration: intPtr(300)}
	assert.Equal(t, 100.0, Score(full, p, s))

	noDuration := full
	noDuration.Duration = nil
	assert.Equal(t, 90.0, Score(noDuration, p, s))

	tooLong := full
	tooLong.Duration = intPtr(301)
	assert.Equal(t, 90.0, Score(tooLong, p, s))

	twoTiersUp := contractx.CourseRecord{ID: "b", Category: "Art", Level: contractx.LevelAdvanced, EnrollmentCount: 50}
	assert.Equal(t, 10.0, Score(twoTiersUp, p, s))
}

func TestScoreIsMonotonic(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	p := Profile{EstimatedLevel: contractx.LevelIntermediate, InterestedCategories: []string{"Data"}, AvailableTime: 12}
	base := contractx.CourseRecord{ID: "x", Category: "Web", Level: contractx.LevelAdvanced, Duration: intPtr(100)}

	prev := -1.0
	for count := 0; count <= 300; count += 7 {
		c := base
		c.EnrollmentCount = count
		got := Score(c, p, s)
		assert.GreaterOrEqual(t, got, prev, "count=%d", count)
		prev = got
	}

	withCategory := base
	withCategory.Category = "Data"
	assert.GreaterOrEqual(t, Score(withCategory, p, s), Score(base, p, s))
}

func TestRankOrdersAndBreaksTiesById(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.RecommendationCount = 3
	p := BuildProfile(nil, nil, s)

	courses := []contractx.CourseRecord{
		{ID: "c-3", Title: "Tie B", Level: contractx.LevelBeginner},
		{ID: "c-9", Title: "Low", Level: contractx.LevelAdvanced},
		{ID: "c-1", Title: "Tie A", Level: contractx.LevelBeginner},
		{ID: "c-5", Title: "Top", Level: contractx.LevelBeginner, EnrollmentCount: 100},
	}

	first := Rank(courses, p, s)
	require.Len(t, first, 3)
	assert.Equal(t, "c-5", first[0].Course.ID)
	assert.Equal(t, "c-1", first[1].Course.ID)
	assert.Equal(t, "c-3", first[2].Course.ID)
	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i-1].Score, first[i].Score)
	}

	reversed := []contractx.CourseRecord{courses[3], courses[2], courses[1], courses[0]}
	assert.Equal(t, first, Rank(reversed, p, s))
}

func TestReasonText(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	p := Profile{EstimatedLevel: contractx.LevelBeginner, InterestedCategories: []string{"Programming"}}

	all := contractx.CourseRecord{Category: "Programming", Level: contractx.LevelBeginner, EnrollmentCount: 51}
	assert.Equal(t,
		"Recommended because you are interested in Programming, suited to your beginner level, very popular with students",
		reason(all, p, s))

	none := contractx.CourseRecord{Category: "Art", Level: contractx.LevelAdvanced, EnrollmentCount: 50}
	assert.Equal(t, "Might interest you", reason(none, p, s))
}

func TestProcessFormatsRecommendations(t *testing.T) {
	t.Parallel()

	store := &fakeRecords{
		enrollments: []contractx.EnrollmentRecord{enrollment("c0", "Programming")},
		progress:    []contractx.ProgressRecord{{Percentage: 20, TimeSpent: 120}},
		candidates: []contractx.CourseRecord{
			{ID: "c1", Title: "Intro to JavaScript", Category: "Programming", Level: contractx.LevelBeginner, EnrollmentCount: 50, Duration: intPtr(1200)},
			{ID: "c2", Title: "Advanced React", Category: "Programming", Level: contractx.LevelAdvanced, EnrollmentCount: 10},
		},
	}
	rec := New(store)

	resp, err := rec.Process(context.Background(), contractx.Request{UserID: "u1", Query: "recommend me something"})
	require.NoError(t, err)

	assert.Equal(t, 0.9, resp.Confidence)
	assert.Equal(t, []string{"Intro to JavaScript", "Advanced React"}, resp.Suggestions)
	assert.Contains(t, resp.Text, "1. Intro to JavaScript")
	assert.Contains(t, resp.Text, "Score: 90.0/100")
	assert.Contains(t, resp.Text, "2. Advanced React")
	assert.Equal(t, 2, resp.Metadata["total_recommendations"])
	assert.Equal(t, 90.0, resp.Metadata["personalized_score"])
	assert.Equal(t, "BEGINNER", resp.Metadata["estimated_level"])
	assert.Equal(t, Algorithm, resp.Metadata["algorithm"])
	assert.False(t, resp.IsError())
}

func TestProcessEmptyCatalog(t *testing.T) {
	t.Parallel()

	resp, err := New(&fakeRecords{}).Process(context.Background(), contractx.Request{UserID: "u1", Query: "recommend"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Confidence)
	assert.Contains(t, resp.Text, "explore the full catalog")
	assert.Empty(t, resp.Suggestions)
	assert.False(t, resp.IsError())
}

func TestProcessLookupFailure(t *testing.T) {
	t.Parallel()

	resp, err := New(&fakeRecords{err: errors.New("timeout")}).Process(context.Background(), contractx.Request{UserID: "u1", Query: "recommend"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Confidence)
	assert.True(t, resp.IsError())
}

func TestCanHandle(t *testing.T) {
	t.Parallel()

	rec := New(nil)
	assert.True(t, rec.CanHandle(contractx.Request{Query: "¿Qué curso me recomiendas?"}))
	assert.True(t, rec.CanHandle(contractx.Request{Query: "What should I study after Go?"}))
	assert.True(t, rec.CanHandle(contractx.Request{Query: "¿Cuál es el siguiente paso?"}))
	assert.False(t, rec.CanHandle(contractx.Request{Query: "explain generics"}))
}
