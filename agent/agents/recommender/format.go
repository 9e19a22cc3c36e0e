package recommender

import (
	"fmt"
	"strings"
)

const emptyCatalogText = "I could not find specific courses to recommend right now. I suggest you explore the full catalog."

func formatRecommendations(recs []ScoredCandidate) string {
	if len(recs) == 0 {
		return emptyCatalogText
	}

	var b strings.Builder
	b.WriteString("Personalized recommendations for you:\n\n")
	for i, r := range recs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Course.Title)
		fmt.Fprintf(&b, "   Level: %s\n", r.Course.Level)
		fmt.Fprintf(&b, "   %s\n", r.Reason)
		fmt.Fprintf(&b, "   Score: %.1f/100\n\n", r.Score)
	}
	b.WriteString("Interested in any of these courses? I can give you more details about any of them.")
	return b.String()
}
