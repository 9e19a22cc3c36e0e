package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// TutorKeywords are the question and help words the tutor claims.
	TutorKeywords = []string{
		"qué", "que es", "cómo", "como funciona", "por qué", "explica", "ayuda", "no entiendo",
		"what", "how", "why", "explain", "help", "don't understand",
	}

	// RecommendationKeywords are the phrases the content recommender claims.
	RecommendationKeywords = []string{
		"recomienda", "sugerir", "sugiere", "qué curso", "que curso", "qué estudiar", "que estudiar",
		"próximo", "siguiente", "mejores cursos",
		"recommend", "suggest", "what course", "what should i study", "next course",
	}
)

var (
	recommendationIntent = append(append([]string{}, RecommendationKeywords...),
		"recomendación", "recomendacion", "recommendation",
	)
	tutorialIntent = append(append([]string{}, TutorKeywords...),
		"ejemplo", "tutorial", "enseña", "example", "teach",
	)
)

// IsTutorQuestion reports whether the query is a question or help request
// that is not asking for course recommendations.
func IsTutorQuestion(query string) bool {
	return MatchAny(query, TutorKeywords) && !MatchAny(query, RecommendationKeywords)
}

// IsRecommendation is the manager-level heuristic for recommendation intent.
func IsRecommendation(query string) bool {
	return MatchAny(query, recommendationIntent)
}

// IsTutorial is the manager-level heuristic for explanation intent.
func IsTutorial(query string) bool {
	return MatchAny(query, tutorialIntent)
}

// MatchAny reports whether any keyword occurs in the lower-cased query starting
// at a word boundary. The keyword may end inside a word, so stems match inflections.
func MatchAny(query string, keywords []string) bool {
	q := strings.ToLower(query)
	for _, kw := range keywords {
		if matchAt(q, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func matchAt(q, kw string) bool {
	if kw == "" {
		return false
	}
	offset := 0
	for {
		idx := strings.Index(q[offset:], kw)
		if idx < 0 {
			return false
		}
		pos := offset + idx
		if pos == 0 {
			return true
		}
		prev, _ := utf8.DecodeLastRuneInString(q[:pos])
		if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
			return true
		}
		offset = pos + len(kw)
	}
}
