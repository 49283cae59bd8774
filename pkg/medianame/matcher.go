package medianame

import "github.com/hbollon/go-edlib"

// Match is the best candidate found by MatchTitle together with its
// confidence on a 0-100 scale.
type Match struct {
	Title      string
	Confidence int
}

// MatchTitle fuzzy-matches a query title against candidate names and
// returns the best-scoring candidate. Jaro-Winkler similarity favors
// prefix matches, which suits media titles. Both sides are normalized
// with CleanTitle before comparison; the returned Title is the original
// candidate string.
func MatchTitle(query string, candidates []string) Match {
	best := Match{}
	cleaned := CleanTitle(query)

	for _, candidate := range candidates {
		score := int(edlib.JaroWinklerSimilarity(cleaned, CleanTitle(candidate)) * 100)
		if score > best.Confidence {
			best.Title = candidate
			best.Confidence = score
		}
	}

	return best
}
