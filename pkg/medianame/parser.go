// Package medianame extracts title, year, season/episode, edition, and
// quality information from media file and directory names.
package medianame

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ParsedName holds the fields extracted from a file or directory name.
// Zero values mean the field was not present; an empty Title means the
// name carried no usable context, which callers must handle themselves.
type ParsedName struct {
	Title        string
	Year         int
	Season       int
	StartEpisode int
	EndEpisode   int
}

var (
	yearRe       = regexp.MustCompile(`\b(19[89]\d|20\d\d)\b`)
	seasonEpRe   = regexp.MustCompile(`(?i)[._ -]?S(\d{1,2})[._ -]?E(\d{1,2})(?:[._ -]?E(\d{1,2}))?`)
	seasonOnlyRe = regexp.MustCompile(`(?i)[._ -]?S(\d{1,2})\b`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

var separators = strings.NewReplacer(".", " ", "_", " ")

// Parse extracts media information from a file or directory name. The
// extension is stripped and dots/underscores are treated as separators.
// The title is everything before the first year or season/episode anchor;
// when both anchors are present the earlier one cuts the title, with the
// year winning a positional tie. Unparseable input is not an error.
func Parse(name string) ParsedName {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	clean := separators.Replace(base)

	var p ParsedName

	titleEnd := len(clean)

	if loc := yearRe.FindStringIndex(clean); loc != nil {
		p.Year = atoi(clean[loc[0]:loc[1]])
		titleEnd = loc[0]
	}

	if m := seasonEpRe.FindStringSubmatchIndex(clean); m != nil {
		p.Season = atoi(group(clean, m, 1))
		p.StartEpisode = atoi(group(clean, m, 2))
		if g := group(clean, m, 3); g != "" {
			p.EndEpisode = atoi(g)
		}
		if m[0] < titleEnd {
			titleEnd = m[0]
		}
	} else if m := seasonOnlyRe.FindStringSubmatchIndex(clean); m != nil {
		p.Season = atoi(group(clean, m, 1))
		if m[0] < titleEnd {
			titleEnd = m[0]
		}
	}

	title := strings.TrimSpace(clean[:titleEnd])
	p.Title = multiSpace.ReplaceAllString(title, " ")

	return p
}

// HasEpisode reports whether the name carried a full SxxEyy token.
func (p ParsedName) HasEpisode() bool {
	return p.Season > 0 && p.StartEpisode > 0
}

// group returns the nth submatch from a SubmatchIndex result, or "".
func group(s string, m []int, n int) string {
	if 2*n+1 >= len(m) || m[2*n] < 0 {
		return ""
	}
	return s[m[2*n]:m[2*n+1]]
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
