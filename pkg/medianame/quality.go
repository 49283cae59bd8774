package medianame

import "strings"

// Resolution tiers. The tier plus a source bonus forms a total order used
// to arbitrate upgrades within one edition.
const (
	TierSD   = 100
	Tier720  = 200
	Tier1080 = 300
	Tier2160 = 400
)

// ScoreName returns the resolution tier encoded in the filename, or 0 when
// no resolution keyword is present (callers may fall back to probing the
// actual video stream).
func ScoreName(name string) int {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "2160p"), strings.Contains(lower, "4k"):
		return Tier2160
	case strings.Contains(lower, "1080p"):
		return Tier1080
	case strings.Contains(lower, "720p"):
		return Tier720
	case strings.Contains(lower, "480p"), strings.Contains(lower, "sd"):
		return TierSD
	default:
		return 0
	}
}

// ScoreHeight maps a probed pixel height to the same resolution tiers.
func ScoreHeight(height int) int {
	switch {
	case height >= 2160:
		return Tier2160
	case height >= 1080:
		return Tier1080
	case height >= 720:
		return Tier720
	case height > 0:
		return TierSD
	default:
		return 0
	}
}

// SourceBonus returns the source-type bonus for the filename. Priority
// order: remux > bluray > web > hdtv; no match adds nothing.
func SourceBonus(name string) int {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "remux"):
		return 50
	case strings.Contains(lower, "bluray"):
		return 45
	case strings.Contains(lower, "web-dl"), strings.Contains(lower, "webrip"):
		return 40
	case strings.Contains(lower, "hdtv"):
		return 20
	default:
		return 0
	}
}

// resolutionTags and sourceTags map keywords to the human-readable labels
// used by VersionString. First match wins, so order is significant.
var resolutionTags = []struct{ keyword, tag string }{
	{"2160p", "4K"},
	{"4k", "4K"},
	{"1080p", "1080p"},
	{"720p", "720p"},
	{"576p", "576p"},
	{"480p", "480p"},
	{"dvd", "DVD"},
}

var sourceTags = []struct{ keyword, tag string }{
	{"remux", "Remux"},
	{"bluray", "BluRay"},
	{"web-dl", "WEB-DL"},
	{"webdl", "WEB-DL"},
	{"webrip", "WEBRip"},
	{"hdtv", "HDTV"},
	{"dvdrip", "DVDRip"},
}

// VersionString builds a human version label like "1080p - BluRay" from
// the first resolution and first source keyword found in the name. Either
// part may be absent; both absent yields "".
func VersionString(name string) string {
	lower := strings.ToLower(name)
	var tags []string
	for _, r := range resolutionTags {
		if strings.Contains(lower, r.keyword) {
			tags = append(tags, r.tag)
			break
		}
	}
	for _, s := range sourceTags {
		if strings.Contains(lower, s.keyword) {
			tags = append(tags, s.tag)
			break
		}
	}
	return strings.Join(tags, " - ")
}
