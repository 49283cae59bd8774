package medianame

import "strings"

// Edition is a named variant of the same program. It acts as a secondary
// key alongside the program identity: two files with different editions
// are never duplicates of each other, only competitors within one tag.
type Edition int

const (
	// EditionNone means the name carried no edition keyword. Untagged
	// files are filed under Theatrical for versioning purposes.
	EditionNone Edition = iota
	EditionTheatrical
	EditionExtended
	EditionSuperfan
	EditionDirectors
	EditionUncut
	EditionUnrated
	EditionRemastered
	EditionIMAX
)

func (e Edition) String() string {
	switch e {
	case EditionTheatrical:
		return "Theatrical Cut"
	case EditionExtended:
		return "Extended Cut"
	case EditionSuperfan:
		return "Superfan Cut"
	case EditionDirectors:
		return "Director's Cut"
	case EditionUncut:
		return "Uncut"
	case EditionUnrated:
		return "Unrated"
	case EditionRemastered:
		return "Remastered"
	case EditionIMAX:
		return "IMAX"
	default:
		return "none"
	}
}

// Label returns the Plex edition tag, e.g. "{edition-Extended Cut}".
// EditionNone has no label.
func (e Edition) Label() string {
	if e == EditionNone {
		return ""
	}
	return "{edition-" + e.String() + "}"
}

// Key returns the edition used as a versioning key: untagged files
// compete in the Theatrical bucket.
func (e Edition) Key() Edition {
	if e == EditionNone {
		return EditionTheatrical
	}
	return e
}

// editionKeywords is scanned in order; the first substring hit wins.
var editionKeywords = []struct {
	keyword string
	edition Edition
}{
	{"extended", EditionExtended},
	{"superfan", EditionSuperfan},
	{"director's cut", EditionDirectors},
	{"directors cut", EditionDirectors},
	{"theatrical", EditionTheatrical},
	{"uncut", EditionUncut},
	{"unrated", EditionUnrated},
	{"remastered", EditionRemastered},
	{"imax", EditionIMAX},
}

// EditionOf returns the edition keyword found in the name, or EditionNone.
func EditionOf(name string) Edition {
	lower := separators.Replace(strings.ToLower(name))
	for _, k := range editionKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.edition
		}
	}
	return EditionNone
}
