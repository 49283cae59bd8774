package processor

import (
	"path/filepath"
	"sort"
	"strings"
)

// langCodes maps language names and 3-letter codes found in subtitle tags
// to the 2-letter codes used in library filenames.
var langCodes = map[string]string{
	"english": "en", "eng": "en",
	"spanish": "es", "spa": "es", "esp": "es",
	"french": "fr", "fre": "fr",
	"german": "de", "ger": "de",
	"italian": "it", "ita": "it",
}

// copySubtitles associates each subtitle with the delivered video whose
// source basename is the longest prefix of the subtitle's basename, then
// renames it `{dest_video_base}.{lang}[.forced|.sdh]{ext}` next to the
// video. Language defaults to "en" when no tag resolves one.
func (p *Processor) copySubtitles(subs []MediaFile, delivered map[string]string) {
	if len(subs) == 0 || len(delivered) == 0 {
		return
	}

	type candidate struct {
		base string
		src  string
	}
	candidates := make([]candidate, 0, len(delivered))
	for src := range delivered {
		name := filepath.Base(src)
		candidates = append(candidates, candidate{
			base: strings.TrimSuffix(name, filepath.Ext(name)),
			src:  src,
		})
	}
	// Longest basename first so the most specific video wins ties.
	sort.Slice(candidates, func(i, j int) bool {
		return len(candidates[i].base) > len(candidates[j].base)
	})

	for _, sub := range subs {
		subBase := strings.TrimSuffix(sub.Name, filepath.Ext(sub.Name))

		var matched *candidate
		for i := range candidates {
			if strings.HasPrefix(subBase, candidates[i].base) {
				matched = &candidates[i]
				break
			}
		}
		if matched == nil {
			p.log.Warn("no matching video for subtitle", "subtitle", sub.Name)
			continue
		}

		lang, marker := subtitleTags(subBase[len(matched.base):])

		destVideo := delivered[matched.src]
		destBase := strings.TrimSuffix(filepath.Base(destVideo), filepath.Ext(destVideo))

		name := destBase + "." + lang + marker + filepath.Ext(sub.Name)
		p.copyIfMissing(sub.Path, filepath.Join(filepath.Dir(destVideo), name))
	}
}

// subtitleTags interprets the dot-separated tag run trailing a subtitle
// basename. Tags are scanned in reverse: "forced"/"sdh" set the marker,
// known language names set the code, and any other 2-3 letter alphabetic
// tag is taken as a literal code.
func subtitleTags(trailer string) (lang, marker string) {
	lang = "en"
	parts := strings.Split(strings.ToLower(trailer), ".")
	for i := len(parts) - 1; i >= 0; i-- {
		tag := parts[i]
		switch {
		case tag == "":
		case tag == "forced" || tag == "sdh":
			marker = "." + tag
		case langCodes[tag] != "":
			lang = langCodes[tag]
		case isAlphaTag(tag):
			lang = tag
		}
	}
	return lang, marker
}

func isAlphaTag(tag string) bool {
	if len(tag) < 2 || len(tag) > 3 {
		return false
	}
	for _, r := range tag {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
