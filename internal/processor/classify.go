package processor

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/watchrr/pkg/medianame"
)

var videoExtensions = map[string]bool{
	".mp4": true,
	".mkv": true,
	".avi": true,
	".mov": true,
	".flv": true,
	".wmv": true,
}

var subtitleExtensions = map[string]bool{
	".srt": true,
	".vtt": true,
	".ass": true,
	".ssa": true,
	".sub": true,
}

// IsVideoFile reports whether name has a recognized video extension.
func IsVideoFile(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsSubtitleFile reports whether name has a recognized subtitle extension.
func IsSubtitleFile(name string) bool {
	return subtitleExtensions[strings.ToLower(filepath.Ext(name))]
}

// extrasCategories maps filename keywords to Plex extras directory names.
// Checked in order; "behindthescenes" must precede "scene".
var extrasCategories = []struct{ keyword, dir string }{
	{"featurette", "Featurettes"},
	{"behindthescenes", "Behind The Scenes"},
	{"deleted", "Deleted Scenes"},
	{"interview", "Interviews"},
	{"scene", "Scenes"},
	{"short", "Shorts"},
	{"trailer", "Trailers"},
	{"gag", "Featurettes"},
	{"bloopers", "Featurettes"},
	{"vfx", "Featurettes"},
}

// ExtraCategory returns the extras directory name for a video filename, or
// "" when the file is a main feature. Matching ignores case, spaces,
// hyphens and underscores so "Behind the Scenes.mkv" and
// "behind-the-scenes.mkv" classify alike.
func ExtraCategory(name string) string {
	folded := strings.ToLower(filepath.Base(name))
	folded = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(folded)
	for _, c := range extrasCategories {
		if strings.Contains(folded, c.keyword) {
			return c.dir
		}
	}
	return ""
}

// MediaFile is a single file discovered inside a bundle.
type MediaFile struct {
	Path string
	Name string
}

// Bundle is the classified content of a watched item: a directory tree or
// a single file dropped at the watch root.
type Bundle struct {
	Root      string
	Mains     []MediaFile
	Extras    []MediaFile
	Subtitles []MediaFile
}

// Classify walks path and buckets every file by role. Returns ErrNoMedia
// when neither main nor extra videos are present.
func Classify(path string) (*Bundle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	b := &Bundle{Root: path}
	add := func(p, name string) {
		f := MediaFile{Path: p, Name: name}
		switch {
		case IsVideoFile(name) && ExtraCategory(name) != "":
			b.Extras = append(b.Extras, f)
		case IsVideoFile(name):
			b.Mains = append(b.Mains, f)
		case IsSubtitleFile(name):
			b.Subtitles = append(b.Subtitles, f)
		}
	}

	if !info.IsDir() {
		add(path, info.Name())
	} else {
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if os.IsNotExist(err) {
					return nil
				}
				return err
			}
			if !d.IsDir() {
				add(p, d.Name())
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(b.Mains) == 0 && len(b.Extras) == 0 {
		return nil, ErrNoMedia
	}
	return b, nil
}

// SeriesHint reports whether the bundle looks like TV content: the bundle
// name or any main video parses a season.
func (b *Bundle) SeriesHint() bool {
	if medianame.Parse(filepath.Base(b.Root)).Season > 0 {
		return true
	}
	for _, f := range b.Mains {
		if medianame.Parse(f.Name).Season > 0 {
			return true
		}
	}
	return false
}
