package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmunix/watchrr/internal/metadata"
	"github.com/vmunix/watchrr/pkg/medianame"
)

// processMovie delivers a movie bundle: one destination directory per
// title, with per-edition versioning, extras categories, and subtitles.
func (p *Processor) processMovie(ctx context.Context, bundle *Bundle, rec *metadata.Record) error {
	destDir := filepath.Join(p.cfg.MovieRoot, destDirName(rec))
	if err := ValidatePath(destDir, p.cfg.MovieRoot); err != nil {
		return fmt.Errorf("movie %q: %w", rec.Name, err)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", destDir, err)
	}

	base := fmt.Sprintf("%s (%d)", SanitizeFilename(rec.Name), rec.Year)
	delivered := make(map[string]string)

	for _, f := range bundle.Mains {
		edition := medianame.EditionOf(f.Name)
		if edition != medianame.EditionNone {
			p.repairUnlabeled(destDir, base, edition, f.Path)
		}

		// Re-scan after a possible repair rename.
		versions := p.existingVersions(ctx, destDir, base)
		score := p.qualityScore(ctx, f.Path)
		if best, ok := versions[edition.Key()]; ok && score <= best {
			p.log.Warn("same or better version already in library",
				"file", f.Name,
				"edition", edition.Key().String(),
				"score", score,
				"existing", best)
			continue
		}

		name := base
		// Theatrical is the default and is never spelled out.
		if edition.Key() != medianame.EditionTheatrical {
			name += " " + edition.Label()
		}
		if version := medianame.VersionString(f.Name); version != "" {
			name += " - " + version
		}
		name += filepath.Ext(f.Name)

		dest := filepath.Join(destDir, name)
		delivered[f.Path] = dest
		p.copyIfMissing(f.Path, dest)
	}

	p.copyExtras(bundle.Extras, destDir)
	p.copySubtitles(bundle.Subtitles, delivered)
	return nil
}
