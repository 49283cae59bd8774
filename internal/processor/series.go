package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmunix/watchrr/internal/metadata"
	"github.com/vmunix/watchrr/pkg/medianame"
)

// processSeries delivers a series bundle. Season and episode are parsed
// from each file individually since a season pack holds many episodes;
// files that do not parse are skipped with a warning.
func (p *Processor) processSeries(ctx context.Context, bundle *Bundle, rec *metadata.Record) error {
	showDir := filepath.Join(p.cfg.SeriesRoot, destDirName(rec))
	if err := ValidatePath(showDir, p.cfg.SeriesRoot); err != nil {
		return fmt.Errorf("series %q: %w", rec.Name, err)
	}

	title := SanitizeFilename(rec.Name)
	delivered := make(map[string]string)

	for _, f := range bundle.Mains {
		parsed := medianame.Parse(f.Name)
		if !parsed.HasEpisode() {
			p.log.Warn("could not parse season/episode, skipping file", "file", f.Name)
			continue
		}

		seasonDir := filepath.Join(showDir, fmt.Sprintf("Season %02d", parsed.Season))
		if err := os.MkdirAll(seasonDir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", seasonDir, err)
		}

		base := fmt.Sprintf("%s (%d) - s%02de%02d", title, rec.Year, parsed.Season, parsed.StartEpisode)
		if parsed.EndEpisode > 0 {
			base += fmt.Sprintf("-e%02d", parsed.EndEpisode)
		}

		edition := medianame.EditionOf(f.Name)
		if edition != medianame.EditionNone {
			p.repairUnlabeled(seasonDir, base, edition, f.Path)
		}

		versions := p.existingVersions(ctx, seasonDir, base)
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
		name += filepath.Ext(f.Name)

		dest := filepath.Join(seasonDir, name)
		delivered[f.Path] = dest
		p.copyIfMissing(f.Path, dest)
	}

	p.copyExtras(bundle.Extras, showDir)
	p.copySubtitles(bundle.Subtitles, delivered)
	return nil
}
