package processor

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/watchrr/pkg/medianame"
)

// qualityScore computes the upgrade-decision score for a video file:
// resolution tier from the filename, falling back to a container probe
// when no keyword matches, plus the source bonus. Probe failures degrade
// to a tier of zero.
func (p *Processor) qualityScore(ctx context.Context, path string) int {
	name := filepath.Base(path)
	score := medianame.ScoreName(name)
	if score == 0 && p.prober != nil {
		height, err := p.prober.Height(ctx, path)
		if err != nil {
			p.log.Debug("probe failed", "path", path, "error", err)
		} else {
			score = medianame.ScoreHeight(height)
		}
	}
	return score + medianame.SourceBonus(name)
}

// existingVersions scans dir for delivered video files sharing base and
// returns the best score seen per edition.
func (p *Processor) existingVersions(ctx context.Context, dir, base string) map[medianame.Edition]int {
	versions := make(map[medianame.Edition]int)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return versions
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, base) || !IsVideoFile(name) {
			continue
		}
		edition := medianame.EditionOf(name).Key()
		score := p.qualityScore(ctx, filepath.Join(dir, name))
		if score > versions[edition] {
			versions[edition] = score
		}
	}
	return versions
}

// repairUnlabeled fixes a mislabeled destination: when the incoming file
// carries an explicit edition and dir holds an unlabeled file of exactly
// the same byte size under the same base, that file is the same content
// missing its tag. It is renamed in place rather than duplicated.
func (p *Processor) repairUnlabeled(dir, base string, edition medianame.Edition, srcPath string) {
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, base) || !IsVideoFile(name) {
			continue
		}
		if medianame.EditionOf(name) != medianame.EditionNone {
			continue
		}

		unlabeled := filepath.Join(dir, name)
		info, err := os.Stat(unlabeled)
		if err != nil || info.Size() != srcInfo.Size() {
			continue
		}

		repaired := filepath.Join(dir, base+" "+edition.Label()+filepath.Ext(name))
		if _, err := os.Stat(repaired); err == nil {
			continue
		}
		if err := os.Rename(unlabeled, repaired); err != nil {
			p.log.Error("repair rename failed", "from", unlabeled, "to", repaired, "error", err)
			continue
		}
		p.log.Info("corrected misnamed destination file",
			"from", name, "to", filepath.Base(repaired))
		return
	}
}
