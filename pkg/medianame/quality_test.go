package medianame

import "testing"

func TestScoreName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"4k", "Movie.2160p.mkv", Tier2160},
		{"4k alias", "Movie.4K.HDR.mkv", Tier2160},
		{"1080p", "Movie.1080p.mkv", Tier1080},
		{"720p", "Movie.720p.mkv", Tier720},
		{"480p", "Movie.480p.mkv", TierSD},
		{"none", "Movie.mkv", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreName(tt.in); got != tt.want {
				t.Errorf("ScoreName(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestScoreHeight(t *testing.T) {
	tests := []struct {
		height int
		want   int
	}{
		{2160, Tier2160},
		{1080, Tier1080},
		{800, Tier720},
		{480, TierSD},
		{0, 0},
	}

	for _, tt := range tests {
		if got := ScoreHeight(tt.height); got != tt.want {
			t.Errorf("ScoreHeight(%d) = %d, want %d", tt.height, got, tt.want)
		}
	}
}

// Quality ordering across resolution and source combinations must form a
// total order usable for upgrade decisions.
func TestQualityOrdering(t *testing.T) {
	score := func(name string) int { return ScoreName(name) + SourceBonus(name) }

	uhdRemux := score("Movie.2160p.Remux.mkv")
	fhdBluray := score("Movie.1080p.BluRay.mkv")
	hd := score("Movie.720p.mkv")

	if !(uhdRemux > fhdBluray && fhdBluray > hd) {
		t.Errorf("ordering broken: 2160p remux %d, 1080p bluray %d, 720p %d",
			uhdRemux, fhdBluray, hd)
	}
}

func TestSourceBonus_Priority(t *testing.T) {
	// remux outranks bluray even when both keywords appear.
	if got := SourceBonus("Movie.1080p.BluRay.Remux.mkv"); got != 50 {
		t.Errorf("SourceBonus = %d, want 50", got)
	}
	if got := SourceBonus("Movie.HDTV.mkv"); got != 20 {
		t.Errorf("SourceBonus = %d, want 20", got)
	}
	if got := SourceBonus("Movie.mkv"); got != 0 {
		t.Errorf("SourceBonus = %d, want 0", got)
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Movie.2020.1080p.BluRay.x264.mkv", "1080p - BluRay"},
		{"Movie.2020.2160p.WEB-DL.mkv", "4K - WEB-DL"},
		{"Movie.2020.720p.mkv", "720p"},
		{"Movie.2020.HDTV.mkv", "HDTV"},
		{"Movie.2020.mkv", ""},
	}

	for _, tt := range tests {
		if got := VersionString(tt.in); got != tt.want {
			t.Errorf("VersionString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
