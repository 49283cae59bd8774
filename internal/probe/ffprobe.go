// Package probe inspects media containers for quality scoring fallback.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Prober reports the vertical resolution of a video file.
type Prober interface {
	Height(ctx context.Context, path string) (int, error)
}

// ErrNoVideoStream is returned when the container has no video stream.
var ErrNoVideoStream = errors.New("no video stream")

// FFProbe shells out to the ffprobe binary.
type FFProbe struct {
	// Binary overrides the ffprobe executable name. Empty means "ffprobe"
	// from PATH.
	Binary string
}

type probeStream struct {
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type probeResult struct {
	Streams []probeStream `json:"streams"`
}

// Height runs ffprobe against path and returns the height of the first
// video stream.
func (p *FFProbe) Height(ctx context.Context, path string) (int, error) {
	binary := strings.TrimSpace(p.Binary)
	if binary == "" {
		binary = "ffprobe"
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-show_streams",
		"-of", "json",
		"--", path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return 0, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return 0, fmt.Errorf("ffprobe parse: %w", err)
	}

	for _, stream := range result.Streams {
		if strings.EqualFold(stream.CodecType, "video") && stream.Height > 0 {
			return stream.Height, nil
		}
	}
	return 0, ErrNoVideoStream
}
