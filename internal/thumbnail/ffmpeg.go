package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Extractor pulls still frames out of video files
type Extractor interface {
	// Duration returns the clip length as hh:mm:ss.fraction
	Duration(ctx context.Context, video string) (string, error)
	// ExtractFrame writes the frame at timestamp to out as a JPEG
	ExtractFrame(ctx context.Context, video, out, at string) error
}

// FFmpeg is the Extractor backed by the ffmpeg and ffprobe binaries
type FFmpeg struct {
	FFmpegPath  string
	FFprobePath string
}

// NewFFmpeg looks both binaries up on PATH by name
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{FFmpegPath: "ffmpeg", FFprobePath: "ffprobe"}
}

// Duration asks ffprobe for the container duration in sexagesimal form
func (f *FFmpeg) Duration(ctx context.Context, video string) (string, error) {
	out, err := run(ctx, f.FFprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		"-sexagesimal",
		video,
	)
	if err != nil {
		return "", fmt.Errorf("ffprobe %s: %w", video, err)
	}
	return strings.TrimSpace(out), nil
}

// ExtractFrame seeks to at and writes a single high quality frame
func (f *FFmpeg) ExtractFrame(ctx context.Context, video, out, at string) error {
	if _, err := run(ctx, f.FFmpegPath,
		"-ss", at,
		"-i", video,
		"-vframes", "1",
		"-q:v", "2",
		out,
	); err != nil {
		return fmt.Errorf("ffmpeg %s: %w", video, err)
	}
	return nil
}

func run(ctx context.Context, bin string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := lastLine(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return stdout.String(), nil
}

// lastLine keeps error output short; ffmpeg prints its banner first
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
