package thumbnail

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// DefaultOffset is the seek point used when not sampling the midpoint
const DefaultOffset = "00:00:01"

// Mode selects where in the clip the frame is taken
type Mode int

const (
	ModeOffset Mode = iota
	ModeMidpoint
)

// ErrNoDuration marks a clip whose duration could not be read or parsed
var ErrNoDuration = errors.New("unusable duration")

// Batch generates one thumbnail per video in a directory, sequentially
type Batch struct {
	Extractor Extractor
	Logger    *zap.Logger
	Mode      Mode
	Offset    string
	Exclude   []string
	// Timeout bounds a single extraction; zero waits indefinitely
	Timeout time.Duration
}

// Failure records why a single video was skipped
type Failure struct {
	Video string
	Err   error
}

// Report summarizes a batch run
type Report struct {
	Found     int
	Generated []string
	Skipped   []string
	Failures  []Failure
}

// NewBatch creates a Batch with the fixed-offset defaults
func NewBatch(ex Extractor, logger *zap.Logger) *Batch {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Batch{
		Extractor: ex,
		Logger:    logger,
		Mode:      ModeOffset,
		Offset:    DefaultOffset,
	}
}

// Run processes every video in dir. Per-file failures are logged and
// recorded in the report; only an unreadable dir returns an error.
func (b *Batch) Run(ctx context.Context, dir string) (*Report, error) {
	videos, err := ListVideos(dir, b.Exclude)
	if err != nil {
		return nil, err
	}

	report := &Report{Found: len(videos)}
	b.Logger.Info("Found video files to process", zap.Int("count", len(videos)), zap.String("dir", dir))

	for _, video := range videos {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		thumb := OutputName(video)
		outPath := filepath.Join(dir, thumb)
		if fileExists(outPath) {
			b.Logger.Info("Thumbnail already exists", zap.String("video", video))
			report.Skipped = append(report.Skipped, video)
			continue
		}

		b.Logger.Info("Generating thumbnail", zap.String("video", video))
		if err := b.generate(ctx, filepath.Join(dir, video), outPath); err != nil {
			b.Logger.Error("Failed to generate thumbnail", zap.String("video", video), zap.Error(err))
			report.Failures = append(report.Failures, Failure{Video: video, Err: err})
			continue
		}

		b.Logger.Info("Generated thumbnail", zap.String("thumbnail", thumb))
		report.Generated = append(report.Generated, thumb)
	}

	b.Logger.Info("Thumbnail generation completed",
		zap.Int("generated", len(report.Generated)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failed", len(report.Failures)))
	return report, nil
}

func (b *Batch) generate(ctx context.Context, video, out string) error {
	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	at, err := b.seekPoint(ctx, video)
	if err != nil {
		return err
	}
	return b.Extractor.ExtractFrame(ctx, video, out, at)
}

func (b *Batch) seekPoint(ctx context.Context, video string) (string, error) {
	if b.Mode != ModeMidpoint {
		if b.Offset == "" {
			return DefaultOffset, nil
		}
		return b.Offset, nil
	}

	duration, err := b.Extractor.Duration(ctx, video)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDuration, err)
	}
	// A malformed duration parses to zero; sampling 00:00:00 would hide that.
	if ParseTimestamp(duration) <= 0 {
		return "", fmt.Errorf("%w: %q", ErrNoDuration, duration)
	}
	return Midpoint(duration), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
