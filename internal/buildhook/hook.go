package buildhook

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"shivansh.dev/internal/thumbnail"
)

// BatchRunner runs the thumbnail batch over a media directory
type BatchRunner interface {
	Run(ctx context.Context, dir string) (*thumbnail.Report, error)
}

// Hook is the deploy build step that pre-generates thumbnails when ffmpeg
// is available and prints manual instructions when it is not.
type Hook struct {
	Out      io.Writer
	MediaDir string
	Batch    BatchRunner
	// LookPath finds the ffmpeg binary; exec.LookPath by default
	LookPath func(file string) (string, error)

	styles styles
}

type styles struct {
	title lipgloss.Style
	ok    lipgloss.Style
	fail  lipgloss.Style
	dim   lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{title: plain, ok: plain, fail: plain, dim: plain}
	}
	return styles{
		title: lipgloss.NewStyle().Bold(true),
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		fail:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// New creates a Hook writing to stdout, colored when stdout is a terminal
func New(mediaDir string, batch BatchRunner) *Hook {
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return &Hook{
		Out:      os.Stdout,
		MediaDir: mediaDir,
		Batch:    batch,
		LookPath: exec.LookPath,
		styles:   newStyles(color),
	}
}

func (h *Hook) println(style lipgloss.Style, s string) {
	if s == "" {
		fmt.Fprintln(h.Out)
		return
	}
	fmt.Fprintln(h.Out, style.Render(s))
}

// Run performs the hook. A missing ffmpeg is not an error; only a batch
// that cannot start is.
func (h *Hook) Run(ctx context.Context) error {
	if h.LookPath == nil {
		h.LookPath = exec.LookPath
	}

	h.println(h.styles.title, "=== Thumbnail Generation for Deployment ===")
	h.println(h.styles.dim, "")
	h.println(h.styles.dim, "Checking for ffmpeg...")

	if _, err := h.LookPath("ffmpeg"); err != nil {
		h.println(h.styles.fail, "✗ ffmpeg not found in build environment")
		h.println(h.styles.dim, "")
		h.printInstructions()
		return nil
	}

	h.println(h.styles.ok, "✓ ffmpeg found")
	h.println(h.styles.dim, "")
	h.println(h.styles.dim, "Generating thumbnails...")

	report, err := h.Batch.Run(ctx, h.MediaDir)
	if err != nil {
		h.println(h.styles.fail, fmt.Sprintf("Error generating thumbnails: %v", err))
		return fmt.Errorf("thumbnail generation: %w", err)
	}

	h.println(h.styles.dim, fmt.Sprintf("%d found, %d generated, %d already present, %d failed",
		report.Found, len(report.Generated), len(report.Skipped), len(report.Failures)))
	for _, f := range report.Failures {
		h.println(h.styles.fail, fmt.Sprintf("  %s: %v", f.Video, f.Err))
	}
	h.println(h.styles.ok, "✓ Thumbnail generation completed")
	return nil
}

func (h *Hook) printInstructions() {
	inst := thumbnail.FallbackInstructions()
	h.println(h.styles.title, inst.Message+".")
	h.println(h.styles.dim, "")
	for _, line := range inst.Instructions {
		h.println(h.styles.dim, line)
	}
}
