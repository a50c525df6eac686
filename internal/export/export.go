// Package export writes slide handouts as SVG files.
package export

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yildizm/pitchdeck/internal/deck"
	"github.com/yildizm/pitchdeck/internal/logger"
)

// ErrNoOutputDir is returned when Options.Dir is empty
var ErrNoOutputDir = errors.New("export directory is required")

// Options configures a handout export
type Options struct {
	Dir         string
	Width       int
	Height      int
	Concurrency int
	Logger      *logger.Logger
}

// Result describes one written handout
type Result struct {
	Index int
	ID    string
	Path  string
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// FileName returns the handout file name for a slide, e.g. "06-hichat.svg"
func FileName(index int, id string) string {
	id = strings.Trim(unsafeName.ReplaceAllString(id, "-"), "-")
	if id == "" {
		id = "slide"
	}
	return fmt.Sprintf("%02d-%s.svg", index+1, id)
}

// Handouts renders every slide of d into opts.Dir. Slides are written
// concurrently; the first failure cancels the rest.
func Handouts(ctx context.Context, d *deck.Deck, opts Options) ([]Result, error) {
	if opts.Dir == "" {
		return nil, ErrNoOutputDir
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid handout size %dx%d", opts.Width, opts.Height)
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewWithWriter("export", nil, nil)
	}

	if err := os.MkdirAll(opts.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	results := make([]Result, d.Len())

	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i := range d.Slides {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(opts.Dir, FileName(i, d.Slides[i].ID))
			if err := writeHandout(path, d, i, opts.Width, opts.Height); err != nil {
				return fmt.Errorf("slide %d (%s): %w", i+1, d.Slides[i].ID, err)
			}
			log.DebugWithFields("Wrote handout", []logger.Field{logger.F("path", path)})
			results[i] = Result{Index: i, ID: d.Slides[i].ID, Path: path}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info("Exported %d handouts to %s", len(results), opts.Dir)
	return results, nil
}

func writeHandout(path string, d *deck.Deck, index, width, height int) (err error) {
	// #nosec G304 - path is built from the export directory and a sanitised id
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create handout: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close handout: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := RenderSlide(w, d, index, width, height); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write handout: %w", err)
	}
	return nil
}
