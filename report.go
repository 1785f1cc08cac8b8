package fsusage

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Reporter runs one enumerate, match, collect and render pass.
type Reporter struct {
	Source Source
	Config DisplayConfig
	Out    io.Writer
	Err    io.Writer
	Logger zerolog.Logger

	// Textfile, when set, receives Prometheus metrics for every reported
	// mount once the scan completes.
	Textfile string
}

func NewReporter(source Source, cfg DisplayConfig, out, errOut io.Writer) *Reporter {
	return &Reporter{
		Source: source,
		Config: cfg,
		Out:    out,
		Err:    errOut,
		Logger: zerolog.Nop(),
	}
}

// Run reports the mounts matching args, or all of them when args is empty.
// Output is held back until the scan completes, so a mount table or statfs
// failure leaves Out untouched. Selectors that matched nothing are written to
// Err and returned as a *SelectorNotFoundError after the report.
func (r *Reporter) Run(args []string) error {
	list, err := r.Source.ListFileSystems()
	if err != nil {
		var tableErr *MountTableError
		if !errors.As(err, &tableErr) {
			err = &MountTableError{Path: MountsFile, Err: err}
		}
		return err
	}

	entries := Filter(list, r.Config.PseudoFS)
	r.Logger.Debug().
		Int("mounts", len(list)).
		Int("candidates", len(entries)).
		Bool("pseudofs", r.Config.PseudoFS).
		Msg("Read mount table")

	selectors := NewSelectors(args)

	var metrics *Metrics
	if r.Textfile != "" {
		metrics = NewMetrics()
	}

	var buf bytes.Buffer
	renderer := NewRenderer(&buf, r.Config)
	if err := renderer.Begin(); err != nil {
		return err
	}

	for _, fs := range entries {
		if !selectors.ShouldInclude(fs) {
			continue
		}

		usage, err := r.Source.GetFileSystemUsage(fs.DirName)
		if err != nil {
			var statsErr *StatsQueryError
			if !errors.As(err, &statsErr) {
				err = &StatsQueryError{Path: fs.DirName, Err: err}
			}
			return err
		}

		// Zero-block mounts still count towards selectors matched above.
		if usage.Total == 0 {
			r.Logger.Debug().Str("mountpoint", fs.DirName).Msg("Skipping filesystem without blocks")
			continue
		}

		r.Logger.Debug().
			Str("device", fs.DevName).
			Str("mountpoint", fs.DirName).
			Uint64("blocks", usage.Total).
			Uint64("files", usage.Files).
			Msg("Collected filesystem usage")

		if err := renderer.Render(fs, usage); err != nil {
			return err
		}
		if metrics != nil {
			metrics.Observe(fs, usage)
		}
	}

	if err := renderer.End(); err != nil {
		return err
	}
	if _, err := r.Out.Write(buf.Bytes()); err != nil {
		return err
	}

	unmatched := selectors.Unmatched()
	for _, s := range unmatched {
		fmt.Fprintf(r.Err, "Filesystem %s not found\n", s)
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(r.Textfile); err != nil {
			return fmt.Errorf("write textfile %s: %w", r.Textfile, err)
		}
		r.Logger.Debug().Str("path", r.Textfile).Msg("Wrote metrics textfile")
	}

	if len(unmatched) > 0 {
		return &SelectorNotFoundError{Selectors: unmatched}
	}

	return nil
}
