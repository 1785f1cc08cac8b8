package fsusage

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type OutputMode int

const (
	ModeVerbose OutputMode = iota
	ModeQuiet
	ModeJSON
)

func (m OutputMode) String() string {
	switch m {
	case ModeQuiet:
		return "quiet"
	case ModeJSON:
		return "json"
	default:
		return "verbose"
	}
}

// DisplayConfig is built once from the command line and never changed.
type DisplayConfig struct {
	Color    bool
	Mode     OutputMode
	PseudoFS bool
}

// fieldColor is the 256-colour palette index used for dynamic fields.
const fieldColor = "14"

// Renderer writes mounts in one of the three output modes. Begin must be
// called before the first Render and End after the last one.
type Renderer struct {
	w     io.Writer
	cfg   DisplayConfig
	style lipgloss.Style
	count int
}

func NewRenderer(w io.Writer, cfg DisplayConfig) *Renderer {
	r := &Renderer{w: w, cfg: cfg}
	if cfg.Color {
		// The profile is forced: colour was asked for explicitly, whatever
		// the output is connected to.
		lr := lipgloss.NewRenderer(w)
		lr.SetColorProfile(termenv.ANSI256)
		r.style = lr.NewStyle().
			Foreground(lipgloss.Color(fieldColor)).
			TabWidth(lipgloss.NoTabConversion)
	}
	return r
}

func (r *Renderer) Begin() error {
	if r.cfg.Mode != ModeJSON {
		return nil
	}
	_, err := io.WriteString(r.w, "[")
	return err
}

func (r *Renderer) End() error {
	if r.cfg.Mode != ModeJSON {
		return nil
	}
	_, err := io.WriteString(r.w, "]\n")
	return err
}

// Render writes one mount. Callers skip mounts without blocks.
func (r *Renderer) Render(fs FileSystem, usage FileSystemUsage) error {
	var b strings.Builder

	switch r.cfg.Mode {
	case ModeJSON:
		r.writeJSON(&b, fs, usage)
	case ModeQuiet:
		fmt.Fprintf(&b, "%s mounted at %s, ", r.field(fs.DevName), r.field(fs.DirName))
		r.writeUsage(&b, usage.Total, usage.Free, usage.Avail, usage.BlockSize)
		b.WriteString("\n")
	default:
		fmt.Fprintf(&b, "%s mounted at %s\n", r.field(fs.DevName), r.field(fs.DirName))
		fmt.Fprintf(&b, "type: %s, opts: %s\n", r.field(fs.TypeName), r.field(fs.Options))
		if usage.Total > 0 {
			b.WriteString("block usage: ")
			r.writeUsage(&b, usage.Total, usage.Free, usage.Avail, usage.BlockSize)
			b.WriteString("\n")
		}
		if usage.Files > 0 {
			b.WriteString("files usage: ")
			r.writeUsage(&b, usage.Files, usage.FreeFiles, usage.AvailFiles, 1)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	r.count++
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) field(s string) string {
	if !r.cfg.Color {
		return s
	}
	// lipgloss pads every line of a block to the widest one; a mount point
	// may contain a decoded newline, so each line is styled on its own.
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = r.style.Render(line)
	}
	return strings.Join(lines, "\n")
}

// writeUsage writes "<used>/<total> (<percent>%), <total> total, <free> free,
// <avail> available". total must be non-zero.
func (r *Renderer) writeUsage(b *strings.Builder, total, free, avail, unit uint64) {
	used := usedOf(total, free)
	totalStr := r.field(FormatSize(total, unit))
	fmt.Fprintf(b, "%s/%s (%s), %s total, %s free, %s available",
		r.field(FormatSize(used, unit)),
		totalStr,
		r.field(FormatPercent(used, total)+"%"),
		totalStr,
		r.field(FormatSize(free, unit)),
		r.field(FormatSize(avail, unit)))
}

func (r *Renderer) writeJSON(b *strings.Builder, fs FileSystem, usage FileSystemUsage) {
	if r.count > 0 {
		b.WriteString(",")
	}

	fmt.Fprintf(b, `{"mnt":{"dir":"%s","fsname":"%s","type":"%s","opts":"%s","freq":%d,"passno":%d}`,
		EscapeJSON(fs.DirName), EscapeJSON(fs.DevName), EscapeJSON(fs.TypeName), EscapeJSON(fs.Options),
		fs.Freq, fs.PassNo)

	b.WriteString(`,"vfs":{"file":`)
	if usage.Files != 0 {
		fmt.Fprintf(b, `{"total":%d,"free":%d,"avail":%d,"used":%d}`,
			usage.Files, usage.FreeFiles, usage.AvailFiles, usage.UsedFiles())
	} else {
		b.WriteString("null")
	}

	// block.total carries the block size, as the established output does.
	b.WriteString(`,"block":`)
	if usage.BlockSize != 0 {
		fmt.Fprintf(b, `{"total":%d,"free":%d,"avail":%d,"used":%d}`,
			usage.BlockSize, usage.Free, usage.Avail, usage.Used())
	} else {
		b.WriteString("null")
	}

	b.WriteString("}}")
}

// EscapeJSON prefixes every '"' and '\' with a backslash. Nothing else is
// escaped.
func EscapeJSON(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
