// Package render writes lockfile entries and dependency chains as terminal text.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/domain"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/ui/output"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/ui/style"
)

// Renderer prints read-only views of a Lockfile.
type Renderer struct {
	w      io.Writer
	styles style.Styles
}

// NewRenderer creates a Renderer writing to w. A nil writer means os.Stdout.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	lg := lipgloss.NewRenderer(w)
	lg.SetColorProfile(output.ColorProfile())
	return &Renderer{w: w, styles: style.NewStyles(lg)}
}

// SummaryInfo describes where a Lockfile came from.
type SummaryInfo struct {
	Path     string
	Lockfile *domain.Lockfile
}

// Summary prints the counts of a Lockfile.
func (r *Renderer) Summary(info SummaryInfo) error {
	lock := info.Lockfile
	rows := [][2]string{
		{"Lockfile", info.Path},
		{"Digest", lock.Digest},
		{"Importers", fmt.Sprint(len(lock.Importers()))},
		{"Packages", fmt.Sprint(len(lock.Packages()))},
		{"Edges", fmt.Sprint(lock.EdgeCount())},
	}

	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%s %s\n", padded(r.styles.Dim, row[0], 10), row[1])
	}
	return r.write(b.String())
}

// Entries prints one line per entry with its identifier and source line.
func (r *Renderer) Entries(entries []*domain.Entry) error {
	if len(entries) == 0 {
		return r.write(r.styles.Dim.Render("no entries") + "\n")
	}

	width := 0
	for _, e := range entries {
		width = max(width, len(e.DisplayText()))
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s %s\n",
			padded(r.kindStyle(e), e.DisplayText(), width),
			e.ID().String(),
			r.styles.Dim.Render(lineRef(e.Line())))
	}
	return r.write(b.String())
}

// Entry prints the header of an entry followed by its dependencies and referencers.
func (r *Renderer) Entry(e *domain.Entry) error {
	var b strings.Builder

	b.WriteString(r.styles.Heading.Render(e.DisplayText()) + "\n")
	fields := [][2]string{
		{"id", e.ID().String()},
		{"kind", e.Kind().String()},
		{"folder", e.FolderPath()},
		{"line", fmt.Sprint(e.Line())},
	}
	if e.PeerSuffix() != "" {
		fields = append(fields, [2]string{"peers", e.PeerSuffix()})
	}
	for _, f := range fields {
		fmt.Fprintf(&b, "  %s %s\n", padded(r.styles.Dim, f[0], 6), f[1])
	}

	deps := e.Dependencies()
	fmt.Fprintf(&b, "\n%s\n", r.styles.Heading.Render(fmt.Sprintf("Dependencies (%d)", len(deps))))
	for _, d := range deps {
		b.WriteString(r.edge(style.Arrow, d.Resolved(), d) + "\n")
	}

	refs := e.Referencers()
	fmt.Fprintf(&b, "\n%s\n", r.styles.Heading.Render(fmt.Sprintf("Referencers (%d)", len(refs))))
	for _, d := range refs {
		b.WriteString(r.edge(style.Back, d.Containing(), d) + "\n")
	}

	return r.write(b.String())
}

// Why prints the chains that lead from projects to target.
func (r *Renderer) Why(target *domain.Entry, chains [][]*domain.Entry) error {
	if len(chains) == 0 {
		return r.write(fmt.Sprintf("No project depends on %s\n", r.name(target, target.DisplayText())))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.styles.Heading.Render(
		fmt.Sprintf("%s is required by %d %s", target.DisplayText(), len(chains), plural(len(chains), "project", "projects"))))
	for _, chain := range chains {
		names := make([]string, 0, len(chain))
		for _, e := range chain {
			names = append(names, r.name(e, e.DisplayText()))
		}
		fmt.Fprintf(&b, "  %s\n", strings.Join(names, " "+style.Arrow+" "))
	}
	return r.write(b.String())
}

// Status prints the one-line state of a watch session.
func (r *Renderer) Status(lock *domain.Lockfile, loadedAgo string) error {
	return r.write(fmt.Sprintf("%s %s, %s, %s %s\n",
		r.styles.Package.Render(style.Dot),
		count(len(lock.Importers()), "importer", "importers"),
		count(len(lock.Packages()), "package", "packages"),
		count(lock.EdgeCount(), "edge", "edges"),
		r.styles.Dim.Render("(digest "+lock.Digest+", loaded "+loadedAgo+")")))
}

// edge prints one dependency line pointing at other.
func (r *Renderer) edge(icon string, other *domain.Entry, d *domain.Dependency) string {
	line := fmt.Sprintf("  %s %s %s: %s %s",
		icon,
		r.name(other, other.DisplayText()),
		d.PackageName(),
		d.VersionSpec(),
		r.styles.Dim.Render(lineRef(d.Line())))
	if d.DevDependency() {
		line += " " + r.styles.Dev.Render("[dev]")
	}
	return line
}

func (r *Renderer) name(e *domain.Entry, text string) string {
	return r.kindStyle(e).Render(text)
}

func (r *Renderer) kindStyle(e *domain.Entry) lipgloss.Style {
	if e.ID().IsProject() {
		return r.styles.Project
	}
	return r.styles.Package
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.w, s)
	return err
}

// padded renders s and pads it with spaces to width, measured on the unstyled text.
func padded(st lipgloss.Style, s string, width int) string {
	out := st.Render(s)
	if len(s) >= width {
		return out
	}
	return out + strings.Repeat(" ", width-len(s))
}

func lineRef(line int) string {
	return fmt.Sprintf("(line %d)", line)
}

func count(n int, one, many string) string {
	return fmt.Sprintf("%d %s", n, plural(n, one, many))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
