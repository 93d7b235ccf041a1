package clinic

import (
	"flag"
	"fmt"
	"strings"

	"github.com/mfridman/clinic/pkg/textutil"
)

const helpWidth = 80

// Usage renders the command help: the usage line, the help paragraph and one line per option in
// parameter order.
func (c *Command) Usage() string {
	var b strings.Builder

	var options []*Option
	for _, opt := range c.options {
		if opt != nil {
			options = append(options, opt)
		}
	}

	usage := c.executable + " " + c.name
	if len(options) > 0 {
		usage += " [OPTIONS]"
	}
	b.WriteString("Usage:  " + usage + "\n\n")

	writeParagraph(&b, c.help)

	if len(options) > 0 {
		b.WriteString("Options:\n")
		rows := make([][2]string, 0, len(options))
		for _, opt := range options {
			rows = append(rows, [2]string{strings.Join(opt.names, ", "), optionDescription(opt)})
		}
		writeColumns(&b, rows)
	}
	return strings.TrimRight(b.String(), "\n")
}

func optionDescription(opt *Option) string {
	var parts []string
	if opt.help != "" {
		parts = append(parts, opt.help)
	}
	if opt.required {
		parts = append(parts, "(required)")
	}
	if opt.showDefault {
		if def := opt.renderDefault(); def != "" {
			parts = append(parts, fmt.Sprintf("(default %s)", def))
		}
	}
	return strings.Join(parts, " ")
}

// Usage renders the application help: the usage line, the help paragraph and the registered
// commands sorted by name.
func (a *App) Usage() string {
	var b strings.Builder

	name := a.executable()
	usage := name
	if a.Flags != nil {
		usage += " [FLAGS]"
	}
	b.WriteString("Usage:  " + usage + " COMMAND\n\n")

	writeParagraph(&b, a.Help)

	if a.Flags != nil {
		var rows [][2]string
		a.Flags.VisitAll(func(f *flag.Flag) {
			desc := f.Usage
			if f.DefValue != "" && f.DefValue != "false" {
				desc += fmt.Sprintf(" (default %s)", f.DefValue)
			}
			rows = append(rows, [2]string{"-" + f.Name, desc})
		})
		if len(rows) > 0 {
			b.WriteString("Flags:\n")
			writeColumns(&b, rows)
			b.WriteString("\n")
		}
	}

	if sorted := a.Commands(); len(sorted) > 0 {
		rows := make([][2]string, 0, len(sorted))
		for _, c := range sorted {
			rows = append(rows, [2]string{c.name, c.help})
		}
		b.WriteString("Commands:\n")
		writeColumns(&b, rows)
		fmt.Fprintf(&b, "\nRun '%s COMMAND --help' for more information on a command.\n", name)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeParagraph(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	for _, line := range textutil.Wrap(text, helpWidth) {
		b.WriteString(line)
		b.WriteRune('\n')
	}
	b.WriteRune('\n')
}

// writeColumns writes name/description rows with the names padded to a common width and a
// two-space gutter. Long descriptions wrap under the description column.
func writeColumns(b *strings.Builder, rows [][2]string) {
	maxLen := 0
	for _, row := range rows {
		if len(row[0]) > maxLen {
			maxLen = len(row[0])
		}
	}
	nameWidth := maxLen + 2
	wrapWidth := max(helpWidth-nameWidth-2, 20)

	for _, row := range rows {
		name := row[0]
		lines := textutil.Wrap(row[1], wrapWidth)
		if len(lines) == 0 {
			fmt.Fprintf(b, "  %s\n", name)
			continue
		}
		padding := strings.Repeat(" ", maxLen-len(name)+2)
		fmt.Fprintf(b, "  %s%s%s\n", name, padding, lines[0])

		indentPadding := strings.Repeat(" ", nameWidth+2)
		for _, line := range lines[1:] {
			fmt.Fprintf(b, "%s%s\n", indentPadding, line)
		}
	}
}
