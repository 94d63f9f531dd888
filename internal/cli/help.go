package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/admonish/internal/ui/pretty"
)

// HelpStyles are the styles applied to command help.
type HelpStyles struct {
	Command lipgloss.Style
	Heading lipgloss.Style
	Name    lipgloss.Style
	Flag    lipgloss.Style
	Example lipgloss.Style
	Dim     lipgloss.Style
}

// NewHelpStyles creates help styles, plain when color is off.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{plain, plain, plain, plain, plain, plain}
	}
	return &HelpStyles{
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Example: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders cobra help and usage with HelpStyles.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a formatter for writer under colorMode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading": h.styles.Heading.Render,
		"command": h.styles.Command.Render,
		"name":    h.styles.Name.Render,
		"example": h.styles.Example.Render,
		"flags":   h.flagUsages,
		"rpad": func(s string, width int) string {
			return s + strings.Repeat(" ", max(0, width-len(s)))
		},
		"trimRight": func(s string) string {
			lines := strings.Split(s, "\n")
			for i, line := range lines {
				lines[i] = strings.TrimRight(line, " \t")
			}
			return strings.Join(lines, "\n")
		},
	}
}

// flagUsages styles pflag's usage block. Each line has the form
// "  -o, --out-dir string   description"; the flag names are colored and
// the value type is dimmed.
func (h *HelpFormatter) flagUsages(set interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(set.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		body := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(body)]

		spec, desc, ok := strings.Cut(body, "   ")
		if !ok || strings.TrimSpace(spec) == "" {
			continue
		}

		tokens := strings.Fields(spec)
		for j, token := range tokens {
			if strings.HasPrefix(token, "-") {
				name, comma := strings.CutSuffix(token, ",")
				tokens[j] = h.styles.Flag.Render(name)
				if comma {
					tokens[j] += ","
				}
			} else {
				tokens[j] = h.styles.Dim.Render(token)
			}
		}

		lines[i] = indent + strings.Join(tokens, " ") + "   " + strings.TrimLeft(desc, " ")
	}
	return strings.Join(lines, "\n")
}

// ApplyToCommand installs the styled templates on cmd; subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return usage.Execute(command.OutOrStderr(), command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}
