package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/admonish/internal/ui/pretty"
	"github.com/yaklabco/admonish/pkg/admonition"
	"github.com/yaklabco/admonish/pkg/config"
	"github.com/yaklabco/admonish/pkg/convert"
)

// markerInfo is one marker in JSON output.
type markerInfo struct {
	Marker   string `json:"marker"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	CSSClass string `json:"css_class"`
	Icon     string `json:"icon,omitempty"`
}

// markersOutput is the JSON document printed by the markers command.
type markersOutput struct {
	BlockClass  string       `json:"block_class"`
	TitleClass  string       `json:"title_class"`
	AllowNested bool         `json:"allow_nested"`
	Markers     []markerInfo `json:"markers"`
}

func newMarkersCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "markers",
		Short: "List the configured alert markers",
		Long: `List every alert marker the current configuration recognizes, with the
title and CSS class it renders to. Configuration files and ADMONISH_*
environment variables are applied, so this shows what render will use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMarkers(cmd, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(config.FormatText), "output format: text, json")

	return cmd
}

func runMarkers(cmd *cobra.Command, format string) error {
	cfg, _, err := loadConfig(cmd, &config.Config{Format: config.OutputFormat(format)})
	if err != nil {
		return err
	}

	adm := convert.OptionsFromConfig(cfg).Admonitions
	out := cmd.OutOrStdout()

	if cfg.Format == config.FormatJSON {
		doc := markersOutput{
			BlockClass:  adm.BlockCSSClass,
			TitleClass:  adm.TitleCSSClass,
			AllowNested: adm.AllowNested,
			Markers:     make([]markerInfo, 0, len(adm.Types)),
		}
		for _, marker := range adm.Markers() {
			alert := adm.Types[marker]
			doc.Markers = append(doc.Markers, markerInfo{
				Marker:   marker,
				Name:     admonition.TypeName(marker),
				Title:    alert.Title,
				CSSClass: alert.CSSClass,
				Icon:     alert.SVGIcon,
			})
		}

		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("encode markers: %w", err)
		}
		return nil
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = pretty.ColorAuto
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	rows := make([]pretty.MarkerRow, 0, len(adm.Types))
	for _, marker := range adm.Markers() {
		alert := adm.Types[marker]
		rows = append(rows, pretty.MarkerRow{Marker: marker, Title: alert.Title, CSSClass: alert.CSSClass})
	}

	fmt.Fprint(out, pretty.NewMarkerTable(styles, pretty.TerminalWidth(out)).Format(rows))

	nested := "off"
	if adm.AllowNested {
		nested = "on"
	}
	fmt.Fprintln(out, styles.Dim.Render(fmt.Sprintf(" block class: %s | title class: %s | nested: %s",
		adm.BlockCSSClass, adm.TitleCSSClass, nested)))

	return nil
}
