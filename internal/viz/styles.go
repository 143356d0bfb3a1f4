package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const panelWidth = 46

type styles struct {
	canvas   lipgloss.Style
	panel    lipgloss.Style
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	active   lipgloss.Style
	muted    lipgloss.Style
	warning  lipgloss.Style
	graph    lipgloss.Style
	help     lipgloss.Style
	helpBox  lipgloss.Style
	layers   map[Layer]lipgloss.Style
	hintKey  lipgloss.Style
	hintText lipgloss.Style
}

func newStyles(t Theme) styles {
	layers := make(map[Layer]lipgloss.Style, int(numLayers))
	for l := LayerBounds; l < numLayers; l++ {
		layers[l] = lipgloss.NewStyle().Foreground(t.LayerColor(l))
	}
	return styles{
		canvas: lipgloss.NewStyle().Padding(1, 2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(panelWidth),
		header:  lipgloss.NewStyle().Foreground(t.Header).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		active:  lipgloss.NewStyle().Foreground(t.Selected).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(t.Muted),
		warning: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		graph:   lipgloss.NewStyle().Foreground(t.Header).Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		helpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Header).
			Padding(0, 2),
		layers:   layers,
		hintKey:  lipgloss.NewStyle().Foreground(t.Header).Bold(true),
		hintText: lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// hints renders "key action" pairs as one line.
func (s styles) hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(s.hintKey.Render(pairs[i]))
		b.WriteString(s.hintText.Render(" " + pairs[i+1] + "  "))
	}
	return b.String()
}

// separator renders a muted divider line.
func (s styles) separator(width int) string {
	mid := width / 2
	if mid < 3 {
		return s.muted.Render(strings.Repeat("─", width))
	}
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", max(0, width-mid-3))
	return s.muted.Render(left + " ◆ " + right)
}

// parseHex reads a #rrggbb color; anything else is white.
func parseHex(hex string) (r, g, b uint8) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	return parseHexByte(hex[1:3]), parseHexByte(hex[3:5]), parseHexByte(hex[5:7])
}

func parseHexByte(s string) uint8 {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return uint8(val)
}
