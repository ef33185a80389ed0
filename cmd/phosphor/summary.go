package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/phosphor/parameter/visual"
	"github.com/lixenwraith/phosphor/render"
)

var (
	colorAccent = hexColor(visual.StatusAccent)
	colorGray   = lipgloss.Color("#6b7280")
	colorYellow = lipgloss.Color("#facc15")
)

func hexColor(c render.RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// summary describes a finished run for the terminal
type summary struct {
	Frames    int
	Planned   int
	Delay     time.Duration
	Cancelled bool
	Seed      uint64
	Font      string
	Artifacts []string
}

func kv(k, v string, vc lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(colorGray).Render(fmt.Sprintf("%-8s", k)) +
		lipgloss.NewStyle().Foreground(vc).Render(v)
}

func renderSummary(s summary) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("PHOSPHOR")

	status := kv("status", "complete", colorAccent)
	if s.Cancelled {
		status = kv("status", "cancelled", colorYellow)
	}

	lines := []string{
		title,
		status,
		kv("frames", fmt.Sprintf("%d/%d", s.Frames, s.Planned), colorAccent),
		kv("length", (s.Delay * time.Duration(s.Frames)).String(), colorAccent),
		kv("seed", fmt.Sprintf("%d", s.Seed), colorAccent),
		kv("font", s.Font, colorAccent),
	}
	for _, a := range s.Artifacts {
		lines = append(lines, kv("wrote", a, colorAccent))
	}
	return strings.Join(lines, "\n") + "\n"
}
