package sysinfo

import (
	"strings"
	"unicode/utf8"
)

// Overrides replace detected values when non-empty
type Overrides struct {
	OS      string
	Kernel  string
	Desktop string
	Shell   string
	Memory  string
}

// Options controls boot text layout
type Options struct {
	Tab       bool
	TabLength int
	PadLines  bool
	ShowCPU   bool
	Overrides Overrides
}

// Apply returns info with overrides substituted
func (o Overrides) Apply(info Info) Info {
	pick := func(override, detected string) string {
		if override != "" {
			return override
		}
		return detected
	}
	info.OS = pick(o.OS, info.OS)
	info.Kernel = pick(o.Kernel, info.Kernel)
	info.Desktop = pick(o.Desktop, info.Desktop)
	info.Shell = pick(o.Shell, info.Shell)
	info.Memory = pick(o.Memory, info.Memory)
	return info
}

// Compose renders the boot screen text; all host values are upper-cased
func Compose(info Info, opts Options) string {
	info = opts.Overrides.Apply(info)

	indent := ""
	if opts.Tab {
		indent = strings.Repeat(" ", max(0, opts.TabLength))
	}
	up := strings.ToUpper

	lines := []string{
		"******** " + up(info.OS) + " ********",
		"",
		indent + "COPYRIGHT 2075 ROBCO(R)",
		indent + "KERNEL " + up(info.Kernel),
		indent + "BASH VERSION " + up(info.Shell),
		indent + up(info.Memory) + " RAM SYSTEM",
	}
	if opts.ShowCPU {
		lines = append(lines, indent+up(info.CPU))
	}
	lines = append(lines,
		indent+up(info.Desktop),
		indent+"NO HOLOTAPE FOUND",
		indent+"LOAD ROM(1): DEITRIX 303",
		"",
		"",
	)

	if opts.PadLines {
		width := 0
		for _, l := range lines {
			width = max(width, utf8.RuneCountInString(l))
		}
		for i, l := range lines {
			lines[i] = l + strings.Repeat(" ", width-utf8.RuneCountInString(l))
		}
	}
	return strings.Join(lines, "\n")
}
