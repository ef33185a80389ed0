package sysinfo

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

func sampleInfo() Info {
	return Info{
		OS:      "Debian GNU/Linux 12 (bookworm)",
		Kernel:  "6.1.0-18-amd64",
		Desktop: "Session: gnome, WM: wayland",
		Shell:   "5.2.15(1)-release",
		Memory:  "15890M",
		CPU:     "AMD Ryzen 7 X16",
	}
}

func TestComposeLayout(t *testing.T) {
	text := Compose(sampleInfo(), Options{Tab: true, TabLength: 2})
	lines := strings.Split(text, "\n")

	want := []string{
		"******** DEBIAN GNU/LINUX 12 (BOOKWORM) ********",
		"",
		"  COPYRIGHT 2075 ROBCO(R)",
		"  KERNEL 6.1.0-18-AMD64",
		"  BASH VERSION 5.2.15(1)-RELEASE",
		"  15890M RAM SYSTEM",
		"  SESSION: GNOME, WM: WAYLAND",
		"  NO HOLOTAPE FOUND",
		"  LOAD ROM(1): DEITRIX 303",
		"",
		"",
	}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(want), len(lines), text)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestComposeNoTabWithCPU(t *testing.T) {
	text := Compose(sampleInfo(), Options{Tab: false, TabLength: 4, ShowCPU: true})
	if strings.Contains(text, "\n ") {
		t.Error("Expected no indentation without tab")
	}
	if !strings.Contains(text, "\nAMD RYZEN 7 X16\n") {
		t.Errorf("Expected CPU line, got:\n%s", text)
	}
}

func TestComposeOverrides(t *testing.T) {
	opts := Options{Overrides: Overrides{OS: "RobCo Unified OS", Memory: "64k"}}
	text := Compose(sampleInfo(), opts)
	if !strings.HasPrefix(text, "******** ROBCO UNIFIED OS ********") {
		t.Errorf("Expected OS override, got %q", strings.SplitN(text, "\n", 2)[0])
	}
	if !strings.Contains(text, "64K RAM SYSTEM") {
		t.Error("Expected memory override upper-cased")
	}
	if !strings.Contains(text, "KERNEL 6.1.0-18-AMD64") {
		t.Error("Expected detected kernel kept")
	}
}

func TestComposePadLines(t *testing.T) {
	text := Compose(sampleInfo(), Options{Tab: true, TabLength: 2, PadLines: true})
	lines := strings.Split(text, "\n")
	width := utf8.RuneCountInString(lines[0])
	for i, l := range lines {
		if n := utf8.RuneCountInString(l); n != width {
			t.Errorf("Line %d: expected width %d, got %d", i, width, n)
		}
	}
}

func TestPrettyName(t *testing.T) {
	doc := `NAME="Fedora Linux"
VERSION="40"
PRETTY_NAME="Fedora Linux 40 (Workstation Edition)"
ID=fedora
`
	if got := prettyName(strings.NewReader(doc)); got != "Fedora Linux 40 (Workstation Edition)" {
		t.Errorf("Unexpected pretty name %q", got)
	}
	if got := prettyName(strings.NewReader("ID=alpine\n")); got != "" {
		t.Errorf("Expected empty name, got %q", got)
	}
}

func TestParseBashVersion(t *testing.T) {
	out := "GNU bash, version 5.2.21(1)-release (x86_64-pc-linux-gnu)\nCopyright (C) 2022"
	if got := parseBashVersion(out); got != "5.2.21(1)-release" {
		t.Errorf("Unexpected version %q", got)
	}
	if got := parseBashVersion("garbage"); got != "" {
		t.Errorf("Expected empty version, got %q", got)
	}
}

func TestDesktopSession(t *testing.T) {
	env := map[string]string{"XDG_SESSION_DESKTOP": "KDE"}
	got := desktopSession(func(k string) string { return env[k] })
	if got != "Session: KDE, WM: Unknown" {
		t.Errorf("Unexpected session %q", got)
	}
}

func TestFormatters(t *testing.T) {
	if got := formatMemory(16 * 1024 * 1024 * 1024); got != "16384M" {
		t.Errorf("Unexpected memory %q", got)
	}
	if got := formatCPU("  Intel(R)   Core(TM) i7 ", 8); got != "Intel(R) Core(TM) i7 X8" {
		t.Errorf("Unexpected cpu %q", got)
	}
	if got := formatCPU("", 0); got != Unknown {
		t.Errorf("Expected Unknown cpu, got %q", got)
	}
}

func TestCollectNeverEmpty(t *testing.T) {
	info := Collect(context.Background())
	for name, v := range map[string]string{
		"os": info.OS, "kernel": info.Kernel, "desktop": info.Desktop,
		"shell": info.Shell, "memory": info.Memory, "cpu": info.CPU,
	} {
		if v == "" {
			t.Errorf("Expected %s to be populated", name)
		}
	}
}
