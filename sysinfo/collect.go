// Package sysinfo queries the host and composes the boot screen text
package sysinfo

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Unknown is reported for any field that could not be determined
const Unknown = "Unknown"

// osReleasePath is the freedesktop os-release file
const osReleasePath = "/etc/os-release"

// Info is the host description shown on the boot screen
type Info struct {
	OS      string
	Kernel  string
	Desktop string
	Shell   string
	Memory  string
	CPU     string
}

// Collect queries the host; every field degrades to Unknown on failure
func Collect(ctx context.Context) Info {
	info := Info{
		OS:      Unknown,
		Kernel:  Unknown,
		Desktop: desktopSession(os.Getenv),
		Shell:   Unknown,
		Memory:  Unknown,
		CPU:     Unknown,
	}

	if h, err := host.InfoWithContext(ctx); err == nil {
		if h.KernelVersion != "" {
			info.Kernel = h.KernelVersion
		}
		if h.Platform != "" {
			info.OS = strings.TrimSpace(h.Platform + " " + h.PlatformVersion)
		}
	} else {
		log.Printf("Host info unavailable: %v", err)
	}

	if f, err := os.Open(osReleasePath); err == nil {
		if name := prettyName(f); name != "" {
			info.OS = name
		}
		f.Close()
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.Memory = formatMemory(vm.Total)
	} else {
		log.Printf("Memory info unavailable: %v", err)
	}

	if cpus, err := cpu.InfoWithContext(ctx); err == nil && len(cpus) > 0 {
		cores, _ := cpu.CountsWithContext(ctx, true)
		info.CPU = formatCPU(cpus[0].ModelName, cores)
	}

	info.Shell = shellVersion(ctx)
	return info
}

// prettyName extracts PRETTY_NAME from an os-release document
func prettyName(r io.Reader) string {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if v, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(v, `"'`)
		}
	}
	return ""
}

// desktopSession describes the graphical session from XDG variables
func desktopSession(getenv func(string) string) string {
	session := getenv("XDG_SESSION_DESKTOP")
	if session == "" {
		session = Unknown
	}
	wm := getenv("XDG_SESSION_TYPE")
	if wm == "" {
		wm = Unknown
	}
	return fmt.Sprintf("Session: %s, WM: %s", session, wm)
}

// formatMemory renders a byte count as whole mebibytes
func formatMemory(total uint64) string {
	return fmt.Sprintf("%dM", total/(1024*1024))
}

func formatCPU(model string, cores int) string {
	model = strings.Join(strings.Fields(model), " ")
	if model == "" {
		model = Unknown
	}
	if cores > 0 {
		return fmt.Sprintf("%s X%d", model, cores)
	}
	return model
}

// shellVersion asks bash for its version, falling back to the Go runtime target
func shellVersion(ctx context.Context) string {
	if runtime.GOOS == "windows" {
		return runtime.GOOS + "/" + runtime.GOARCH
	}
	out, err := exec.CommandContext(ctx, "bash", "--version").Output()
	if err != nil {
		log.Printf("bash version unavailable: %v", err)
		return "Bash not found"
	}
	if v := parseBashVersion(string(out)); v != "" {
		return v
	}
	return Unknown
}

// parseBashVersion returns the version token of "GNU bash, version X (arch)"
func parseBashVersion(out string) string {
	fields := strings.Fields(out)
	for i, f := range fields {
		if f == "version" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}
