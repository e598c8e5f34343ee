package printing

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

// DetectedPrinter is one printer visible to the host, either through the
// OS spooler or via mDNS discovery on the local network.
type DetectedPrinter struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Address   string `json:"address"`
	Port      int    `json:"port"`
	IsDefault bool   `json:"is_default"`
	Status    string `json:"status"`
}

// DetectSystemPrinters lists printers registered with the OS spooler.
func DetectSystemPrinters() ([]DetectedPrinter, error) {
	switch runtime.GOOS {
	case "windows":
		return detectWindowsPrinters()
	case "linux", "darwin":
		return detectCUPSPrinters()
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func detectCUPSPrinters() ([]DetectedPrinter, error) {
	cmd := exec.Command("lpstat", "-p", "-d")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("querying CUPS (is it installed?): %w", err)
	}
	return parseCUPSOutput(string(output)), nil
}

// parseCUPSOutput reads lpstat lines of the form
// "printer NAME is idle. enabled since ..." plus the trailing
// "system default destination: NAME" marker.
func parseCUPSOutput(output string) []DetectedPrinter {
	var printers []DetectedPrinter
	var defaultName string

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "system default destination:"); ok {
			defaultName = strings.TrimSpace(rest)
			continue
		}
		if !strings.HasPrefix(line, "printer ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		p := DetectedPrinter{
			Name:   fields[1],
			Type:   "system",
			Status: "unknown",
		}
		if strings.Contains(line, "idle") {
			p.Status = "online"
		} else if strings.Contains(line, "disabled") {
			p.Status = "offline"
		}
		printers = append(printers, p)
	}

	for i := range printers {
		if printers[i].Name == defaultName {
			printers[i].IsDefault = true
		}
	}
	return printers
}

func detectWindowsPrinters() ([]DetectedPrinter, error) {
	cmd := exec.Command("powershell", "-Command",
		`Get-Printer | Select-Object Name, PortName | ConvertTo-Json -AsArray`)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("querying windows printers: %w", err)
	}

	var entries []struct {
		Name     string `json:"Name"`
		PortName string `json:"PortName"`
	}
	if err := json.Unmarshal(output, &entries); err != nil {
		return nil, fmt.Errorf("parsing printer list: %w", err)
	}

	printers := make([]DetectedPrinter, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		printers = append(printers, DetectedPrinter{
			Name:    e.Name,
			Type:    classifyWindowsPort(e.PortName),
			Address: e.PortName,
			Status:  "unknown",
		})
	}
	return printers, nil
}

func classifyWindowsPort(portName string) string {
	upper := strings.ToUpper(portName)
	switch {
	case strings.HasPrefix(upper, "COM"), strings.HasPrefix(upper, "LPT"):
		return "serial"
	case strings.Contains(upper, "IP_"):
		return "network"
	default:
		return "usb"
	}
}

// DetectSerialPorts lists serial and USB character devices a thermal
// printer could be wired to.
func DetectSerialPorts() ([]string, error) {
	var patterns []string
	switch runtime.GOOS {
	case "linux":
		patterns = []string{"/dev/ttyUSB*", "/dev/ttyACM*", "/dev/usb/lp*"}
	case "darwin":
		patterns = []string{"/dev/tty.usb*", "/dev/cu.usb*"}
	default:
		return nil, fmt.Errorf("serial port detection not supported on %s", runtime.GOOS)
	}

	var ports []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		ports = append(ports, matches...)
	}
	return ports, nil
}

// mDNS service type advertised by raw-port network printers.
const rawPrintServiceType = "_pdl-datastream._tcp"

// DiscoverNetworkPrinters browses the local network for printers that
// accept raw job data, collecting answers until the timeout elapses.
func DiscoverNetworkPrinters(ctx context.Context, timeout time.Duration) ([]DetectedPrinter, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("starting mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	browseCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := resolver.Browse(browseCtx, rawPrintServiceType, "local.", entries); err != nil {
		return nil, fmt.Errorf("browsing for network printers: %w", err)
	}

	var printers []DetectedPrinter
	for entry := range entries {
		p := DetectedPrinter{
			Name:   entry.Instance,
			Type:   "network",
			Port:   entry.Port,
			Status: "online",
		}
		if len(entry.AddrIPv4) > 0 {
			p.Address = entry.AddrIPv4[0].String()
		} else if len(entry.AddrIPv6) > 0 {
			p.Address = entry.AddrIPv6[0].String()
		}
		printers = append(printers, p)
	}
	return printers, nil
}
