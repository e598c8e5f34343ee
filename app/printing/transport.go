package printing

import (
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/mburu1/ReceiptReprintApplication/app/logging"
)

// Target describes where a finished byte buffer should go. Type is one of
// "usb", "serial", "network", "file" or "system"; an empty type means the
// OS print spooler.
type Target struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Address string `json:"address"`
	Port    int    `json:"port"`
}

const defaultRawPort = 9100

// Transport delivers encoded receipt bytes to a printer device.
type Transport struct {
	log logging.Logger
}

func NewTransport(log logging.Logger) *Transport {
	if log == nil {
		log = logging.Nop{}
	}
	return &Transport{log: log}
}

// Send opens the target, writes the whole buffer and closes the device.
// An empty buffer is dropped without touching the device.
func (t *Transport) Send(target Target, data []byte) error {
	if len(data) == 0 {
		t.log.Warning("dropping empty print buffer", "target: "+target.Name)
		return nil
	}

	switch strings.ToLower(target.Type) {
	case "system", "":
		return t.spool(target.Name, data)
	default:
		conn, err := t.open(target)
		if err != nil {
			return err
		}
		defer conn.Close()
		if _, err := conn.Write(data); err != nil {
			return fmt.Errorf("writing to printer %s: %w", target.Name, err)
		}
		return nil
	}
}

func (t *Transport) open(target Target) (io.WriteCloser, error) {
	switch strings.ToLower(target.Type) {
	case "usb", "serial":
		conn, err := os.OpenFile(target.Address, os.O_RDWR, 0)
		if err != nil {
			return nil, fmt.Errorf("opening printer device %s: %w", target.Address, err)
		}
		return conn, nil

	case "network":
		port := target.Port
		if port == 0 {
			port = defaultRawPort
		}
		address := fmt.Sprintf("%s:%d", target.Address, port)
		conn, err := net.DialTimeout("tcp", address, 5*time.Second)
		if err != nil {
			return nil, fmt.Errorf("connecting to network printer %s: %w", address, err)
		}
		return conn, nil

	case "file":
		conn, err := os.Create(target.Address)
		if err != nil {
			return nil, fmt.Errorf("creating output file %s: %w", target.Address, err)
		}
		return conn, nil

	default:
		return nil, fmt.Errorf("unsupported printer type: %s", target.Type)
	}
}

// spool hands raw bytes to the OS print queue. CUPS systems get lp with
// raw passthrough so the driver does not reinterpret the control bytes.
func (t *Transport) spool(printerName string, data []byte) error {
	if printerName == "" {
		return fmt.Errorf("no printer name for spooled output")
	}
	if runtime.GOOS == "windows" {
		return fmt.Errorf("raw spooling is not supported on windows; use a network or file target")
	}

	tmp, err := os.CreateTemp("", "reprint_*.prn")
	if err != nil {
		return fmt.Errorf("creating spool file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing spool file: %w", err)
	}
	tmp.Close()

	cmd := exec.Command("lp", "-d", printerName, "-o", "raw", tmp.Name())
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("spooling to %s: %w: %s", printerName, err, strings.TrimSpace(string(out)))
	}
	t.log.Info("spooled receipt", "printer: "+printerName)
	return nil
}

// IsAvailable reports whether a named printer is currently visible to the
// OS spooler.
func (t *Transport) IsAvailable(printerName string) bool {
	printers, err := DetectSystemPrinters()
	if err != nil {
		t.log.Warning("printer detection failed", err.Error())
		return false
	}
	for _, p := range printers {
		if strings.EqualFold(p.Name, printerName) {
			return true
		}
	}
	return false
}
