package printing

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mburu1/ReceiptReprintApplication/app/logging"
)

func TestSend_FileTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.prn")
	tr := NewTransport(logging.Nop{})

	payload := []byte{0x1B, 0x40, 'h', 'i', 0x0A}
	if err := tr.Send(Target{Name: "file", Type: "file", Address: path}, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("file content = % X, want % X", got, payload)
	}
}

func TestSend_EmptyBufferDropped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.prn")
	tr := NewTransport(logging.Nop{})

	if err := tr.Send(Target{Name: "file", Type: "file", Address: path}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("empty buffer must not touch the device")
	}
}

func TestSend_UnsupportedType(t *testing.T) {
	tr := NewTransport(logging.Nop{})
	if err := tr.Send(Target{Name: "x", Type: "carrier-pigeon"}, []byte{1}); err == nil {
		t.Fatal("expected an error for unsupported type")
	}
}

func TestFilePageSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.txt")
	page := &Page{
		PaperName:        "A4",
		WidthHundredths:  827,
		HeightHundredths: 1169,
		DPI:              100,
		Ops: []DrawOp{
			{Text: "Duplicate Receipt", X: 50, Y: 0, Points: 10, Bold: true},
			{Text: "footer", X: 0, Y: 20, Points: 10},
		},
	}

	if err := (FilePageSink{Path: path}).DrawPage(page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}
	text := string(data)
	for _, want := range []string{`paper="A4"`, "Duplicate Receipt", "footer"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Fatalf("dump missing %q:\n%s", want, text)
		}
	}
}
