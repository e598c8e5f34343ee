package printing

import (
	"bytes"
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/mburu1/ReceiptReprintApplication/app/logging"
	"github.com/mburu1/ReceiptReprintApplication/app/models"
)

// EscPosEncoder turns a layout instruction sequence into a raw ESC/POS
// byte buffer ready for a thermal printer.
type EscPosEncoder struct {
	log logging.Logger
}

func NewEscPosEncoder(log logging.Logger) *EscPosEncoder {
	if log == nil {
		log = logging.Nop{}
	}
	return &EscPosEncoder{log: log}
}

// Encode renders a print job to printer bytes. An invalid job produces an
// empty buffer so nothing reaches the device.
func (e *EscPosEncoder) Encode(job *models.PrintJob) []byte {
	if job == nil || !job.IsValid() {
		e.log.Warning("rejecting invalid print job")
		return []byte{}
	}
	instructions := Compose(job.Receipt, job.Settings)
	return e.EncodeInstructions(instructions)
}

// EncodeInstructions emits bytes for an already composed sequence.
func (e *EscPosEncoder) EncodeInstructions(instructions []Instruction) []byte {
	var buf bytes.Buffer
	for _, in := range instructions {
		switch in.Op {
		case OpInit:
			buf.Write(cmdInitialize)
		case OpText:
			buf.Write(asciiBytes(in.Text))
		case OpColumns:
			buf.Write(asciiBytes(in.Left + " " + in.Right))
		case OpLineFeed:
			buf.Write(cmdLineFeed)
		case OpRule:
			buf.Write(asciiBytes(ruleText(in)))
			buf.Write(cmdLineFeed)
		case OpAlign:
			buf.Write(cmdAlign(in.Align))
		case OpEmphasis:
			buf.Write(cmdEmphasis(in.On))
		case OpFontScale:
			buf.Write(cmdFontScale(fontScaleForPoints(in.Points)))
		case OpCut:
			buf.Write(cmdPartialCut)
		}
	}
	return buf.Bytes()
}

func ruleText(in Instruction) string {
	width := in.Width
	if width <= 0 {
		width = LineWidth
	}
	return repeatRune(in.Char, width)
}

func repeatRune(r rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}

// EncodeTestPage builds a short diagnostic slip: identification lines plus
// a QR code carrying the printer name, printed as a raster bitmap.
func (e *EscPosEncoder) EncodeTestPage(settings models.PrinterSettings) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(cmdInitialize)
	buf.Write(cmdFontScale(fontScaleForPoints(settings.FontSize)))
	buf.Write(cmdAlign(AlignCenter))
	buf.Write(cmdEmphasis(true))
	buf.Write(asciiBytes("PRINTER TEST PAGE"))
	buf.Write(cmdLineFeed)
	buf.Write(cmdEmphasis(false))
	buf.Write(asciiBytes(repeatRune(singleRuleChar, LineWidth)))
	buf.Write(cmdLineFeed)
	buf.Write(asciiBytes(fmt.Sprintf("Printer: %s", settings.PrinterName)))
	buf.Write(cmdLineFeed)
	buf.Write(asciiBytes(fmt.Sprintf("Font size: %dpt", settings.FontSize)))
	buf.Write(cmdLineFeed)
	buf.Write(cmdLineFeed)

	if err := appendQRCode(&buf, "receipt-reprint:"+settings.PrinterName, 192); err != nil {
		e.log.Error("test page QR generation failed", err)
		return nil, err
	}

	buf.Write(cmdLineFeed)
	buf.Write(cmdPartialCut)
	return buf.Bytes(), nil
}

// appendQRCode renders the payload as a QR symbol and appends it as a
// GS v 0 raster bitmap, one bit per dot, eight dots per byte.
func appendQRCode(buf *bytes.Buffer, data string, size int) error {
	qr, err := qrcode.New(data, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("generating QR code: %w", err)
	}
	appendRasterImage(buf, qr.Image(size))
	return nil
}

func appendRasterImage(buf *bytes.Buffer, img image.Image) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	widthBytes := (width + 7) / 8

	buf.Write([]byte{gsByte, 'v', '0', 0x00})
	buf.WriteByte(byte(widthBytes % 256))
	buf.WriteByte(byte(widthBytes / 256))
	buf.WriteByte(byte(height % 256))
	buf.WriteByte(byte(height / 256))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x += 8 {
			var b byte
			for bit := 0; bit < 8; bit++ {
				px := x + bit
				if px >= bounds.Max.X {
					continue
				}
				r, g, bl, _ := img.At(px, y).RGBA()
				// Standard luminance weighting, dark dots print black.
				gray := (299*(r>>8) + 587*(g>>8) + 114*(bl>>8)) / 1000
				if gray < 128 {
					b |= 1 << uint(7-bit)
				}
			}
			buf.WriteByte(b)
		}
	}
}
