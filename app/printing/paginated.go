package printing

import (
	"strings"
	"unicode/utf8"

	"github.com/mburu1/ReceiptReprintApplication/app/logging"
	"github.com/mburu1/ReceiptReprintApplication/app/models"
)

// TextMeasurer reports rendered text metrics in device pixels. The
// renderer never measures text itself so backends and tests can supply
// their own font metrics.
type TextMeasurer interface {
	MeasureWidth(text string, points int) float64
	LineHeight(points int) float64
}

// FixedPitchMeasurer approximates a monospaced font: every character
// advances 0.6 em and lines are spaced at 1.2 em.
type FixedPitchMeasurer struct {
	DPI int
}

func (m FixedPitchMeasurer) dpi() float64 {
	if m.DPI <= 0 {
		return 203
	}
	return float64(m.DPI)
}

func (m FixedPitchMeasurer) MeasureWidth(text string, points int) float64 {
	advance := 0.6 * float64(points) * m.dpi() / 72
	return float64(utf8.RuneCountInString(text)) * advance
}

func (m FixedPitchMeasurer) LineHeight(points int) float64 {
	return 1.2 * float64(points) * m.dpi() / 72
}

// PaperSize describes a target page in hundredths of an inch. A roll
// size has no fixed height; the renderer sizes it to the content.
type PaperSize struct {
	Name             string
	WidthHundredths  int
	HeightHundredths int
	Roll             bool
}

var paperSizes = []PaperSize{
	{Name: "Custom 80mm Roll", WidthHundredths: 315, Roll: true},
	{Name: "A4", WidthHundredths: 827, HeightHundredths: 1169},
	{Name: "Letter", WidthHundredths: 850, HeightHundredths: 1100},
}

// LookupPaperSize resolves a configured size name, falling back to the
// 80mm roll when the name is unknown.
func LookupPaperSize(name string) PaperSize {
	for _, size := range paperSizes {
		if strings.EqualFold(size.Name, name) {
			return size
		}
	}
	return paperSizes[0]
}

// Roll pages get a fixed tail margin and are clamped to the spooler's
// accepted height range.
const (
	rollMarginHundredths    = 100
	minRollHeightHundredths = 300
	maxRollHeightHundredths = 4700
)

// DrawOp positions one run of text on the page. Coordinates are device
// pixels from the top-left corner.
type DrawOp struct {
	Text   string
	X      float64
	Y      float64
	Points int
	Bold   bool
}

// Page is a fully measured draw sequence for one receipt.
type Page struct {
	PaperName        string
	WidthHundredths  int
	HeightHundredths int
	DPI              int
	Ops              []DrawOp
	// Overflow is set when a fixed-height page cannot hold the content.
	// The page is still printable; the tail is clipped by the device.
	Overflow bool
}

// PaginatedRenderer turns a layout instruction sequence into positioned
// draw operations for a graphical print backend.
type PaginatedRenderer struct {
	measurer TextMeasurer
	dpi      int
	log      logging.Logger
}

func NewPaginatedRenderer(measurer TextMeasurer, dpi int, log logging.Logger) *PaginatedRenderer {
	if measurer == nil {
		measurer = FixedPitchMeasurer{DPI: dpi}
	}
	if dpi <= 0 {
		dpi = 203
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &PaginatedRenderer{measurer: measurer, dpi: dpi, log: log}
}

// Render lays out a print job onto its configured paper size. An invalid
// job yields no page.
func (r *PaginatedRenderer) Render(job *models.PrintJob) *Page {
	if job == nil || !job.IsValid() {
		r.log.Warning("rejecting invalid print job")
		return nil
	}
	instructions := Compose(job.Receipt, job.Settings)
	return r.RenderInstructions(instructions, job.Settings)
}

// RenderInstructions lays out an already composed sequence.
func (r *PaginatedRenderer) RenderInstructions(instructions []Instruction, settings models.PrinterSettings) *Page {
	size := LookupPaperSize(settings.PaperSizeName)
	widthPx := float64(size.WidthHundredths) * float64(r.dpi) / 100

	ops, heightPx := r.layout(instructions, settings.FontSize, widthPx)

	page := &Page{
		PaperName:       size.Name,
		WidthHundredths: size.WidthHundredths,
		DPI:             r.dpi,
		Ops:             ops,
	}
	if size.Roll {
		page.HeightHundredths = rollHeightHundredths(heightPx, r.dpi)
	} else {
		page.HeightHundredths = size.HeightHundredths
		if heightPx > float64(size.HeightHundredths)*float64(r.dpi)/100 {
			page.Overflow = true
			r.log.Warning("content exceeds page height", "paper: "+size.Name)
		}
	}
	return page
}

// layout walks the instructions once, tracking alignment, emphasis and
// font state, and returns the draw operations plus the total content
// height in pixels.
func (r *PaginatedRenderer) layout(instructions []Instruction, basePoints int, widthPx float64) ([]DrawOp, float64) {
	points := basePoints
	if points <= 0 {
		points = models.DefaultFontSize
	}
	align := AlignLeft
	bold := false
	y := 0.0
	var ops []DrawOp

	place := func(text string, x float64) {
		if x < 0 {
			x = 0
		}
		ops = append(ops, DrawOp{Text: text, X: x, Y: y, Points: points, Bold: bold})
	}
	placeAligned := func(text string, a Alignment) {
		w := r.measurer.MeasureWidth(text, points)
		switch a {
		case AlignCenter:
			place(text, (widthPx-w)/2)
		case AlignRight:
			place(text, widthPx-w)
		default:
			place(text, 0)
		}
	}

	for _, in := range instructions {
		switch in.Op {
		case OpFontScale:
			if in.Points > 0 {
				points = in.Points
			}
		case OpAlign:
			align = in.Align
		case OpEmphasis:
			bold = in.On
		case OpText:
			placeAligned(in.Text, align)
		case OpLineFeed:
			y += r.measurer.LineHeight(points)
		case OpRule:
			placeAligned(r.fitRule(in, points, widthPx), AlignLeft)
			y += r.measurer.LineHeight(points)
		case OpColumns:
			lw := r.measurer.MeasureWidth(in.Left, points)
			rw := r.measurer.MeasureWidth(in.Right, points)
			gap := r.measurer.MeasureWidth(" ", points)
			if lw+gap+rw > widthPx {
				// Segments collide; push the right one down a line.
				place(in.Left, 0)
				y += r.measurer.LineHeight(points)
				place(in.Right, widthPx-rw)
			} else {
				place(in.Left, 0)
				place(in.Right, widthPx-rw)
			}
		}
	}
	return ops, y
}

// fitRule stretches or shrinks a rule to the measured page width so
// separators always span the paper regardless of font size.
func (r *PaginatedRenderer) fitRule(in Instruction, points int, widthPx float64) string {
	count := in.Width
	if count <= 0 {
		count = LineWidth
	}
	if cw := r.measurer.MeasureWidth(string(in.Char), points); cw > 0 {
		if fit := int(widthPx / cw); fit > 0 {
			count = fit
		}
	}
	return repeatRune(in.Char, count)
}

func rollHeightHundredths(heightPx float64, dpi int) int {
	h := int(heightPx/float64(dpi)*100) + rollMarginHundredths
	if h < minRollHeightHundredths {
		h = minRollHeightHundredths
	}
	if h > maxRollHeightHundredths {
		h = maxRollHeightHundredths
	}
	return h
}
