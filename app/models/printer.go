package models

// PrintMethod selects the rendering backend for a print job.
type PrintMethod string

const (
	// MethodEscPos sends raw ESC/POS bytes to a thermal printer.
	MethodEscPos PrintMethod = "escpos"
	// MethodDriver renders a paginated page through the system driver.
	MethodDriver PrintMethod = "driver"
)

// PrinterSettings carries the rendering configuration of one print attempt.
type PrinterSettings struct {
	PrinterName   string      `json:"printer_name"`
	FontSize      int         `json:"font_size"`
	Method        PrintMethod `json:"method"`
	PaperSizeName string      `json:"paper_size_name"`
}

// DefaultFontSize is the point size used when none is configured.
const DefaultFontSize = 10

// DefaultPrinterSettings mirrors the historical defaults: 10pt on A4
// through the driver path.
func DefaultPrinterSettings(printerName string) PrinterSettings {
	return PrinterSettings{
		PrinterName:   printerName,
		FontSize:      DefaultFontSize,
		Method:        MethodDriver,
		PaperSizeName: "A4",
	}
}

// IsValid requires a printer name and a font size in the supported 6..20
// point range.
func (s PrinterSettings) IsValid() bool {
	return s.PrinterName != "" && s.FontSize >= 6 && s.FontSize <= 20
}

// PrintJob pairs a receipt with its rendering settings. A job is valid only
// when both parts validate; encoders return empty output for invalid jobs.
type PrintJob struct {
	Receipt  *ReceiptRecord  `json:"receipt"`
	Settings PrinterSettings `json:"settings"`
}

// IsValid applies strict receipt validation plus settings validation.
func (j *PrintJob) IsValid() bool {
	return j != nil && j.Receipt.IsValid(true) && j.Settings.IsValid()
}
