package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mburu1/ReceiptReprintApplication/app/logging"
	"github.com/mburu1/ReceiptReprintApplication/app/models"
	"github.com/mburu1/ReceiptReprintApplication/app/printing"
)

var ErrInvalidPrintJob = errors.New("invalid print job")

// PrintResult describes one completed or rendered print attempt.
type PrintResult struct {
	JobID      string             `json:"job_id"`
	Method     models.PrintMethod `json:"method"`
	BytesSent  int                `json:"bytes_sent"`
	Page       *printing.Page     `json:"page,omitempty"`
	FinishedAt time.Time          `json:"finished_at"`
}

// PrintService routes a print job through one of the two output paths:
// raw control bytes over a transport, or a measured page handed to a
// graphical backend.
type PrintService struct {
	encoder   *printing.EscPosEncoder
	renderer  *printing.PaginatedRenderer
	transport *printing.Transport
	sink      printing.PageSink
	log       logging.Logger
}

func NewPrintService(measurer printing.TextMeasurer, dpi int, sink printing.PageSink, log logging.Logger) *PrintService {
	if log == nil {
		log = logging.Nop{}
	}
	return &PrintService{
		encoder:   printing.NewEscPosEncoder(log),
		renderer:  printing.NewPaginatedRenderer(measurer, dpi, log),
		transport: printing.NewTransport(log),
		sink:      sink,
		log:       log,
	}
}

// Print renders the job with its configured method and delivers it to the
// target. Invalid jobs are rejected before anything reaches a device.
func (s *PrintService) Print(job *models.PrintJob, target printing.Target) (*PrintResult, error) {
	if job == nil || !job.IsValid() {
		return nil, ErrInvalidPrintJob
	}

	result := &PrintResult{
		JobID:  uuid.NewString(),
		Method: job.Settings.Method,
	}
	s.log.Info("printing receipt",
		"job: "+result.JobID,
		"printer: "+job.Settings.PrinterName,
		"method: "+string(job.Settings.Method))

	switch job.Settings.Method {
	case models.MethodDriver:
		page := s.renderer.Render(job)
		if page == nil {
			return nil, ErrInvalidPrintJob
		}
		result.Page = page
		if s.sink != nil {
			if err := s.sink.DrawPage(page); err != nil {
				s.log.Error("page delivery failed", err, "job: "+result.JobID)
				return nil, err
			}
		}
	default:
		data := s.encoder.Encode(job)
		if len(data) == 0 {
			return nil, ErrInvalidPrintJob
		}
		if err := s.transport.Send(target, data); err != nil {
			s.log.Error("transport send failed", err, "job: "+result.JobID)
			return nil, err
		}
		result.BytesSent = len(data)
	}

	result.FinishedAt = time.Now()
	return result, nil
}

// Preview renders both output forms without touching a device.
func (s *PrintService) Preview(job *models.PrintJob) ([]byte, *printing.Page, error) {
	if job == nil || !job.IsValid() {
		return nil, nil, ErrInvalidPrintJob
	}
	return s.encoder.Encode(job), s.renderer.Render(job), nil
}

// PrintTestPage sends the diagnostic slip to the target.
func (s *PrintService) PrintTestPage(settings models.PrinterSettings, target printing.Target) error {
	data, err := s.encoder.EncodeTestPage(settings)
	if err != nil {
		return err
	}
	return s.transport.Send(target, data)
}

// IsPrinterAvailable reports spooler visibility for a named printer.
func (s *PrintService) IsPrinterAvailable(name string) bool {
	return s.transport.IsAvailable(name)
}
