package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mburu1/ReceiptReprintApplication/app/config"
	"github.com/mburu1/ReceiptReprintApplication/app/models"
	"github.com/mburu1/ReceiptReprintApplication/app/printing"
	"github.com/mburu1/ReceiptReprintApplication/app/services"
)

// Handlers exposes the reprint workflow over HTTP.
type Handlers struct {
	receipts *services.ReceiptService
	printer  *services.PrintService
	cfg      *config.Config
}

func NewHandlers(receipts *services.ReceiptService, printer *services.PrintService, cfg *config.Config) *Handlers {
	return &Handlers{receipts: receipts, printer: printer, cfg: cfg}
}

type reprintRequest struct {
	TransactionNumber int    `json:"transaction_number" binding:"required"`
	StoreID           *int   `json:"store_id"`
	Printer           string `json:"printer"`
	Method            string `json:"method"`
	FontSize          int    `json:"font_size"`
	PaperSize         string `json:"paper_size"`
	// Preview skips the device and returns the rendered page instead.
	Preview bool `json:"preview"`
}

// Reprint looks up a transaction and prints or previews its receipt.
func (h *Handlers) Reprint(c *gin.Context) {
	var req reprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	receipt, err := h.receipts.GetReceipt(c.Request.Context(), req.TransactionNumber, req.StoreID)
	if err != nil {
		reprintsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if receipt == nil {
		reprintsTotal.WithLabelValues("not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{
			"error": "transaction not found or not printable",
		})
		return
	}

	job := &models.PrintJob{Receipt: receipt, Settings: h.settings(req)}

	if req.Preview {
		data, page, err := h.printer.Preview(job)
		if err != nil {
			reprintsTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		reprintsTotal.WithLabelValues("preview").Inc()
		c.JSON(http.StatusOK, gin.H{
			"receipt":    receipt,
			"escpos_len": len(data),
			"page":       page,
		})
		return
	}

	result, err := h.printer.Print(job, h.target(req))
	if err != nil {
		reprintsTotal.WithLabelValues("failed").Inc()
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	reprintsTotal.WithLabelValues("printed").Inc()
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// Stores lists the stores known to the backing database.
func (h *Handlers) Stores(c *gin.Context) {
	stores, err := h.receipts.Stores(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// Printers lists spooler printers, plus network printers when the
// discover query flag is set.
func (h *Handlers) Printers(c *gin.Context) {
	printers, err := printing.DetectSystemPrinters()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if discover, _ := strconv.ParseBool(c.Query("discover")); discover {
		network, err := printing.DiscoverNetworkPrinters(c.Request.Context(), 3*time.Second)
		if err == nil {
			printers = append(printers, network...)
		}
	}
	c.JSON(http.StatusOK, gin.H{"printers": printers})
}

// settings merges per-request overrides onto the configured defaults.
func (h *Handlers) settings(req reprintRequest) models.PrinterSettings {
	s := models.PrinterSettings{
		PrinterName:   h.cfg.Printer.Name,
		FontSize:      h.cfg.Printer.FontSize,
		Method:        models.PrintMethod(h.cfg.Printer.Method),
		PaperSizeName: h.cfg.Printer.PaperSize,
	}
	if req.Printer != "" {
		s.PrinterName = req.Printer
	}
	if req.Method != "" {
		s.Method = models.PrintMethod(req.Method)
	}
	if req.FontSize != 0 {
		s.FontSize = req.FontSize
	}
	if req.PaperSize != "" {
		s.PaperSizeName = req.PaperSize
	}
	return s
}

func (h *Handlers) target(req reprintRequest) printing.Target {
	t := printing.Target{
		Name:    h.cfg.Printer.Name,
		Type:    h.cfg.Printer.Type,
		Address: h.cfg.Printer.Address,
		Port:    h.cfg.Printer.Port,
	}
	if req.Printer != "" {
		t.Name = req.Printer
	}
	return t
}
