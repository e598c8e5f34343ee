package printing

import (
	"fmt"
	"strings"

	"github.com/mburu1/ReceiptReprintApplication/app/models"
)

// Alignment of subsequent text on the output line.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Op tags a layout instruction variant.
type Op int

const (
	// OpInit resets the output device.
	OpInit Op = iota
	// OpText emits a run of text at the current alignment.
	OpText
	// OpColumns emits a left-anchored and a right-anchored segment that
	// share one line when the backend has room for both.
	OpColumns
	// OpLineFeed advances to the next line.
	OpLineFeed
	// OpRule emits a full-width line of a repeated character, including
	// its own line ending.
	OpRule
	// OpAlign switches the current alignment.
	OpAlign
	// OpEmphasis switches bold on or off.
	OpEmphasis
	// OpFontScale selects the font size, in points.
	OpFontScale
	// OpCut requests a partial paper cut.
	OpCut
)

// Instruction is one backend-neutral layout directive. A sequence is
// produced once per receipt and consumed by each encoder without mutation.
type Instruction struct {
	Op     Op
	Text   string    // OpText
	Left   string    // OpColumns
	Right  string    // OpColumns
	Char   rune      // OpRule
	Width  int       // OpRule
	Align  Alignment // OpAlign
	On     bool      // OpEmphasis
	Points int       // OpFontScale
}

// Receipt line geometry, fixed for 80mm thermal stock.
const (
	LineWidth        = 42
	codeFieldWidth   = 6
	descFieldWidth   = 20
	doubleRuleChar   = '═'
	singleRuleChar   = '─'
	continuationPad  = "      "
	receiptTitle     = "Duplicate Receipt"
	slipCaption      = "Sales Receipt Slip"
	columnHeaderLine = "Code  Description           QTY    Price    Total"
	thankYouLine     = "Thank you for your business!"
	duplicateLine    = "*** DUPLICATE COPY ***"
	noItemsLine      = "   (no items)"
	receiptDateFmt   = "2/01/2006 3:04:05 PM"
)

// Compose turns a resolved receipt into the ordered instruction sequence
// shared by both output backends. The sequence is deterministic; the same
// receipt always composes to the same instructions.
func Compose(record *models.ReceiptRecord, settings models.PrinterSettings) []Instruction {
	c := &composer{}

	c.add(Instruction{Op: OpInit})
	c.add(Instruction{Op: OpFontScale, Points: settings.FontSize})

	c.composeHeader(record.CompanyInfo)
	c.composeTransactionInfo(record)
	c.composeItems(record.Items)
	c.composeTotals(record)
	c.composeFooter()

	c.add(Instruction{Op: OpCut})
	return c.out
}

type composer struct {
	out []Instruction
}

func (c *composer) add(in Instruction) {
	c.out = append(c.out, in)
}

func (c *composer) line(text string) {
	c.add(Instruction{Op: OpText, Text: text})
	c.add(Instruction{Op: OpLineFeed})
}

func (c *composer) feed() {
	c.add(Instruction{Op: OpLineFeed})
}

func (c *composer) rule(char rune) {
	c.add(Instruction{Op: OpRule, Char: char, Width: LineWidth})
}

func (c *composer) align(a Alignment) {
	c.add(Instruction{Op: OpAlign, Align: a})
}

func (c *composer) emphasis(on bool) {
	c.add(Instruction{Op: OpEmphasis, On: on})
}

func (c *composer) composeHeader(header *models.CompanyHeader) {
	h := models.DefaultCompanyHeader()
	if header != nil {
		h = *header
	}

	c.align(AlignCenter)
	c.emphasis(true)
	c.line(receiptTitle)
	c.emphasis(false)
	c.rule(doubleRuleChar)
	c.feed()

	c.align(AlignLeft)
	c.line(h.CompanyName)
	c.line(h.Address1)
	c.line(h.PinNumber)
	c.line(h.PhoneNumber)
	c.line(h.Country)

	c.align(AlignRight)
	c.line(slipCaption)
	c.feed()
}

func (c *composer) composeTransactionInfo(record *models.ReceiptRecord) {
	c.align(AlignLeft)
	c.line(fmt.Sprintf("Transaction No: %d", record.TransactionNumber))
	c.line(fmt.Sprintf("Date: %s", record.TransactionTime.Format(receiptDateFmt)))
	c.line(fmt.Sprintf("Cashier: %s", record.CashierName))
	c.line(fmt.Sprintf("Register: %s", record.RegisterNumber))
	c.feed()
}

func (c *composer) composeItems(items []models.LineItem) {
	c.rule(singleRuleChar)
	c.line(columnHeaderLine)
	c.rule(singleRuleChar)

	if len(items) == 0 {
		c.line(noItemsLine)
		c.rule(singleRuleChar)
		return
	}

	for _, item := range items {
		c.composeItem(item)
	}
	c.rule(singleRuleChar)
}

// composeItem emits one item block: a two-segment main line, then as many
// indented continuation lines as the description needs. The code field is
// fixed at 6 cells and the description field at 20. Cells are measured in
// runes so a multi-byte description never splits mid-rune.
func (c *composer) composeItem(item models.LineItem) {
	desc := []rune(item.DisplayDescription())
	first := desc
	if len(first) > descFieldWidth {
		first = first[:descFieldWidth]
	}

	left := fmt.Sprintf("%-*.*s %-*s", codeFieldWidth, codeFieldWidth, item.ItemLookupCode, descFieldWidth, string(first))
	right := fmt.Sprintf("%3s %8s %8s",
		item.Quantity.StringFixed(0),
		item.Price.StringFixed(2),
		item.Subtotal().StringFixed(2))

	c.add(Instruction{Op: OpColumns, Left: left, Right: right})
	c.feed()

	remaining := ""
	if len(desc) > descFieldWidth {
		remaining = strings.TrimSpace(string(desc[descFieldWidth:]))
	}
	for remaining != "" {
		chunk := []rune(remaining)
		if len(chunk) > descFieldWidth {
			c.line(continuationPad + string(chunk[:descFieldWidth]))
			remaining = strings.TrimSpace(string(chunk[descFieldWidth:]))
		} else {
			c.line(continuationPad + remaining)
			remaining = ""
		}
	}
}

func (c *composer) composeTotals(record *models.ReceiptRecord) {
	c.align(AlignRight)
	c.line(fmt.Sprintf("Sub Total: %s", record.Subtotal().StringFixed(2)))
	c.line(fmt.Sprintf("Sales Tax: %s", record.SalesTax().StringFixed(2)))
	c.emphasis(true)
	c.line(fmt.Sprintf("Grand Total: %s", record.GrandTotal.StringFixed(2)))
	c.emphasis(false)
	c.feed()
}

func (c *composer) composeFooter() {
	c.rule(doubleRuleChar)
	c.align(AlignCenter)
	c.line(thankYouLine)
	c.line(duplicateLine)
	c.rule(doubleRuleChar)
	c.feed()
}
