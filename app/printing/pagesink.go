package printing

import (
	"bufio"
	"fmt"
	"os"
)

// PageSink consumes a rendered page. Platform print backends implement
// this against their native drawing surface.
type PageSink interface {
	DrawPage(page *Page) error
}

// FilePageSink dumps a page as positioned text lines, one draw operation
// per line. Used for previewing the driver path without a printer.
type FilePageSink struct {
	Path string
}

func (s FilePageSink) DrawPage(page *Page) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("creating page dump %s: %w", s.Path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "paper=%q width=%d height=%d dpi=%d overflow=%v\n",
		page.PaperName, page.WidthHundredths, page.HeightHundredths, page.DPI, page.Overflow)
	for _, op := range page.Ops {
		flag := " "
		if op.Bold {
			flag = "B"
		}
		fmt.Fprintf(w, "%8.1f %8.1f %2dpt %s %s\n", op.X, op.Y, op.Points, flag, op.Text)
	}
	return w.Flush()
}
