package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFRenderer turns an HTML document into a PDF
type PDFRenderer interface {
	RenderPDF(ctx context.Context, htmlContent string, options PDFOptions) ([]byte, error)
}

// PDFOptions contains options for PDF generation
type PDFOptions struct {
	PageOrientation string // portrait, landscape
	PageSize        string // A4, letter
	MarginTop       int    // points (72 = 1 inch)
	MarginBottom    int
	MarginLeft      int
	MarginRight     int
}

// DefaultPDFOptions returns A4 portrait with half-inch margins
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageOrientation: "portrait",
		PageSize:        "A4",
		MarginTop:       36,
		MarginBottom:    36,
		MarginLeft:      36,
		MarginRight:     36,
	}
}

// LandscapePDFOptions is used for wide tables such as the work log
func LandscapePDFOptions() PDFOptions {
	opts := DefaultPDFOptions()
	opts.PageOrientation = "landscape"
	return opts
}

// paperSize returns width and height in inches
func (o PDFOptions) paperSize() (float64, float64) {
	var w, h float64
	switch o.PageSize {
	case "letter":
		w, h = 8.5, 11.0
	default: // A4
		w, h = 8.27, 11.69
	}
	if o.PageOrientation == "landscape" {
		w, h = h, w
	}
	return w, h
}

// ChromePDFRenderer prints HTML with headless Chrome
type ChromePDFRenderer struct {
	// ExecPath overrides the browser binary (headless-shell in Docker)
	ExecPath string
}

// NewChromePDFRenderer creates a renderer using the given Chrome binary, or
// the one chromedp finds when execPath is empty
func NewChromePDFRenderer(execPath string) *ChromePDFRenderer {
	return &ChromePDFRenderer{ExecPath: execPath}
}

// RenderPDF renders HTML content to PDF. The browser lives only for this call.
func (r *ChromePDFRenderer) RenderPDF(ctx context.Context, htmlContent string, options PDFOptions) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	paperWidth, paperHeight := options.paperSize()

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(float64(options.MarginTop) / 72.0).
				WithMarginBottom(float64(options.MarginBottom) / 72.0).
				WithMarginLeft(float64(options.MarginLeft) / 72.0).
				WithMarginRight(float64(options.MarginRight) / 72.0).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdfBuf, nil
}

// WrapHTMLForPDF wraps a rendered report body in a printable document
func WrapHTMLForPDF(title, content string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>`)
	b.WriteString(html.EscapeString(title))
	b.WriteString(`</title>
    <style>
        body {
            font-family: "DejaVu Sans", Arial, sans-serif;
            font-size: 10pt;
            color: #111;
        }
        h1 {
            font-size: 15pt;
            margin-bottom: 12pt;
        }
        table {
            width: 100%;
            border-collapse: collapse;
        }
        th, td {
            border: 1px solid #999;
            padding: 4pt 6pt;
            text-align: left;
        }
        th {
            background: #eee;
        }
        td.num, .text-right {
            text-align: right;
            white-space: nowrap;
        }
        tfoot td {
            font-weight: bold;
        }
        .meta {
            color: #555;
            margin-bottom: 12pt;
        }
    </style>
</head>
<body>
`)
	b.WriteString(content)
	b.WriteString(`
</body>
</html>`)
	return b.String()
}
