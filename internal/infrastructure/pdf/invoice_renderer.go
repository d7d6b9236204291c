// Package pdf renders invoices to PDF through headless Chrome.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	invoicingapp "github.com/fintrack/backend/internal/application/invoicing"
	"github.com/fintrack/backend/internal/domain/invoicing"
	"github.com/fintrack/backend/internal/infrastructure/config"
)

const defaultRenderTimeout = 30 * time.Second

var _ invoicingapp.PDFRenderer = (*InvoiceRenderer)(nil)

// InvoiceRenderer produces invoice PDFs with the Chrome DevTools protocol
type InvoiceRenderer struct {
	timeout     time.Duration
	logger      *zap.Logger
	tmpl        *template.Template
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewInvoiceRenderer creates a renderer backed by a headless Chrome
// allocator. Close must be called on shutdown.
func NewInvoiceRenderer(cfg config.PDFConfig, logger *zap.Logger) (*InvoiceRenderer, error) {
	tmpl, err := template.New("invoice").Parse(invoiceTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse invoice template: %w", err)
	}

	timeout := cfg.RenderTimeout
	if timeout == 0 {
		timeout = defaultRenderTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &InvoiceRenderer{
		timeout:     timeout,
		logger:      logger,
		tmpl:        tmpl,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}, nil
}

// Close releases the Chrome allocator
func (r *InvoiceRenderer) Close() {
	if r.allocCancel != nil {
		r.allocCancel()
	}
}

// RenderInvoice renders the invoice as an A4 PDF
func (r *InvoiceRenderer) RenderInvoice(ctx context.Context, invoice *invoicing.Invoice, client *invoicing.Client) ([]byte, error) {
	html, err := r.buildHTML(invoice, client)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx)
	defer browserCancel()

	start := time.Now()
	var pdfData []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.5).
				WithMarginLeft(0.5).
				WithMarginRight(0.5).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("pdf rendering timed out after %v", r.timeout)
		}
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("generated pdf is empty")
	}

	r.logger.Info("Invoice PDF rendered",
		zap.String("invoice", invoice.Number),
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(start)))
	return pdfData, nil
}

type invoiceItemView struct {
	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string
}

type invoiceView struct {
	Number     string
	Status     string
	IssueDate  string
	DueDate    string
	Client     *invoicing.Client
	Items      []invoiceItemView
	Subtotal   string
	VATRate    string
	VATAmount  string
	Total      string
	Notes      string
	CancelNote string
}

func (r *InvoiceRenderer) buildHTML(invoice *invoicing.Invoice, client *invoicing.Client) (string, error) {
	printer := message.NewPrinter(language.English)
	currency := string(invoice.Currency)
	money := func(d decimal.Decimal) string {
		f, _ := d.Round(2).Float64()
		return printer.Sprintf("%s %v", currency, number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	}

	view := invoiceView{
		Number:     invoice.Number,
		Status:     string(invoice.Status),
		IssueDate:  invoice.IssueDate.Format("January 2, 2006"),
		DueDate:    invoice.DueDate.Format("January 2, 2006"),
		Client:     client,
		Subtotal:   money(invoice.Subtotal),
		VATRate:    invoice.VATRate.StringFixed(1) + "%",
		VATAmount:  money(invoice.VATAmount),
		Total:      money(invoice.Total),
		Notes:      invoice.Notes,
		CancelNote: invoice.CancelNote,
	}
	for _, item := range invoice.Items {
		view.Items = append(view.Items, invoiceItemView{
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			UnitPrice:   money(item.UnitPrice),
			LineTotal:   money(item.LineTotal),
		})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to build invoice html: %w", err)
	}
	return buf.String(), nil
}
