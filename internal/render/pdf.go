package render

import (
	"context"
	"encoding/base64"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/clearfield-health/cogreport/internal/report"
)

const pdfRenderTimeout = 30 * time.Second

// ChromiumRenderer prints the report's page tree to PDF through headless
// Chromium. The print HTML is built from the same section tree as the
// preview, so what the clinician saw is what downloads.
type ChromiumRenderer struct {
	chromePath string
}

func NewChromiumRenderer() *ChromiumRenderer {
	return &ChromiumRenderer{chromePath: detectChromePath()}
}

func (r *ChromiumRenderer) Render(ctx context.Context, doc report.Document) ([]byte, error) {
	ctx, span := otel.Tracer("cogreport/render").Start(ctx, "pdf.render")
	defer span.End()
	span.SetAttributes(attribute.Int("report.pages", len(doc.Pages)))

	body, err := RenderHTML(doc, ModePrint)
	if err != nil {
		return nil, err
	}
	htmlDoc := BuildPage(report.BrandSubtitle, body)

	timeoutCtx, cancel := context.WithTimeout(ctx, pdfRenderTimeout)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// The document carries its own repeating page header, so the
			// browser header/footer stay empty.
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DocumentRenderer is the seam the server and export encoder depend on, so
// tests can substitute a renderer that does not need a browser.
type DocumentRenderer interface {
	Render(ctx context.Context, doc report.Document) ([]byte, error)
}

var _ DocumentRenderer = (*ChromiumRenderer)(nil)
