// Package render turns the report section tree into its two output targets:
// an interactive HTML preview and a paginated print tree the PDF renderer
// feeds to headless Chromium. Both targets walk the same tree, which is what
// keeps the preview and the exported PDF in lockstep.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/clearfield-health/cogreport/internal/report"
)

type Mode int

const (
	// ModePreview renders a continuous scrollable document with collapsible
	// sections.
	ModePreview Mode = iota
	// ModePrint renders fixed A4 pages with repeating page headers and CSS
	// page breaks, ready for PrintToPDF.
	ModePrint
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// maxTickedScale is the largest bar total that still gets per-step tick
// labels (GAD-7's 0..21 is the widest instrument scale).
const maxTickedScale = 21

// RenderHTML renders the document body for the given mode. The caller is
// responsible for wrapping it in a full HTML envelope (see BuildPage).
func RenderHTML(doc report.Document, mode Mode) (string, error) {
	var b strings.Builder
	total := len(doc.Pages)
	for _, p := range doc.Pages {
		if mode == ModePrint {
			fmt.Fprintf(&b, `<div class="page">`)
			writePageHeader(&b, p.Number, total)
		} else {
			fmt.Fprintf(&b, `<div class="page-flow" id="page-%d">`, p.Number)
		}
		for _, s := range p.Sections {
			if err := writeSection(&b, s, mode); err != nil {
				return "", err
			}
		}
		b.WriteString("</div>")
	}
	return b.String(), nil
}

// BuildPage wraps rendered body content into a complete standalone HTML
// document with the report stylesheet inlined.
func BuildPage(title, body string) string {
	var b strings.Builder
	b.WriteString("<!doctype html><html><head><meta charset='utf-8'><title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title><style>")
	b.WriteString(styleCSS)
	b.WriteString("</style></head><body>")
	b.WriteString(body)
	b.WriteString("</body></html>")
	return b.String()
}

func writePageHeader(b *strings.Builder, number, total int) {
	fmt.Fprintf(b, `<header class="page-header">`+
		`<div class="brand"><span class="brand-mark">✚</span>`+
		`<span class="brand-name">%s</span><span class="brand-subtitle">%s</span></div>`+
		`<div class="page-number">Page %d of %d</div></header>`,
		html.EscapeString(report.BrandName), html.EscapeString(report.BrandSubtitle), number, total)
}

func writeSection(b *strings.Builder, s report.Section, mode Mode) error {
	if mode == ModePreview {
		fmt.Fprintf(b, `<details class="rpt-section" open><summary class="rpt-section-header">%s</summary>`, html.EscapeString(s.Title))
	} else {
		fmt.Fprintf(b, `<section class="rpt-section"><div class="rpt-section-header">%s</div>`, html.EscapeString(s.Title))
	}
	b.WriteString(`<div class="rpt-section-body">`)

	// A section may carry an intro narrative alongside its structured body.
	if s.Markdown != "" {
		if err := writeMarkdown(b, s.Markdown); err != nil {
			return err
		}
	}

	switch s.Kind {
	case report.KindKeyValues:
		writeKeyValues(b, s.KeyValues)
	case report.KindTable:
		writeTable(b, s.Table)
	case report.KindList:
		writeList(b, s.Items)
	case report.KindScoreBar:
		writeScoreBar(b, s.Bar)
	case report.KindDomainCards:
		writeDomainCards(b, s.Domains)
	case report.KindResponseCards:
		writeResponseCards(b, s.Cards)
	case report.KindNarrative:
		// Narrative body already written above.
	}

	b.WriteString("</div>")
	if mode == ModePreview {
		b.WriteString("</details>")
	} else {
		b.WriteString("</section>")
	}
	return nil
}

func writeMarkdown(b *strings.Builder, src string) error {
	var out strings.Builder
	if err := markdown.Convert([]byte(src), &out); err != nil {
		return fmt.Errorf("markdown convert: %w", err)
	}
	b.WriteString(`<div class="narrative">`)
	b.WriteString(out.String())
	b.WriteString("</div>")
	return nil
}

func writeKeyValues(b *strings.Builder, kvs []report.KeyValue) {
	b.WriteString(`<table class="kv-table"><tbody>`)
	for _, kv := range kvs {
		fmt.Fprintf(b, `<tr><th>%s</th><td>%s</td></tr>`, html.EscapeString(kv.Key), html.EscapeString(kv.Value))
	}
	b.WriteString("</tbody></table>")
}

func writeTable(b *strings.Builder, t *report.Table) {
	if t == nil {
		return
	}
	b.WriteString(`<table class="data-table"><thead><tr>`)
	for _, c := range t.Columns {
		fmt.Fprintf(b, `<th style="text-align:%s">%s</th>`, c.Align, html.EscapeString(c.Name))
	}
	b.WriteString("</tr></thead><tbody>")
	for i, row := range t.Rows {
		cls := ""
		if i%2 == 1 {
			cls = ` class="stripe"`
		}
		fmt.Fprintf(b, "<tr%s>", cls)
		for j, cell := range row {
			align := report.AlignLeft
			if j < len(t.Columns) {
				align = t.Columns[j].Align
			}
			fmt.Fprintf(b, `<td style="text-align:%s">%s</td>`, align, html.EscapeString(cell))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
}

func writeList(b *strings.Builder, items []string) {
	b.WriteString(`<ul class="item-list">`)
	for _, it := range items {
		fmt.Fprintf(b, "<li>%s</li>", html.EscapeString(it))
	}
	b.WriteString("</ul>")
}

func writeScoreBar(b *strings.Builder, bar *report.ScoreBar) {
	if bar == nil {
		return
	}
	fmt.Fprintf(b, `<div class="score-bar"><div class="score-bar-label">%s</div>`, html.EscapeString(bar.Label))
	fmt.Fprintf(b, `<div class="bar-track"><div class="bar-fill" style="width:%.0f%%"></div></div>`, bar.FillPercent())
	// Tick labels only make sense on discrete instrument scales; percentile
	// bars read as continuous.
	if bar.Total <= maxTickedScale {
		b.WriteString(`<div class="bar-ticks">`)
		for _, t := range bar.Ticks() {
			fmt.Fprintf(b, "<span>%d</span>", t)
		}
		b.WriteString("</div>")
	}
	b.WriteString("</div>")
}

func writeDomainCards(b *strings.Builder, cards []report.DomainCard) {
	for _, c := range cards {
		fmt.Fprintf(b, `<div class="domain-card status-%s">`, c.Status)
		fmt.Fprintf(b, `<div class="domain-card-head"><span class="status-dot"></span><span class="domain-name">%s</span><span class="domain-percentile">%d%%ile</span></div>`,
			html.EscapeString(c.Name), c.Percentile)
		writeScoreBar(b, &c.Bar)
		if c.Description != "" {
			fmt.Fprintf(b, `<p class="domain-desc">%s</p>`, html.EscapeString(c.Description))
		}
		b.WriteString("</div>")
	}
}

func writeResponseCards(b *strings.Builder, cards []report.ResponseCard) {
	for _, c := range cards {
		fmt.Fprintf(b, `<div class="response-card score-%s">`, c.Style)
		fmt.Fprintf(b, `<div class="response-card-head"><span class="question-code">%s</span><span class="score-chip">%s</span></div>`,
			html.EscapeString(c.Code), html.EscapeString(c.Score))
		fmt.Fprintf(b, `<p class="question-text">%s</p>`, html.EscapeString(c.Question))
		fmt.Fprintf(b, `<p class="response-text">%s</p>`, html.EscapeString(c.Response))
		b.WriteString("</div>")
	}
}
