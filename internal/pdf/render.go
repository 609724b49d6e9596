// Package pdf converts generated markdown documents into PDF files with a
// line-oriented layout: each line is classified as a heading, bullet,
// numbered item, or paragraph and rendered with a fixed style per class.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pageLeft   = 25.0
	pageTop    = 20.0
	pageRight  = 25.0
	lineHeight = 5.0
	// Letter width in mm minus both margins.
	textWidth = 215.9 - pageLeft - pageRight
)

type renderer struct {
	pdf *fpdf.Fpdf
	// tr maps UTF-8 to the code page of the built-in fonts.
	tr func(string) string
}

// Render converts markdown text to PDF bytes.
func Render(markdown string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(pageLeft, pageTop, pageRight)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	r := &renderer{pdf: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}

	for _, raw := range strings.Split(cleanSpecialChars(markdown), "\n") {
		c := ClassifyLine(raw)
		switch c.Class {
		case ClassSkip:
			if strings.TrimSpace(raw) == "" {
				doc.Ln(2)
			}
		case ClassH1:
			r.heading1(c.Text)
		case ClassH2, ClassPseudoHeading:
			r.heading2(c.Text)
		case ClassH3:
			r.heading3(c.Text)
		case ClassBullet:
			r.bullet(c.Text)
		case ClassNumbered:
			r.numbered(c.Num, c.Text)
		case ClassParagraph:
			r.paragraph(c.Text)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// heading1 renders a large dark-blue heading with an underline rule.
func (r *renderer) heading1(text string) {
	p := r.pdf
	p.Ln(4)
	p.SetFont("Helvetica", "B", 16)
	p.SetTextColor(25, 60, 120)
	p.SetX(pageLeft)
	p.MultiCell(textWidth, 8, r.tr(text), "", "L", false)
	y := p.GetY()
	p.SetDrawColor(37, 99, 180)
	p.SetLineWidth(0.5)
	p.Line(pageLeft, y, 190, y)
	p.Ln(3)
	p.SetTextColor(0, 0, 0)
}

func (r *renderer) heading2(text string) {
	p := r.pdf
	p.Ln(5)
	p.SetFont("Helvetica", "B", 13)
	p.SetTextColor(40, 80, 140)
	p.SetX(pageLeft)
	p.MultiCell(textWidth, 7, r.tr(text), "", "L", false)
	p.Ln(1)
	p.SetTextColor(0, 0, 0)
}

func (r *renderer) heading3(text string) {
	p := r.pdf
	p.Ln(3)
	p.SetFont("Helvetica", "B", 11)
	p.SetTextColor(60, 60, 60)
	p.SetX(pageLeft)
	p.MultiCell(textWidth, 6, r.tr(text), "", "L", false)
	p.SetTextColor(0, 0, 0)
}

func (r *renderer) bullet(text string) {
	p := r.pdf
	p.SetFont("Helvetica", "", 10)
	p.SetX(pageLeft + 5)
	p.SetTextColor(37, 99, 180)
	p.Write(lineHeight, "- ")
	p.SetTextColor(0, 0, 0)
	r.writeInline(text, 10)
	p.Ln(lineHeight)
}

func (r *renderer) numbered(num, text string) {
	p := r.pdf
	p.SetFont("Helvetica", "B", 10)
	p.SetX(pageLeft + 5)
	p.SetTextColor(37, 99, 180)
	p.Write(lineHeight, num+". ")
	p.SetTextColor(0, 0, 0)
	p.SetFont("Helvetica", "", 10)
	r.writeInline(text, 10)
	p.Ln(lineHeight)
}

func (r *renderer) paragraph(text string) {
	r.pdf.SetX(pageLeft)
	r.writeInline(text, 10)
	r.pdf.Ln(lineHeight)
}

// writeInline writes one line with inline **bold** runs. When a line has no
// explicit markers but starts with a short label before a colon, the label is
// auto-bolded.
func (r *renderer) writeInline(text string, size float64) {
	p := r.pdf

	if strings.Contains(text, "**") {
		for _, part := range splitBoldRuns(text) {
			if part.bold {
				p.SetFont("Helvetica", "B", size)
			} else {
				p.SetFont("Helvetica", "", size)
			}
			p.Write(lineHeight, r.tr(stripInlineMarkup(part.text)))
		}
		p.SetFont("Helvetica", "", size)
		return
	}

	if idx := strings.Index(text, ":"); idx > 0 && idx < 40 {
		p.SetFont("Helvetica", "B", size)
		p.Write(lineHeight, r.tr(text[:idx]))
		p.SetFont("Helvetica", "", size)
		p.Write(lineHeight, r.tr(stripInlineMarkup(text[idx:])))
		return
	}

	p.SetFont("Helvetica", "", size)
	p.Write(lineHeight, r.tr(stripInlineMarkup(text)))
}

type boldRun struct {
	text string
	bold bool
}

// splitBoldRuns splits a line on **bold** spans, preserving order.
func splitBoldRuns(text string) []boldRun {
	var runs []boldRun
	for {
		start := strings.Index(text, "**")
		if start < 0 {
			break
		}
		end := strings.Index(text[start+2:], "**")
		if end < 0 {
			break
		}
		if start > 0 {
			runs = append(runs, boldRun{text: text[:start]})
		}
		runs = append(runs, boldRun{text: text[start+2 : start+2+end], bold: true})
		text = text[start+2+end+2:]
	}
	if text != "" {
		runs = append(runs, boldRun{text: text})
	}
	return runs
}
