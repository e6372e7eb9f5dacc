package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// Page geometry (A4, millimetres).
const (
	pageMargin  = 15.0
	contentW    = 180.0
	bottomLimit = 272.0 // rows never extend past this line

	titleBandH    = 18.0
	metaBandH     = 14.0
	categoryBandH = 9.0
	columnBandH   = 7.0
	rowH          = 8.0
	remarkH       = 6.0
	ratingBandH   = 14.0
	gapH          = 4.0

	scoreColW  = 30.0
	remarkIndW = 8.0
)

type rgb struct{ r, g, b int }

var (
	colorTitle    = rgb{23, 62, 96}
	colorMeta     = rgb{241, 243, 245}
	colorCategory = rgb{13, 110, 253}
	colorColumns  = rgb{222, 226, 230}
	colorMuted    = rgb{108, 117, 125}
	colorText     = rgb{33, 37, 41}

	bandColors = map[Band]rgb{
		BandSuccess: {25, 135, 84},
		BandWarning: {255, 193, 7},
		BandDanger:  {220, 53, 69},
	}
)

// RenderInput is everything printed on a progress report.
type RenderInput struct {
	Title        string
	EnrollmentID string
	StudentName  string
	ReportDate   string
	WeekNumber   int
	Sections     []Section
}

// Section is one category of the report.
type Section struct {
	Title string
	Rows  []Row
}

// Row is one subtask line. A nil Score is printed but not rated.
type Row struct {
	Name        string
	Score       *int
	Description string
}

// Artifact is a rendered report.
type Artifact struct {
	Data       []byte
	Pages      int
	Rating     Rating
	TotalScore int
	Scored     int
}

// Renderer draws progress reports as fixed-size paginated PDF documents.
type Renderer struct {
	author string

	onColumnBand func(page int) // observes column header bands
}

func NewRenderer(author string) *Renderer {
	return &Renderer{author: author}
}

type canvas struct {
	pdf          *fpdf.Fpdf
	tr           func(string) string
	onColumnBand func(page int)
}

func (c *canvas) fill(col rgb) { c.pdf.SetFillColor(col.r, col.g, col.b) }
func (c *canvas) text(col rgb) { c.pdf.SetTextColor(col.r, col.g, col.b) }

// fits reports whether a block of height h still fits above the bottom limit.
func (c *canvas) fits(h float64) bool {
	return c.pdf.GetY()+h <= bottomLimit
}

func (c *canvas) newPage() {
	c.pdf.AddPage()
	c.pdf.SetXY(pageMargin, pageMargin)
}

// clip shortens s until it fits in width w.
func (c *canvas) clip(s string, w float64) string {
	s = c.tr(s)
	if c.pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && c.pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// Render lays out in and computes its overall rating.
// Before each row the projected position is checked against the bottom limit; when it does not fit
// a new page is started and the column header band is drawn again.
func (r *Renderer) Render(in RenderInput) (Artifact, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetAuthor(r.author, true)
	pdf.SetTitle(in.Title, true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetXY(pageMargin, -10)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(colorMuted.r, colorMuted.g, colorMuted.b)
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	c := &canvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), onColumnBand: r.onColumnBand}
	c.newPage()
	c.titleBand(in)
	c.metaBand(in)

	var total, scored int
	for _, sec := range in.Sections {
		if !c.fits(categoryBandH + columnBandH + rowH) {
			c.newPage()
		}
		c.categoryBand(sec.Title)
		c.columnBand()

		for _, row := range sec.Rows {
			need := rowH
			if row.Description != "" {
				need += remarkH
			}
			if !c.fits(need) {
				c.newPage()
				c.columnBand()
			}
			c.row(row)
			if row.Score != nil {
				total += *row.Score
				scored++
			}
		}
		pdf.SetY(pdf.GetY() + gapH)
	}

	rating := RatingFor(total, scored)
	if !c.fits(ratingBandH) {
		c.newPage()
	}
	c.ratingBand(rating, total, scored)

	if err := pdf.Error(); err != nil {
		return Artifact{}, errors.Wrap(err, "rendering report")
	}
	pages := pdf.PageNo()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Artifact{}, errors.Wrap(err, "writing report")
	}
	return Artifact{
		Data:       buf.Bytes(),
		Pages:      pages,
		Rating:     rating,
		TotalScore: total,
		Scored:     scored,
	}, nil
}

func (c *canvas) titleBand(in RenderInput) {
	c.fill(colorTitle)
	c.text(rgb{255, 255, 255})
	c.pdf.SetFont("Helvetica", "B", 16)
	c.pdf.SetX(pageMargin)
	c.pdf.CellFormat(contentW, titleBandH, c.clip(in.Title, contentW-4), "", 1, "C", true, 0, "")
	c.pdf.SetY(c.pdf.GetY() + gapH)
}

func (c *canvas) metaBand(in RenderInput) {
	c.fill(colorMeta)
	c.text(colorText)
	c.pdf.SetFont("Helvetica", "", 10)

	half := contentW / 2
	lineH := metaBandH / 2
	left := []string{"Enrollment: " + in.EnrollmentID, "Student: " + in.StudentName}
	right := []string{"Date: " + in.ReportDate, ""}
	if in.WeekNumber > 0 {
		right[1] = fmt.Sprintf("Week: %d", in.WeekNumber)
	}
	for i := range left {
		c.pdf.SetX(pageMargin)
		c.pdf.CellFormat(half, lineH, c.clip(left[i], half-4), "", 0, "L", true, 0, "")
		c.pdf.CellFormat(half, lineH, c.clip(right[i], half-4), "", 1, "R", true, 0, "")
	}
	c.pdf.SetY(c.pdf.GetY() + gapH)
}

func (c *canvas) categoryBand(title string) {
	c.fill(colorCategory)
	c.text(rgb{255, 255, 255})
	c.pdf.SetFont("Helvetica", "B", 12)
	c.pdf.SetX(pageMargin)
	c.pdf.CellFormat(contentW, categoryBandH, c.clip(title, contentW-4), "", 1, "L", true, 0, "")
}

func (c *canvas) columnBand() {
	c.fill(colorColumns)
	c.text(colorText)
	c.pdf.SetFont("Helvetica", "B", 10)
	c.pdf.SetX(pageMargin)
	c.pdf.CellFormat(contentW-scoreColW, columnBandH, "Sub Task", "", 0, "L", true, 0, "")
	c.pdf.CellFormat(scoreColW, columnBandH, "Score", "", 1, "C", true, 0, "")
	if c.onColumnBand != nil {
		c.onColumnBand(c.pdf.PageNo())
	}
}

func (c *canvas) row(row Row) {
	c.text(colorText)
	c.pdf.SetFont("Helvetica", "", 10)
	c.pdf.SetX(pageMargin)
	c.pdf.CellFormat(contentW-scoreColW, rowH, c.clip(row.Name, contentW-scoreColW-4), "B", 0, "L", false, 0, "")

	if row.Score != nil {
		c.fill(bandColors[BandFor(*row.Score)])
		c.text(rgb{255, 255, 255})
		c.pdf.SetFont("Helvetica", "B", 10)
		c.pdf.CellFormat(scoreColW, rowH, fmt.Sprintf("%d/5", *row.Score), "B", 1, "C", true, 0, "")
	} else {
		c.text(colorMuted)
		c.pdf.CellFormat(scoreColW, rowH, "-", "B", 1, "C", false, 0, "")
	}

	if row.Description != "" {
		c.text(colorMuted)
		c.pdf.SetFont("Helvetica", "I", 9)
		c.pdf.SetX(pageMargin + remarkIndW)
		remark := "Remark: " + strings.Join(strings.Fields(row.Description), " ")
		c.pdf.CellFormat(contentW-remarkIndW, remarkH, c.clip(remark, contentW-remarkIndW-2), "", 1, "L", false, 0, "")
	}
}

func (c *canvas) ratingBand(rating Rating, total, scored int) {
	col := bandColors[BandDanger]
	switch rating {
	case RatingExcellent:
		col = bandColors[BandSuccess]
	case RatingGood, RatingSatisfactory:
		col = bandColors[BandWarning]
	}

	label := "Overall Rating: " + string(rating)
	if scored > 0 {
		label += fmt.Sprintf(" (average %.2f over %d sub tasks)", float64(total)/float64(scored), scored)
	}
	c.fill(col)
	c.text(rgb{255, 255, 255})
	c.pdf.SetFont("Helvetica", "B", 12)
	c.pdf.SetX(pageMargin)
	c.pdf.CellFormat(contentW, ratingBandH, c.clip(label, contentW-4), "", 1, "C", true, 0, "")
}
