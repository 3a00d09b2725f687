package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"internhub/internal/models"
)

// Generator renders a student's task logbook to a PDF file.
type Generator interface {
	GenerateLogbook(data LogbookData) (string, error)
}

type LogbookData struct {
	StudentName string
	Institution string
	Supervisor  string
	Tasks       []models.Task
	GeneratedAt time.Time
	Filename    string // file name without path; generated when empty
}

// LogbookGenerator writes PDFs under RootDir.
type LogbookGenerator struct {
	RootDir string
}

func NewLogbookGenerator(rootDir string) *LogbookGenerator {
	return &LogbookGenerator{RootDir: filepath.Clean(rootDir)}
}

func (g *LogbookGenerator) GenerateLogbook(data LogbookData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("logbook_%s.pdf", data.GeneratedAt.Format("20060102_150405"))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Internship Logbook", false)
	pdf.SetAuthor("InternHub", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Internship Logbook", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, data.GeneratedAt.Format("02 Jan 2006"), "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Student")
	g.kvLine(pdf, "Name", data.StudentName)
	g.kvLine(pdf, "Institution", data.Institution)
	g.kvLine(pdf, "Supervisor", data.Supervisor)
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Tasks")
	for i, t := range data.Tasks {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s  [%s]", i+1, t.Title, t.Status), "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		if t.Description != "" {
			pdf.MultiCell(0, 6, t.Description, "", "L", false)
		}
		if t.SubmissionContent != nil {
			pdf.MultiCell(0, 6, "Submission: "+*t.SubmissionContent, "", "L", false)
		}
		if t.Rating != nil {
			pdf.MultiCell(0, 6, fmt.Sprintf("Rating: %d/5", *t.Rating), "", "L", false)
		}
		if t.CompletedAt != nil {
			pdf.MultiCell(0, 6, "Completed: "+t.CompletedAt.Format("02 Jan 2006"), "", "L", false)
		}
		pdf.Ln(2)
	}
	if len(data.Tasks) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, "No tasks recorded yet.", "", "L", false)
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *LogbookGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(g.RootDir, filepath.Base(filename)), nil
}

func (g *LogbookGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *LogbookGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *LogbookGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
