package service

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

type CertificateData struct {
	Username string
	Score    int
	Total    int
	Language string
	Forced   bool
	IssuedAt time.Time
}

func (d CertificateData) Percentage() float64 {
	if d.Total <= 0 {
		return 0
	}
	return float64(d.Score) / float64(d.Total) * 100
}

type ReportRow struct {
	Language string
	Score    int
	Total    int
	Date     time.Time
}

type ReportData struct {
	Username    string
	GeneratedAt time.Time
	Rows        []ReportRow
}

// Summary returns the quiz count and the average percentage across all
// questions answered. The average is 0 when nothing was answered.
func (r ReportData) Summary() (int, float64) {
	score, total := 0, 0
	for _, row := range r.Rows {
		score += row.Score
		total += row.Total
	}
	if total == 0 {
		return len(r.Rows), 0
	}
	return len(r.Rows), float64(score) / float64(total) * 100
}

func renderCertificate(path string, d CertificateData) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate of Completion", true)
	pdf.SetAuthor("Quiz App", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	w, h := pdf.GetPageSize()
	pdf.SetLineWidth(1.2)
	pdf.Rect(8, 8, w-16, h-16, "D")

	pdf.SetY(35)
	pdf.SetFont("Helvetica", "B", 36)
	pdf.CellFormat(0, 18, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetLineWidth(0.8)
	pdf.Line(w/2-40, pdf.GetY()+2, w/2+40, pdf.GetY()+2)
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 18)
	pdf.CellFormat(0, 10, "This is to certify that", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, tr(d.Username), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 18)
	pdf.CellFormat(0, 10, "has successfully completed the", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("%s Programming Quiz", d.Language)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("with a score of %d/%d (%.0f%%)", d.Score, d.Total, d.Percentage()), "", 1, "C", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 12)
	pdf.CellFormat(0, 8, "Issued on "+d.IssuedAt.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	if d.Forced {
		pdf.CellFormat(0, 8, "Submitted automatically after repeated tab switches", "", 1, "C", false, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}

func renderReport(path string, r ReportData) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quiz Results Report", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Quiz Results Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 8, tr("User: "+r.Username), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Report Generated: "+r.GeneratedAt.Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "BU", 12)
	pdf.CellFormat(0, 8, "Quiz Results:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for i, row := range r.Rows {
		line := fmt.Sprintf("Quiz %d:  Language: %s  Score: %d/%d  Date: %s",
			i+1, row.Language, row.Score, row.Total, row.Date.Format("2006-01-02"))
		pdf.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")
	}

	count, avg := r.Summary()
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "BU", 12)
	pdf.CellFormat(0, 8, "Summary:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total Quizzes Taken: %d", count), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Average Score: %.2f%%", avg), "", 1, "L", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, "Generated by Quiz App", "", 1, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}
