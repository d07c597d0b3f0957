package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"todoapi/internal/domain/models"
	"todoapi/internal/utils"

	"github.com/phpdave11/gofpdf"
)

type ReportService struct {
	Todos   TodoStore
	Timeout time.Duration
	Now     func() time.Time
}

// TodosPDF renders every todo as a single A4 report.
func (s ReportService) TodosPDF(ctx context.Context) ([]byte, string, error) {
	qctx, cancel := withTimeout(ctx, s.Timeout)
	todos, err := s.Todos.FindAll(qctx)
	cancel()
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	pdfBytes, err := buildTodoReportPDF(todos, now)
	if err != nil {
		return nil, "", fmt.Errorf("render todo report: %w", err)
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "report", "todos_pdf", "rows="+strconv.Itoa(len(todos)))
	return pdfBytes, "TODOS_" + now.Format("20060102_150405") + ".pdf", nil
}

func buildTodoReportPDF(todos []models.Todo, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Todo Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TODO REPORT")
	pdf.Ln(10)

	done := 0
	for _, t := range todos {
		if t.Completed {
			done++
		}
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, "Generated : "+now.Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Total     : %d (%d completed)", len(todos), done))
	pdf.Ln(10)

	widths := []float64{15, 60, 80, 25}
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range []string{"ID", "Title", "Description", "Done"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, t := range todos {
		status := "no"
		if t.Completed {
			status = "yes"
		}
		row := []string{strconv.FormatInt(t.ID, 10), clip(t.Title, 32), clip(t.Description, 45), status}
		for i, v := range row {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
