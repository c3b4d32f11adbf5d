package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-api/internal/service"
)

// resultColumns is the flat export header. Column order is part of the API.
var resultColumns = []string{
	"tracker",
	"quiz",
	"identity",
	"quiz_started_at",
	"quiz_complete",
	"quiz_completed_at",
	"question_id",
	"question_text",
	"answer_text",
	"answer_value",
	"answer_correct",
	"answer_created_at",
}

// statsWindowDays is the trailing window for GET /stats.
const statsWindowDays = 30

// ResultHandler serves the results export and the stats endpoint.
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler creates a new result handler
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// QuizResults handles GET /quiz-results: one row per tracker/answer pair,
// CSV by default, XLSX with ?format=xlsx.
func (h *ResultHandler) QuizResults(c *gin.Context) {
	rows, err := h.resultService.ExportResults()
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("format") == "xlsx" {
		h.writeXLSX(c, rows)
		return
	}
	h.writeCSV(c, rows)
}

// Stats handles GET /stats: aggregate counts over the trailing window ending
// at request time.
func (h *ResultHandler) Stats(c *gin.Context) {
	stats, err := h.resultService.ComputeStats(statsWindowDays, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *ResultHandler) writeCSV(c *gin.Context, rows []service.ExportRow) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="quiz-results.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(resultColumns); err != nil {
		log.Printf("[ResultHandler] CSV write failed: %v", err)
		return
	}
	for _, row := range rows {
		if err := w.Write(csvRecord(row)); err != nil {
			log.Printf("[ResultHandler] CSV write failed: %v", err)
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("[ResultHandler] CSV flush failed: %v", err)
	}
}

func (h *ResultHandler) writeXLSX(c *gin.Context, rows []service.ExportRow) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[ResultHandler] XLSX close failed: %v", err)
		}
	}()

	sheet := f.GetSheetName(0)
	for col, name := range resultColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			respondError(c, err)
			return
		}
	}
	for i, row := range rows {
		for col, value := range csvRecord(row) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				respondError(c, err)
				return
			}
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="quiz-results.xlsx"`)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ResultHandler] XLSX write failed: %v", err)
	}
}

// csvRecord renders one export row. Empty completed_at stays an empty cell.
func csvRecord(row service.ExportRow) []string {
	completedAt := ""
	if row.CompletedAt != nil {
		completedAt = row.CompletedAt.Format(time.RFC3339)
	}
	return []string{
		row.TrackerID.String(),
		row.QuizID.String(),
		row.Identity.String(),
		row.StartedAt.Format(time.RFC3339),
		fmt.Sprintf("%t", row.Complete),
		completedAt,
		row.QuestionID.String(),
		row.QuestionText,
		row.AnswerText,
		row.AnswerValue,
		fmt.Sprintf("%t", row.AnswerCorrect),
		row.AnswerCreatedAt.Format(time.RFC3339),
	}
}
