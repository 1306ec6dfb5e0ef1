package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Salis02/quiz-app-backend/internal/handler/dto"
	"github.com/Salis02/quiz-app-backend/internal/middleware"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
	"github.com/Salis02/quiz-app-backend/internal/service"
)

// ResultHandler - отчеты по викторине для ее автора
type ResultHandler struct {
	errorResponder
	resultService *service.ResultService
	log           *logger.Logger
}

// NewResultHandler создает обработчик отчетов
func NewResultHandler(resultService *service.ResultService, log *logger.Logger) *ResultHandler {
	l := log.With("handler", "ResultHandler")
	return &ResultHandler{
		errorResponder: errorResponder{log: l},
		resultService:  resultService,
		log:            l,
	}
}

var exportHeaders = []string{"Место", "Пользователь", "Email", "Балл", "Правильных", "Всего вопросов", "Начало", "Завершение"}

// GetQuizResults возвращает рейтинг и статистику по викторине
func (h *ResultHandler) GetQuizResults(c *gin.Context) {
	adminID, _ := middleware.UserID(c)
	quizID := c.MustGet("quizID").(uint)

	res, err := h.resultService.GetQuizResults(c.Request.Context(), quizID, adminID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizResultsResponse(res))
}

// ExportQuizResults выгружает результаты в CSV (по умолчанию) или XLSX
func (h *ResultHandler) ExportQuizResults(c *gin.Context) {
	adminID, _ := middleware.UserID(c)
	quizID := c.MustGet("quizID").(uint)
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		h.respondBindError(c, fmt.Errorf("format must be csv or xlsx"))
		return
	}

	res, err := h.resultService.GetQuizResults(c.Request.Context(), quizID, adminID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	rows := dto.NewQuizResultsResponse(res).Attempts
	filename := fmt.Sprintf("quiz_%d_results_%s", quizID, time.Now().Format("2006-01-02"))
	if format == "xlsx" {
		h.exportXLSX(c, rows, filename)
		return
	}
	h.exportCSV(c, rows, filename)
}

// exportCSV экспортирует результаты в CSV с правильным экранированием спецсимволов
func (h *ResultHandler) exportCSV(c *gin.Context, rows []dto.AttemptResultResponse, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	_, _ = c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(exportHeaders)
	for _, r := range rows {
		_ = writer.Write([]string{
			strconv.Itoa(r.Rank),
			sanitizeForExcel(r.UserName),
			sanitizeForExcel(r.UserEmail),
			strconv.FormatFloat(r.Score, 'f', 2, 64),
			strconv.Itoa(r.CorrectAnswers),
			strconv.Itoa(r.TotalQuestions),
			r.StartedAt.Format(time.RFC3339),
			formatFinished(r.FinishedAt),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.log.Error("csv export failed", "error", err)
	}
}

// exportXLSX экспортирует результаты в Excel с использованием StreamWriter
func (h *ResultHandler) exportXLSX(c *gin.Context, rows []dto.AttemptResultResponse, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Результаты"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		h.respondError(c, fmt.Errorf("rename sheet: %w", err))
		return
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		h.respondError(c, fmt.Errorf("create stream writer: %w", err))
		return
	}

	header := make([]interface{}, len(exportHeaders))
	for i, v := range exportHeaders {
		header[i] = v
	}
	if err := sw.SetRow("A1", header); err != nil {
		h.respondError(c, fmt.Errorf("write header: %w", err))
		return
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			r.Rank, sanitizeForExcel(r.UserName), sanitizeForExcel(r.UserEmail), r.Score,
			r.CorrectAnswers, r.TotalQuestions, r.StartedAt.Format(time.RFC3339), formatFinished(r.FinishedAt),
		}
		if err := sw.SetRow(cell, row); err != nil {
			h.respondError(c, fmt.Errorf("write row %d: %w", i+2, err))
			return
		}
	}
	if err := sw.Flush(); err != nil {
		h.respondError(c, fmt.Errorf("flush xlsx: %w", err))
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		h.log.Error("xlsx export failed", "error", err)
	}
}

func formatFinished(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
