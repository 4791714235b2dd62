package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/rahat/tastybites-backend/internal/errors"
	"github.com/rahat/tastybites-backend/internal/app/service"
	"github.com/rahat/tastybites-backend/internal/middleware"
)

// ReportController handles dashboard report endpoints
type ReportController struct {
	reportService service.ReportService
}

// NewReportController creates a new report controller
func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// Daily handles GET /api/reports/daily?date=YYYY-MM-DD
func (ctrl *ReportController) Daily(c *gin.Context) {
	day, err := parseDateParam(c.Query("date"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "date must be YYYY-MM-DD")
		return
	}
	if day.IsZero() {
		day = time.Now()
	}

	report, err := ctrl.reportService.DailyReport(day)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Weekly handles GET /api/reports/weekly?start=YYYY-MM-DD
func (ctrl *ReportController) Weekly(c *gin.Context) {
	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "start must be YYYY-MM-DD")
		return
	}
	if start.IsZero() {
		// Default to the current week, starting Monday
		now := time.Now()
		offset := (int(now.Weekday()) + 6) % 7
		start = now.AddDate(0, 0, -offset)
	}

	report, err := ctrl.reportService.WeeklyReport(start)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Monthly handles GET /api/reports/monthly?year=2026&month=8
func (ctrl *ReportController) Monthly(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "year must be a number")
			return
		}
		year = parsed
	}
	if m := c.Query("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "month must be 1-12")
			return
		}
		month = time.Month(parsed)
	}

	report, err := ctrl.reportService.MonthlyReport(year, month)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Export handles GET /api/reports/export?from=YYYY-MM-DD&to=YYYY-MM-DD
// and streams the report as an XLSX download.
func (ctrl *ReportController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	from, err := parseDateParam(c.Query("from"))
	if err != nil || from.IsZero() {
		apperrors.BadRequest(c, apperrors.ReportInvalidRange, "from must be YYYY-MM-DD")
		return
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil || to.IsZero() {
		apperrors.BadRequest(c, apperrors.ReportInvalidRange, "to must be YYYY-MM-DD")
		return
	}
	// Inclusive end date
	to = to.AddDate(0, 0, 1)

	report, err := ctrl.reportService.RangeReport(from, to)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReportRange) {
			apperrors.BadRequest(c, apperrors.ReportInvalidRange, "from must be before to")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	data, err := ctrl.reportService.ExportReportXLSX(report)
	if err != nil {
		log.Error("Report export failed", err)
		apperrors.InternalError(c, "")
		return
	}

	filename := fmt.Sprintf("sales-report-%s-%s.xlsx",
		from.Format("20060102"), to.AddDate(0, 0, -1).Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
