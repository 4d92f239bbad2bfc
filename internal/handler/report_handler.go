// internal/handler/report_handler.go
package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trial-balance/internal/models"
	"trial-balance/internal/presenter"
	"trial-balance/internal/service"
)

type ReportHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

func NewReportHandler(service *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes mounts the report endpoints on rg
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/trial-balance", h.GetTrialBalance)
	rg.POST("/trial-balance/reports", h.CreateReport)
	rg.GET("/trial-balance/reports/:id", h.GetReport)
	rg.DELETE("/trial-balance/reports/:id", h.DeleteReport)
	rg.GET("/accounts", h.ListAccounts)
}

// GetTrialBalance renders a report straight from the query parameters.
// Until format and both periods are given there is nothing to render.
func (h *ReportHandler) GetTrialBalance(c *gin.Context) {
	var req models.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Ready() {
		c.Status(http.StatusNoContent)
		return
	}

	format, criteria, err := parseRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := h.service.Generate(criteria)
	h.render(c, http.StatusOK, format, report)
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req models.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.StartPeriod == "" || req.EndPeriod == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_period and end_period are required"})
		return
	}
	if req.Format == "" {
		req.Format = string(models.FormatJSON)
	}

	format, criteria, err := parseRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.GenerateAndStore(c.Request.Context(), criteria)
	if err != nil {
		h.logger.Error("failed to store report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store report"})
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%s", c.FullPath(), report.ID))
	h.render(c, http.StatusCreated, format, report)
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	id := c.Param("id")

	format, err := models.ReportRequest{Format: c.DefaultQuery("format", string(models.FormatJSON))}.OutputFormat()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.GetReport(c.Request.Context(), id)
	if errors.Is(err, models.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to get report", zap.Error(err), zap.String("report_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get report"})
		return
	}

	h.render(c, http.StatusOK, format, report)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id := c.Param("id")

	err := h.service.DeleteReport(c.Request.Context(), id)
	if errors.Is(err, models.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to delete report", zap.Error(err), zap.String("report_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReportHandler) ListAccounts(c *gin.Context) {
	accounts := h.service.Accounts()
	c.JSON(http.StatusOK, gin.H{"accounts": accounts, "count": len(accounts)})
}

func (h *ReportHandler) render(c *gin.Context, status int, format models.OutputFormat, report *models.Report) {
	var buf bytes.Buffer

	switch format {
	case models.FormatCSV:
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=trial-balance-%s.csv", report.ID))
	case models.FormatTable:
		buf.WriteString(presenter.Summary(report))
		buf.WriteString("\n\n")
	}

	if err := presenter.Render(&buf, format, report); err != nil {
		h.logger.Error("failed to render report", zap.Error(err), zap.String("format", string(format)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
		return
	}

	h.service.RecordRendered(format)
	c.Header("X-Report-ID", report.ID)
	c.Data(status, presenter.ContentType(format), buf.Bytes())
}

func parseRequest(req models.ReportRequest) (models.OutputFormat, models.FilterCriteria, error) {
	if err := req.Validate(); err != nil {
		return "", models.FilterCriteria{}, err
	}

	format, err := req.OutputFormat()
	if err != nil {
		return "", models.FilterCriteria{}, err
	}

	criteria, err := req.Criteria()
	if err != nil {
		return "", models.FilterCriteria{}, err
	}

	return format, criteria, nil
}
