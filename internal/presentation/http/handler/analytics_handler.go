package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/flowpilot-api/internal/application/service"
	"github.com/sangkips/flowpilot-api/internal/domain/analytics"
	"github.com/sangkips/flowpilot-api/internal/presentation/http/dto/request"
	"github.com/sangkips/flowpilot-api/internal/presentation/http/dto/response"
	"github.com/sangkips/flowpilot-api/pkg/export"
	"github.com/sangkips/flowpilot-api/pkg/pagination"
)

// AnalyticsHandler serves the read-only analytics reports
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// PricingPage is the pricing report with a paginated recommendation list
type PricingPage struct {
	Recommendations         *pagination.PaginatedResult[analytics.PriceRecommendation] `json:"pricing_recommendations"`
	AnalysisDate            string                                                     `json:"analysis_date"`
	TotalProductsAnalyzed   int                                                        `json:"total_products_analyzed"`
	HighPriorityAdjustments int                                                        `json:"high_priority_adjustments"`
	Summary                 string                                                     `json:"summary"`
}

func bindWindow(c *gin.Context) (int, bool) {
	var q request.WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindingError(c, err)
		return 0, false
	}
	return q.Days, true
}

func bindDeadstockParams(c *gin.Context) (service.DeadstockParams, bool) {
	var q request.DeadstockQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindingError(c, err)
		return service.DeadstockParams{}, false
	}
	return service.DeadstockParams{
		Category:       q.Category,
		Warehouse:      q.Warehouse,
		MinValue:       q.MinValue,
		IncludeReports: q.IncludeReports,
	}, true
}

// Customers handles GET /analytics/customers
func (h *AnalyticsHandler) Customers(c *gin.Context) {
	days, ok := bindWindow(c)
	if !ok {
		return
	}

	result, err := h.analyticsService.CustomerAnalytics(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer analytics retrieved successfully", result)
}

// Products handles GET /analytics/products
func (h *AnalyticsHandler) Products(c *gin.Context) {
	days, ok := bindWindow(c)
	if !ok {
		return
	}

	result, err := h.analyticsService.ProductAnalytics(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product analytics retrieved successfully", result)
}

// Overview handles GET /analytics/overview
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	days, ok := bindWindow(c)
	if !ok {
		return
	}

	result, err := h.analyticsService.Overview(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Overview retrieved successfully", result)
}

// DeadstockReport handles GET /analytics/deadstock-report
func (h *AnalyticsHandler) DeadstockReport(c *gin.Context) {
	params, ok := bindDeadstockParams(c)
	if !ok {
		return
	}

	report, err := h.analyticsService.DeadstockReport(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Deadstock report generated successfully", report)
}

// ExportDeadstockReport handles GET /analytics/deadstock-report/export
func (h *AnalyticsHandler) ExportDeadstockReport(c *gin.Context) {
	params, ok := bindDeadstockParams(c)
	if !ok {
		return
	}

	// buffered so a failed export still gets a JSON error
	var buf bytes.Buffer
	if err := h.analyticsService.ExportDeadstockReport(c.Request.Context(), params, &buf); err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="deadstock-report-%s.xlsx"`, time.Now().UTC().Format("2006-01-02")))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

// Forecasting handles GET /analytics/forecasting
func (h *AnalyticsHandler) Forecasting(c *gin.Context) {
	result, err := h.analyticsService.RestockForecast(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Restock forecast generated successfully", result)
}

// Pricing handles GET /analytics/pricing. Without page parameters the full
// report is returned.
func (h *AnalyticsHandler) Pricing(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BindingError(c, err)
		return
	}

	report, err := h.analyticsService.PricingRecommendations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("page") == "" && c.Query("per_page") == "" {
		response.OK(c, "Pricing recommendations generated successfully", report)
		return
	}

	response.OK(c, "Pricing recommendations generated successfully", PricingPage{
		Recommendations:         pagination.Paginate(report.Recommendations, &params),
		AnalysisDate:            report.AnalysisDate,
		TotalProductsAnalyzed:   report.TotalProductsAnalyzed,
		HighPriorityAdjustments: report.HighPriorityAdjustments,
		Summary:                 report.Summary,
	})
}
