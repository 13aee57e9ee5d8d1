package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sangkips/flowpilot-api/internal/domain/analytics"
	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/internal/domain/repository"
	"github.com/sangkips/flowpilot-api/internal/infrastructure/cache"
	"github.com/sangkips/flowpilot-api/pkg/apperror"
	"github.com/sangkips/flowpilot-api/pkg/export"
	"github.com/sangkips/flowpilot-api/pkg/logger"
	"github.com/sangkips/flowpilot-api/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Report names used for cache keys and metric labels
const (
	ReportCustomers = "customers"
	ReportProducts  = "products"
	ReportOverview  = "overview"
	ReportDeadstock = "deadstock"
	ReportForecast  = "forecast"
	ReportPricing   = "pricing"
)

// MaxWindowDays bounds the days query parameter of windowed reports
const MaxWindowDays = 365

// AnalyticsSettings tunes the analytics computations
type AnalyticsSettings struct {
	DefaultPrice float64
	Workers      int
	WindowDays   int
	ForecastDays int
	Rates        analytics.FinancialRates
}

// AnalyticsService fetches orders and inventory and runs the analytics core over them
type AnalyticsService struct {
	orderRepo     repository.OrderRepository
	inventoryRepo repository.InventoryRepository
	cache         *cache.Cache
	metrics       *metrics.Metrics
	settings      AnalyticsSettings
	now           func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	orderRepo repository.OrderRepository,
	inventoryRepo repository.InventoryRepository,
	reportCache *cache.Cache,
	m *metrics.Metrics,
	settings AnalyticsSettings,
) *AnalyticsService {
	if settings.WindowDays <= 0 {
		settings.WindowDays = 30
	}
	if settings.Rates == (analytics.FinancialRates{}) {
		settings.Rates = analytics.DefaultFinancialRates()
	}
	return &AnalyticsService{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		cache:         reportCache,
		metrics:       m,
		settings:      settings,
		now:           time.Now,
	}
}

// CustomerAnalytics is the trends and leaderboards payload
type CustomerAnalytics struct {
	OrderTrends       analytics.DateSeries      `json:"orderTrends"`
	FrequentCustomers analytics.CustomerCounts  `json:"frequentCustomers"`
	TopSpenders       analytics.CustomerAmounts `json:"topSpenders"`
}

// ProductAnalytics is the product sales and revenue payload
type ProductAnalytics struct {
	ProductSales  analytics.ProductSalesData `json:"productSales"`
	RevenuePerDay analytics.RevenueSeries    `json:"revenuePerDay"`
	DataQuality   analytics.DataQuality      `json:"dataQuality"`
}

// DeadstockParams narrows a deadstock report
type DeadstockParams struct {
	Category       string
	Warehouse      string
	MinValue       float64
	IncludeReports bool
}

func (p DeadstockParams) cacheParams() map[string]string {
	return map[string]string{
		"category":       p.Category,
		"warehouse":      p.Warehouse,
		"minValue":       strconv.FormatFloat(p.MinValue, 'f', -1, 64),
		"includeReports": strconv.FormatBool(p.IncludeReports),
	}
}

type snapshot struct {
	orders    []entity.OrderRecord
	inventory []entity.InventoryRecord
}

func (s snapshot) token() string {
	return cache.Fingerprint(s.orders, s.inventory)
}

// WindowDays clamps a requested window to [1, MaxWindowDays], using the configured default for 0
func (s *AnalyticsService) WindowDays(days int) int {
	switch {
	case days <= 0:
		return s.settings.WindowDays
	case days > MaxWindowDays:
		return MaxWindowDays
	}
	return days
}

// CustomerAnalytics returns order trends, frequent customers and top spenders
func (s *AnalyticsService) CustomerAnalytics(ctx context.Context, days int) (*CustomerAnalytics, error) {
	days = s.WindowDays(days)
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	params := map[string]string{"days": strconv.Itoa(days), "asOf": dayKey(now)}
	return cachedReport(ctx, s, ReportCustomers, params, snap, func(ctx context.Context) (*CustomerAnalytics, error) {
		window := analytics.NewDateWindow(now, days)
		return &CustomerAnalytics{
			OrderTrends:       analytics.OrderTrends(snap.orders, window),
			FrequentCustomers: analytics.FrequentCustomers(snap.orders, analytics.LeaderboardSize),
			TopSpenders:       analytics.TopSpenders(snap.orders, analytics.LeaderboardSize),
		}, nil
	})
}

// ProductAnalytics returns best and worst sellers and revenue per day
func (s *AnalyticsService) ProductAnalytics(ctx context.Context, days int) (*ProductAnalytics, error) {
	days = s.WindowDays(days)
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	params := map[string]string{"days": strconv.Itoa(days), "asOf": dayKey(now)}
	result, err := cachedReport(ctx, s, ReportProducts, params, snap, func(ctx context.Context) (*ProductAnalytics, error) {
		prices := analytics.NewPriceBook(snap.inventory, s.settings.DefaultPrice)
		sales := analytics.BuildSalesIndex(snap.orders)
		out := &ProductAnalytics{
			ProductSales:  analytics.ProductSalesChart(sales, prices),
			RevenuePerDay: analytics.RevenuePerDay(snap.orders, prices, analytics.NewDateWindow(now, days)),
		}
		for name := range sales {
			prices.Price(name)
		}
		out.DataQuality = prices.Quality()
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	s.reportQuality(ctx, ReportProducts, result.DataQuality)
	return result, nil
}

// Overview returns the dashboard overview of the current window
func (s *AnalyticsService) Overview(ctx context.Context, days int) (*analytics.Overview, error) {
	days = s.WindowDays(days)
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	params := map[string]string{"days": strconv.Itoa(days), "asOf": dayKey(now)}
	result, err := cachedReport(ctx, s, ReportOverview, params, snap, func(ctx context.Context) (*analytics.Overview, error) {
		prices := analytics.NewPriceBook(snap.inventory, s.settings.DefaultPrice)
		overview := analytics.BuildOverview(snap.orders, snap.inventory, prices, now, days)
		return &overview, nil
	})
	if err != nil {
		return nil, err
	}
	s.reportQuality(ctx, ReportOverview, result.DataQuality)
	return result, nil
}

// DeadstockReport analyses the inventory for deadstock risk
func (s *AnalyticsService) DeadstockReport(ctx context.Context, p DeadstockParams) (*analytics.DeadstockReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	params := p.cacheParams()
	params["asOf"] = dayKey(now)
	result, err := cachedReport(ctx, s, ReportDeadstock, params, snap, func(ctx context.Context) (*analytics.DeadstockReport, error) {
		report, err := analytics.BuildDeadstockReport(ctx, snap.inventory, snap.orders, analytics.ReportOptions{
			Now:            now,
			Filter:         entity.InventoryFilter{Category: p.Category, WarehouseLocation: p.Warehouse},
			MinValue:       p.MinValue,
			IncludeReports: p.IncludeReports,
			Workers:        s.settings.Workers,
			Rates:          s.settings.Rates,
			DefaultPrice:   s.settings.DefaultPrice,
		})
		if err != nil {
			return nil, fmt.Errorf("build deadstock report: %w", err)
		}
		s.metrics.ItemsAnalysed.WithLabelValues(ReportDeadstock).Add(float64(report.ExecutiveSummary.TotalItemsAnalyzed))
		return report, nil
	})
	if err != nil {
		return nil, err
	}
	s.reportQuality(ctx, ReportDeadstock, result.DataQuality)
	return result, nil
}

// RestockForecast forecasts demand and restock needs for every inventory item
func (s *AnalyticsService) RestockForecast(ctx context.Context) (*analytics.RestockForecast, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	params := map[string]string{"asOf": dayKey(now)}
	return cachedReport(ctx, s, ReportForecast, params, snap, func(ctx context.Context) (*analytics.RestockForecast, error) {
		opts := analytics.DefaultForecastOptions(now)
		if s.settings.ForecastDays > 0 {
			opts.WindowDays = s.settings.ForecastDays
		}
		forecast := analytics.ForecastRestocking(snap.inventory, snap.orders, opts)
		s.metrics.ItemsAnalysed.WithLabelValues(ReportForecast).Add(float64(forecast.Summary.TotalProductsAnalyzed))
		return &forecast, nil
	})
}

// PricingRecommendations runs the pricing rules over the inventory
func (s *AnalyticsService) PricingRecommendations(ctx context.Context) (*analytics.PricingReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	params := map[string]string{"asOf": dayKey(now)}
	return cachedReport(ctx, s, ReportPricing, params, snap, func(ctx context.Context) (*analytics.PricingReport, error) {
		report := analytics.RecommendPrices(snap.inventory, analytics.BuildSalesIndex(snap.orders), now)
		s.metrics.ItemsAnalysed.WithLabelValues(ReportPricing).Add(float64(report.TotalProductsAnalyzed))
		return &report, nil
	})
}

// ExportDeadstockReport writes the deadstock report as an xlsx workbook
func (s *AnalyticsService) ExportDeadstockReport(ctx context.Context, p DeadstockParams, w io.Writer) error {
	report, err := s.DeadstockReport(ctx, p)
	if err != nil {
		return err
	}
	if err := export.WriteWorkbook(w, DeadstockSheets(report)...); err != nil {
		return fmt.Errorf("export deadstock report: %w", err)
	}
	return nil
}

// load fetches orders and inventory concurrently
func (s *AnalyticsService) load(ctx context.Context) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orders, err := s.orderRepo.ListAll(gctx)
		if err != nil {
			return apperror.NewStoreError("list orders", err)
		}
		snap.orders = orders
		return nil
	})
	g.Go(func() error {
		inventory, err := s.inventoryRepo.List(gctx, entity.InventoryFilter{})
		if err != nil {
			return apperror.NewStoreError("list inventory", err)
		}
		snap.inventory = inventory
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Error("Failed to load analytics data", zap.Error(err))
		return snapshot{}, err
	}
	return snap, nil
}

func (s *AnalyticsService) reportQuality(ctx context.Context, report string, q analytics.DataQuality) {
	s.metrics.UnmatchedProducts.Set(float64(q.UnmatchedProducts))
	if q.UnmatchedProducts == 0 {
		return
	}
	logger.FromContext(ctx).Warn("Sold products missing from inventory, default price applied",
		zap.String("report", report),
		zap.Int("count", q.UnmatchedProducts),
		zap.Strings("products", q.UnmatchedNames),
	)
}

// cachedReport memoizes a report computation under the endpoint, its
// parameters and a fingerprint of the loaded data
func cachedReport[T any](ctx context.Context, s *AnalyticsService, report string, params map[string]string, snap snapshot, compute func(context.Context) (T, error)) (T, error) {
	defer s.metrics.TrackReport(report)()

	key := cache.Key(report, params, snap.token())
	value, hit, err := cache.Fetch(ctx, s.cache, key, compute)
	if err != nil {
		var zero T
		return zero, err
	}
	if s.cache.Enabled() {
		s.metrics.RecordCache(report, hit)
	}
	return value, nil
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
