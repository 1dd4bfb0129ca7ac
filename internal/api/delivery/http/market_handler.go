package http

import (
	"net/http"
	"strconv"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/api/service"
	"go-stock-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketHandler handles HTTP requests for market-wide data.
type MarketHandler struct {
	searchService    service.SearchService
	newsService      service.NewsService
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(searchService service.SearchService, newsService service.NewsService, dashboardService service.DashboardService, logger *logger.Logger) *MarketHandler {
	return &MarketHandler{
		searchService:    searchService,
		newsService:      newsService,
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// RegisterRoutes registers the market routes to the Echo group.
func (h *MarketHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
	g.GET("/news", h.GetNews)
	g.GET("/dashboard", h.GetDashboard)
}

// Search godoc
// @Summary Symbol lookup
// @Description Returns an empty array when the query is missing or lookup fails.
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} dto.SearchResult
// @Router /search [get]
func (h *MarketHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusOK, []dto.SearchResult{})
	}

	return c.JSON(http.StatusOK, h.searchService.Search(c.Request().Context(), query))
}

// GetNews godoc
// @Summary Aggregated market news feed
// @Produce json
// @Param count query int false "Maximum items" default(20)
// @Param category query string false "News category" default(US Markets)
// @Success 200 {array} dto.NewsItem
// @Router /news [get]
func (h *MarketHandler) GetNews(c echo.Context) error {
	count := 0
	if raw := c.QueryParam("count"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			count = parsed
		}
	}
	category := c.QueryParam("category")

	return c.JSON(http.StatusOK, h.newsService.GetNewsFeed(c.Request().Context(), count, category))
}

// GetDashboard godoc
// @Summary Aggregated dashboard payload
// @Description Each data source degrades independently; partial data is returned.
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Router /dashboard [get]
func (h *MarketHandler) GetDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.GetDashboard(c.Request().Context()))
}
