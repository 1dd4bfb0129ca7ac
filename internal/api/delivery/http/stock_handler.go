package http

import (
	"context"
	"errors"
	"net/http"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/api/service"
	"go-stock-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockHandler handles HTTP requests for the watchlist.
type StockHandler struct {
	stockService   service.StockService
	ingestService  service.IngestService
	historyService service.HistoryService
	logger         *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService service.StockService, ingestService service.IngestService, historyService service.HistoryService, logger *logger.Logger) *StockHandler {
	return &StockHandler{
		stockService:   stockService,
		ingestService:  ingestService,
		historyService: historyService,
		logger:         logger,
	}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListStocks)
	g.POST("", h.AddStock)
	g.DELETE("", h.DeleteStock)
	g.POST("/feature", h.FeatureStock)
	g.POST("/refresh", h.RefreshAll)
	g.GET("/history", h.GetHistory)
	g.GET("/:symbol", h.GetDetails)
}

// ListStocks godoc
// @Summary List the watchlist
// @Produce json
// @Success 200 {array} dto.StockResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks [get]
func (h *StockHandler) ListStocks(c echo.Context) error {
	stocks, err := h.stockService.ListStocks(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list stocks", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list stocks"})
	}
	return c.JSON(http.StatusOK, stocks)
}

// AddStock godoc
// @Summary Add a symbol to the watchlist
// @Accept json
// @Produce json
// @Param stock body dto.AddStockRequest true "Symbol to add"
// @Success 201 {object} dto.StockResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /stocks [post]
func (h *StockHandler) AddStock(c echo.Context) error {
	var req dto.AddStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Symbol is required"})
	}

	stock, err := h.stockService.AddStock(c.Request().Context(), req.Symbol)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStockExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Stock already in watchlist"})
		case errors.Is(err, service.ErrNoMarketData):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Stock not found in market data"})
		default:
			h.logger.Error("Failed to add stock", logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add stock"})
		}
	}
	return c.JSON(http.StatusCreated, stock)
}

// DeleteStock godoc
// @Summary Remove a symbol from the watchlist
// @Description Deleting a symbol that is not tracked succeeds.
// @Produce json
// @Param symbol query string true "Ticker symbol"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /stocks [delete]
func (h *StockHandler) DeleteStock(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Symbol is required"})
	}

	if err := h.stockService.DeleteStock(c.Request().Context(), symbol); err != nil {
		h.logger.Error("Failed to delete stock", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// FeatureStock godoc
// @Summary Pin a symbol as the single featured stock
// @Accept json
// @Produce json
// @Param stock body dto.FeatureStockRequest true "Symbol to feature"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stocks/feature [post]
func (h *StockHandler) FeatureStock(c echo.Context) error {
	var req dto.FeatureStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Symbol is required"})
	}

	if err := h.stockService.FeatureStock(c.Request().Context(), req.Symbol); err != nil {
		if errors.Is(err, service.ErrStockNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Stock not found"})
		}
		h.logger.Error("Failed to feature stock", logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update"})
	}
	return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// RefreshAll godoc
// @Summary Refresh every tracked symbol
// @Description Runs the sequential batch ingestion in the background.
// @Produce json
// @Success 202 {object} dto.SuccessResponse
// @Router /stocks/refresh [post]
func (h *StockHandler) RefreshAll(c echo.Context) error {
	go h.ingestService.UpdateMarketData(context.Background())
	return c.JSON(http.StatusAccepted, dto.SuccessResponse{Success: true})
}

// GetHistory godoc
// @Summary Price history for a symbol
// @Description Degrades to an empty array on upstream failure.
// @Produce json
// @Param symbol query string true "Ticker symbol"
// @Param range query string false "One of 1d, 1w, 1mo, 1y" default(1mo)
// @Success 200 {array} dto.HistoryPoint
// @Failure 400 {object} dto.ErrorResponse
// @Router /stocks/history [get]
func (h *StockHandler) GetHistory(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Symbol is required"})
	}
	rng := c.QueryParam("range")
	if rng == "" {
		rng = "1mo"
	}

	history, err := h.historyService.GetStockHistory(c.Request().Context(), symbol, rng)
	if err != nil {
		h.logger.Error("Failed to fetch history", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusOK, []dto.HistoryPoint{})
	}
	return c.JSON(http.StatusOK, history)
}

// GetDetails godoc
// @Summary Detail view for one symbol
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Success 200 {object} dto.StockDetailsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stocks/{symbol} [get]
func (h *StockHandler) GetDetails(c echo.Context) error {
	symbol := c.Param("symbol")
	details, err := h.stockService.GetDetails(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, service.ErrNoMarketData) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No data for symbol"})
		}
		h.logger.Error("Failed to fetch details", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch details"})
	}
	return c.JSON(http.StatusOK, details)
}
