package http

import (
	"errors"
	"net/http"

	"go-stock-dashboard/internal/api/dto"
	"go-stock-dashboard/internal/api/service"
	"go-stock-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// LayoutHandler handles HTTP requests for the dashboard widget layout.
type LayoutHandler struct {
	layoutService service.LayoutService
	logger        *logger.Logger
}

// NewLayoutHandler creates a new LayoutHandler.
func NewLayoutHandler(layoutService service.LayoutService, logger *logger.Logger) *LayoutHandler {
	return &LayoutHandler{layoutService: layoutService, logger: logger}
}

// RegisterRoutes registers the layout routes to the Echo group.
func (h *LayoutHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/layout", h.GetLayout)
	g.PUT("/layout", h.SaveLayout)
}

// GetLayout godoc
// @Summary Current widget order
// @Description Falls back to the default order when none is stored.
// @Produce json
// @Success 200 {object} dto.LayoutResponse
// @Router /layout [get]
func (h *LayoutHandler) GetLayout(c echo.Context) error {
	layout, err := h.layoutService.GetLayout(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to load layout", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load layout"})
	}
	return c.JSON(http.StatusOK, layout)
}

// SaveLayout godoc
// @Summary Persist a widget order
// @Accept json
// @Produce json
// @Param layout body dto.UpdateLayoutRequest true "Widget order"
// @Success 200 {object} dto.LayoutResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /layout [put]
func (h *LayoutHandler) SaveLayout(c echo.Context) error {
	var req dto.UpdateLayoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	layout, err := h.layoutService.SaveLayout(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownWidget) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to save layout", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save layout"})
	}
	return c.JSON(http.StatusOK, layout)
}
