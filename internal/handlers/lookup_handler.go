package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carena-app/backend/internal/repositories"
)

// LookupHandler serves the fixed catalogs used by pickers in the client
type LookupHandler struct {
	lookupRepository repositories.LookupRepository
}

func NewLookupHandler(lookupRepo repositories.LookupRepository) *LookupHandler {
	return &LookupHandler{lookupRepository: lookupRepo}
}

func (h *LookupHandler) RegisterLookupRoutes(g *echo.Group) {
	g.GET("/cancers", h.ListCancers)
	g.GET("/emotions", h.ListEmotions)
	g.GET("/sections", h.ListSections)
}

func (h *LookupHandler) ListCancers(c echo.Context) error {
	cancers, err := h.lookupRepository.ListCancers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cancers)
}

func (h *LookupHandler) ListEmotions(c echo.Context) error {
	emotions, err := h.lookupRepository.ListEmotions()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, emotions)
}

func (h *LookupHandler) ListSections(c echo.Context) error {
	primaries, err := h.lookupRepository.ListPrimarySections()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	primaryID, _ := strconv.ParseUint(c.QueryParam("primary_id"), 10, 32)
	secondaries, err := h.lookupRepository.ListSecondarySections(uint(primaryID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"primary":   primaries,
		"secondary": secondaries,
	})
}
