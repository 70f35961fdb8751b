package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/middleware"
	"github.com/quocanhngo/travelmate/internal/model"
)

// ItineraryHandler handles itinerary endpoints
type ItineraryHandler struct {
	itineraries ItineraryUseCases
}

func NewItineraryHandler(itineraries ItineraryUseCases) *ItineraryHandler {
	return &ItineraryHandler{itineraries: itineraries}
}

// List godoc
// @Summary List itineraries
// @Tags Itineraries
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches title or description"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} model.ItineraryListResponse
// @Router /itineraries [get]
func (h *ItineraryHandler) List(c *gin.Context) {
	var q model.ListQuery
	if !bindQuery(c, &q) {
		return
	}

	resp, err := h.itineraries.List(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get an itinerary with its days and activities
// @Tags Itineraries
// @Produce json
// @Security BearerAuth
// @Param itineraryId path int true "Itinerary ID"
// @Success 200 {object} model.ItineraryResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /itineraries/{itineraryId} [get]
func (h *ItineraryHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "itineraryId")
	if !ok {
		return
	}

	it, err := h.itineraries.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ItineraryResponse{Itinerary: it})
}

// Create godoc
// @Summary Create an itinerary
// @Description Days and activities are stored together with the itinerary.
// @Tags Itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.CreateItineraryRequest true "Itinerary"
// @Success 201 {object} model.ItineraryResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /itineraries [post]
func (h *ItineraryHandler) Create(c *gin.Context) {
	var req model.CreateItineraryRequest
	if !bindJSON(c, &req) {
		return
	}

	it, err := h.itineraries.Create(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.ItineraryResponse{Message: "Itinerary created", Itinerary: it})
}

// Update godoc
// @Summary Update my itinerary
// @Description When "days" is present, even as [], all stored days are replaced. When absent they are kept.
// @Tags Itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itineraryId path int true "Itinerary ID"
// @Param body body model.UpdateItineraryRequest true "Changed fields"
// @Success 200 {object} model.ItineraryResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /itineraries/{itineraryId} [put]
func (h *ItineraryHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "itineraryId")
	if !ok {
		return
	}
	var req model.UpdateItineraryRequest
	if !bindJSON(c, &req) {
		return
	}

	it, err := h.itineraries.Update(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ItineraryResponse{Message: "Itinerary updated", Itinerary: it})
}

// Delete godoc
// @Summary Delete my itinerary
// @Tags Itineraries
// @Security BearerAuth
// @Param itineraryId path int true "Itinerary ID"
// @Success 204
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /itineraries/{itineraryId} [delete]
func (h *ItineraryHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "itineraryId")
	if !ok {
		return
	}

	if err := h.itineraries.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
