package handler

import (
	"net/http"

	"tour-admin/internal/repository"

	"github.com/gin-gonic/gin"
)

type PriceHandler struct {
	repo *repository.PriceRepository
}

func NewPriceHandler(repo *repository.PriceRepository) *PriceHandler {
	return &PriceHandler{repo: repo}
}

func (h *PriceHandler) ListPrices(c *gin.Context) {
	prices, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "price", "Failed to fetch prices")
		return
	}
	c.JSON(http.StatusOK, prices)
}

// UpdatePriceRequest is a partial update; absent fields stay unchanged.
type UpdatePriceRequest struct {
	ID       *int64   `json:"id"`
	SKU      *string  `json:"sku"`
	TourID   *string  `json:"tour_id"`
	Company  *string  `json:"company"`
	Tour     *string  `json:"tour"`
	AdultNet *float64 `json:"adult_net"`
	ChildNet *float64 `json:"child_net"`
	Remark   *string  `json:"remark"`
}

func (h *PriceHandler) UpdatePrice(c *gin.Context) {
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	price, err := h.repo.Update(c.Request.Context(), *req.ID, repository.PriceUpdate{
		SKU:      req.SKU,
		TourID:   req.TourID,
		Company:  req.Company,
		Tour:     req.Tour,
		AdultNet: req.AdultNet,
		ChildNet: req.ChildNet,
		Remark:   req.Remark,
	})
	if err != nil {
		respondError(c, err, "price", "Failed to update price")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "price": price})
}
