package handler

import (
	"net/http"
	"strconv"

	"tour-admin/internal/models"
	"tour-admin/internal/repository"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	repo *repository.CatalogRepository
}

func NewCatalogHandler(repo *repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

// ProductRateRequest is a rate nested in a product create. Field names
// follow the admin UI payload.
type ProductRateRequest struct {
	Name     string   `json:"name"`
	NetAdult *float64 `json:"netAdult"`
	NetChild *float64 `json:"netChild"`
	FeeType  string   `json:"feeType"`
	FeeAdult *float64 `json:"feeAdult"`
	FeeChild *float64 `json:"feeChild"`
}

type CreateProductRequest struct {
	SKU               string               `json:"sku" binding:"required"`
	Program           string               `json:"program" binding:"required"`
	Remark            string               `json:"remark"`
	ProductIDOptional *string              `json:"product_id_optional"`
	SupplierID        *uint                `json:"supplier_id"`
	Rates             []ProductRateRequest `json:"rates"`
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := repository.ProductInput{
		SKU:               req.SKU,
		Program:           req.Program,
		Remark:            req.Remark,
		ProductIDOptional: req.ProductIDOptional,
		SupplierID:        req.SupplierID,
	}
	for _, r := range req.Rates {
		in.Rates = append(in.Rates, repository.RateInput{
			Name:     r.Name,
			NetAdult: r.NetAdult,
			NetChild: r.NetChild,
			FeeType:  r.FeeType,
			FeeAdult: r.FeeAdult,
			FeeChild: r.FeeChild,
		})
	}

	id, err := h.repo.CreateProductWithRates(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "product", "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"productId": id})
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.repo.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err, "product", "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, products)
}

type AssignSupplierRequest struct {
	SupplierID *uint `json:"supplier_id"`
}

func (h *CatalogHandler) AssignSupplier(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var req AssignSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.repo.AssignSupplier(c.Request.Context(), uint(id), req.SupplierID); err != nil {
		respondError(c, err, "product", "Failed to update product supplier")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CatalogHandler) ListRates(c *gin.Context) {
	var productID *uint
	if raw := c.Query("product_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
			return
		}
		id := uint(v)
		productID = &id
	}

	rates, err := h.repo.ListRates(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err, "rate", "Failed to fetch rates")
		return
	}
	c.JSON(http.StatusOK, rates)
}

type CreateRateRequest struct {
	ProductID *uint    `json:"product_id"`
	Name      string   `json:"name" binding:"required"`
	NetAdult  *float64 `json:"net_adult" binding:"required"`
	NetChild  *float64 `json:"net_child" binding:"required"`
	FeeType   string   `json:"fee_type" binding:"required"`
	FeeAdult  *float64 `json:"fee_adult"`
	FeeChild  *float64 `json:"fee_child"`
}

func (h *CatalogHandler) CreateRate(c *gin.Context) {
	var req CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rate, err := h.repo.CreateRate(c.Request.Context(), repository.RateInput{
		ProductID: req.ProductID,
		Name:      req.Name,
		NetAdult:  req.NetAdult,
		NetChild:  req.NetChild,
		FeeType:   req.FeeType,
		FeeAdult:  req.FeeAdult,
		FeeChild:  req.FeeChild,
	})
	if err != nil {
		respondError(c, err, "rate", "Failed to create rate")
		return
	}
	c.JSON(http.StatusCreated, rate)
}

func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.repo.ListSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, err, "supplier", "Failed to fetch suppliers")
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

func (h *CatalogHandler) CreateSupplier(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier := models.Supplier{Name: req.Name, Contact: req.Contact, Phone: req.Phone, Email: req.Email}
	if err := h.repo.CreateSupplier(c.Request.Context(), &supplier); err != nil {
		respondError(c, err, "supplier", "Failed to create supplier")
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *CatalogHandler) DeleteSupplier(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier id"})
		return
	}
	if err := h.repo.DeleteSupplier(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err, "supplier", "Failed to delete supplier")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
