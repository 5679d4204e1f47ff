package handler

import (
	"net/http"

	"tour-admin/internal/models"
	"tour-admin/internal/repository"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	repo *repository.SettingsRepository
}

func NewSettingsHandler(repo *repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.repo.Current(c.Request.Context()))
}

type SaveSettingsRequest struct {
	BokunAccessKey            string `json:"bokun_access_key"`
	BokunSecretKey            string `json:"bokun_secret_key"`
	WooCommerceConsumerKey    string `json:"woocommerce_consumer_key"`
	WooCommerceConsumerSecret string `json:"woocommerce_consumer_secret"`
	UseDirectPricing          bool   `json:"use_direct_pricing"`
}

func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var req SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.repo.Save(c.Request.Context(), models.Settings{
		BokunAccessKey:            req.BokunAccessKey,
		BokunSecretKey:            req.BokunSecretKey,
		WooCommerceConsumerKey:    req.WooCommerceConsumerKey,
		WooCommerceConsumerSecret: req.WooCommerceConsumerSecret,
		UseDirectPricing:          req.UseDirectPricing,
	})
	if err != nil {
		respondError(c, err, "settings", "Failed to save settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings saved", "settings": saved})
}

func (h *SettingsHandler) ListHistory(c *gin.Context) {
	rows, err := h.repo.History(c.Request.Context())
	if err != nil {
		respondError(c, err, "settings", "Failed to fetch settings history")
		return
	}
	c.JSON(http.StatusOK, rows)
}
