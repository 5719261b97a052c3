package handler

import (
	"net/http"

	"taxsync/internal/service"
	"taxsync/pkg/pagination"
	"taxsync/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaxRateHandler struct {
	taxRateService service.TaxRateService
}

func NewTaxRateHandler(taxRateService service.TaxRateService) *TaxRateHandler {
	return &TaxRateHandler{taxRateService: taxRateService}
}

func (h *TaxRateHandler) RegisterRoutes(router *gin.RouterGroup, auth Authorizer) {
	rates := router.Group("/api/tax-rates")
	rates.Use(auth("admin", "manager"))
	{
		rates.GET("", h.GetTaxRates)
	}
}

// GetTaxRates returns one page of stored rates ordered by id
func (h *TaxRateHandler) GetTaxRates(c *gin.Context) {
	p := pagination.Parse(c)

	rates, total, err := h.taxRateService.GetTaxRates(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, p.Wrap(rates, total)))
}
