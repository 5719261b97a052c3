package handler

import (
	"errors"
	"io"
	"net/http"

	"taxsync/internal/middleware"
	"taxsync/internal/service"
	"taxsync/internal/taxerr"
	"taxsync/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ReconcileRequest struct {
	Country string `json:"country" binding:"omitempty,len=2,alpha"`
}

type ResolveResponse struct {
	Rate  string `json:"rate"`
	Class string `json:"class"`
}

type FailureResponse struct {
	Op    string `json:"op"`
	Class string `json:"class"`
	ID    uint   `json:"id,omitempty"`
	Error string `json:"error"`
}

type TaxClassHandler struct {
	reconcileService service.ReconcileService
	resolverService  service.ResolverService
	defaultCountry   string
}

func NewTaxClassHandler(reconcileService service.ReconcileService, resolverService service.ResolverService, defaultCountry string) *TaxClassHandler {
	return &TaxClassHandler{
		reconcileService: reconcileService,
		resolverService:  resolverService,
		defaultCountry:   defaultCountry,
	}
}

func (h *TaxClassHandler) RegisterRoutes(router *gin.RouterGroup, auth Authorizer) {
	classes := router.Group("/api/tax-classes")
	{
		classes.GET("", auth("admin", "manager"), h.GetTaxClasses)
		classes.GET("/resolve", auth("admin", "manager"), h.ResolveTaxClass)
		classes.POST("/reconcile", auth("admin"), h.Reconcile)
	}
}

// GetTaxClasses lists the configured classes in resolution order, standard class last
func (h *TaxClassHandler) GetTaxClasses(c *gin.Context) {
	classes, err := h.resolverService.ListClasses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, classes))
}

// ResolveTaxClass maps ?rate= to the class a product with that VAT rate belongs to
func (h *TaxClassHandler) ResolveTaxClass(c *gin.Context) {
	raw := c.Query("rate")
	if raw == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "rate query parameter is required"))
		return
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid rate value: "+err.Error()))
		return
	}

	class, err := h.resolverService.ResolveClass(c.Request.Context(), rate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, ResolveResponse{Rate: rate.String(), Class: class}))
}

// Reconcile syncs stored rates with the declared rates of a country (the shop default when omitted)
func (h *TaxClassHandler) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	country := req.Country
	if country == "" {
		country = h.defaultCountry
	}

	res, err := h.reconcileService.Reconcile(c.Request.Context(), country, middleware.Actor(c))
	if err == nil {
		c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
		return
	}

	var cfgErr *taxerr.ConfigurationError
	var recErr *taxerr.ReconcileError
	switch {
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusUnprocessableEntity, response.Error(http.StatusUnprocessableEntity, err.Error()))
	case errors.As(err, &recErr):
		failures := make([]FailureResponse, 0, len(recErr.Failures))
		for _, f := range recErr.Failures {
			failures = append(failures, FailureResponse{Op: f.Op, Class: f.Class, ID: f.ID, Error: f.Err.Error()})
		}
		c.JSON(http.StatusMultiStatus, response.Partial(http.StatusMultiStatus, gin.H{
			"result":   res,
			"failures": failures,
		}, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}
