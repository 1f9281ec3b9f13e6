package controller

import (
	"net/http"

	"fulfillment-service/internal/dto"
	"fulfillment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ShippingController struct {
	Service *service.ShippingService
}

func NewShippingController(s *service.ShippingService) *ShippingController {
	return &ShippingController{Service: s}
}

// POST /admin/shipping
func (ctl *ShippingController) Create(c *gin.Context) {
	var req dto.CreateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rec, err := ctl.Service.Create(c.Request.Context(), req.OrderID, req.ShippingAddress)
	if err != nil {
		respondError(c, err, "Shipping info")
		return
	}
	c.JSON(http.StatusCreated, dto.OK(rec))
}

// GET /shipping/:orderId
func (ctl *ShippingController) Get(c *gin.Context) {
	rec, err := ctl.Service.GetByOrderID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err, "Shipping info")
		return
	}
	c.JSON(http.StatusOK, dto.OK(rec))
}

// GET /admin/shipping?status=
func (ctl *ShippingController) List(c *gin.Context) {
	recs, err := ctl.Service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err, "shipping info")
		return
	}
	c.JSON(http.StatusOK, dto.List(recs))
}

// PATCH /admin/shipping/:orderId/status
func (ctl *ShippingController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateShippingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rec, err := ctl.Service.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status, req.Event)
	if err != nil {
		respondError(c, err, "Shipping info")
		return
	}
	c.JSON(http.StatusOK, dto.OK(rec))
}

// PATCH /admin/shipping/:orderId
func (ctl *ShippingController) Update(c *gin.Context) {
	var req dto.UpdateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rec, err := ctl.Service.Update(c.Request.Context(), c.Param("orderId"), req)
	if err != nil {
		respondError(c, err, "Shipping info")
		return
	}
	c.JSON(http.StatusOK, dto.OK(rec))
}
