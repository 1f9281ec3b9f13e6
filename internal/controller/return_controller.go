package controller

import (
	"net/http"

	"fulfillment-service/internal/dto"
	"fulfillment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ReturnController struct {
	Service *service.ReturnService
}

func NewReturnController(s *service.ReturnService) *ReturnController {
	return &ReturnController{Service: s}
}

// POST /returns — el usuario autenticado pide la devolución
func (ctl *ReturnController) Create(c *gin.Context) {
	var req dto.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, _ := actor(c)
	r, err := ctl.Service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Return request")
		return
	}
	c.JSON(http.StatusCreated, dto.OK(r))
}

// GET /returns/mine
func (ctl *ReturnController) Mine(c *gin.Context) {
	userID, _ := actor(c)
	rs, err := ctl.Service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "return requests")
		return
	}
	c.JSON(http.StatusOK, dto.List(rs))
}

// GET /returns/:id — dueño o admin
func (ctl *ReturnController) Get(c *gin.Context) {
	userID, isAdmin := actor(c)
	r, err := ctl.Service.GetByID(c.Request.Context(), c.Param("id"), userID, isAdmin)
	if err != nil {
		respondError(c, err, "Return request")
		return
	}
	c.JSON(http.StatusOK, dto.OK(r))
}

// GET /admin/returns?status=
func (ctl *ReturnController) List(c *gin.Context) {
	rs, err := ctl.Service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err, "return requests")
		return
	}
	c.JSON(http.StatusOK, dto.List(rs))
}

// PATCH /admin/returns/:id/process
func (ctl *ReturnController) Process(c *gin.Context) {
	var req dto.ProcessReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	adminID, _ := actor(c)
	r, err := ctl.Service.Process(c.Request.Context(), c.Param("id"), adminID, req)
	if err != nil {
		respondError(c, err, "Return request")
		return
	}
	c.JSON(http.StatusOK, dto.OK(r))
}

// PATCH /returns/:id/shipping — dueño o admin
func (ctl *ReturnController) UpdateShipping(c *gin.Context) {
	var req dto.ReturnShippingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, isAdmin := actor(c)
	r, err := ctl.Service.UpdateReturnShipping(c.Request.Context(), c.Param("id"), userID, isAdmin, req)
	if err != nil {
		respondError(c, err, "Return request")
		return
	}
	c.JSON(http.StatusOK, dto.OK(r))
}
