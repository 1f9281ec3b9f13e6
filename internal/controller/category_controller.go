package controller

import (
	"net/http"

	"fulfillment-service/internal/dto"
	"fulfillment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	Service *service.CategoryService
}

func NewCategoryController(s *service.CategoryService) *CategoryController {
	return &CategoryController{Service: s}
}

// GET /categories — público
func (ctl *CategoryController) List(c *gin.Context) {
	categories, err := ctl.Service.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err, "categories")
		return
	}
	c.JSON(http.StatusOK, dto.List(categories))
}

// GET /categories/:id — público
func (ctl *CategoryController) Get(c *gin.Context) {
	category, err := ctl.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, dto.OK(category))
}

// POST /admin/categories
func (ctl *CategoryController) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	category, err := ctl.Service.Create(c.Request.Context(), req.Name, req.Description, req.Image)
	if err != nil {
		respondError(c, err, "Category")
		return
	}
	c.JSON(http.StatusCreated, dto.OK(category))
}

// PATCH /admin/categories/:id/deactivate
func (ctl *CategoryController) Deactivate(c *gin.Context) {
	if err := ctl.Service.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Success: true, Message: "category deactivated"})
}
