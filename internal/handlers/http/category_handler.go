package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/handlers/dto"
	"github.com/rafabene/blog-backend/internal/services"
)

// CategoryHandler lida com requisições HTTP de categorias
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler cria um novo CategoryHandler
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List lista as categorias por nome
//
//	@Summary	Lista categorias
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}	dto.CategoryResponse
//	@Router		/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}

// Create cria uma categoria (admin)
//
//	@Summary	Cria uma categoria
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		dto.CategoryRequest	true	"Categoria"
//	@Success	201		{object}	dto.CategoryResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.Name)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// Update renomeia uma categoria e os posts que a referenciam (admin)
//
//	@Summary	Renomeia uma categoria
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"ID da categoria"
//	@Param		body	body		dto.CategoryRequest	true	"Categoria"
//	@Success	200		{object}	dto.CategoryResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// Delete remove uma categoria sem posts (admin)
//
//	@Summary	Remove uma categoria
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID da categoria"
//	@Success	200	{object}	dto.MessageResponse
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse(c, "message.category_removed"))
}
