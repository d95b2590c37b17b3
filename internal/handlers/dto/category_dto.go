package dto

import (
	"time"

	"github.com/rafabene/blog-backend/internal/domain/entities"
)

// CategoryRequest representa a criação ou renomeação de uma categoria
type CategoryRequest struct {
	Name string `json:"name" binding:"max=100"`
}

// CategoryResponse representa uma categoria
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UploadResponse é a resposta do upload de imagem
type UploadResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// ToCategoryResponse converte uma entidade Category
func ToCategoryResponse(category *entities.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Slug:      category.Slug,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToCategoryResponses converte uma lista de categorias
func ToCategoryResponses(categories []*entities.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = ToCategoryResponse(category)
	}
	return responses
}
