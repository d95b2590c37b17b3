package dto

import (
	"time"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/services"
)

// CreatePostRequest representa a criação de um post.
// Os campos obrigatórios são validados pelo serviço para retornar a mensagem de domínio.
type CreatePostRequest struct {
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Category        string   `json:"category"`
	FeaturedImage   string   `json:"featuredImage"`
	Tags            []string `json:"tags"`
	Status          string   `json:"status"`
	MetaTitle       string   `json:"metaTitle" binding:"max=200"`
	MetaDescription string   `json:"metaDescription" binding:"max=500"`
}

// ToInput converte a requisição para o input do serviço
func (r CreatePostRequest) ToInput() services.CreatePostInput {
	return services.CreatePostInput{
		Title:           r.Title,
		Content:         r.Content,
		Category:        r.Category,
		FeaturedImage:   r.FeaturedImage,
		Tags:            r.Tags,
		Status:          entities.PostStatus(r.Status),
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
	}
}

// UpdatePostRequest representa uma edição parcial: campos ausentes são mantidos
type UpdatePostRequest struct {
	Title           *string   `json:"title"`
	Content         *string   `json:"content"`
	Category        *string   `json:"category"`
	FeaturedImage   *string   `json:"featuredImage"`
	Tags            *[]string `json:"tags"`
	Status          *string   `json:"status"`
	MetaTitle       *string   `json:"metaTitle" binding:"omitempty,max=200"`
	MetaDescription *string   `json:"metaDescription" binding:"omitempty,max=500"`
}

// ToInput converte a requisição para o input do serviço
func (r UpdatePostRequest) ToInput() services.UpdatePostInput {
	input := services.UpdatePostInput{
		Title:           r.Title,
		Content:         r.Content,
		Category:        r.Category,
		FeaturedImage:   r.FeaturedImage,
		Tags:            r.Tags,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
	}
	if r.Status != nil {
		status := entities.PostStatus(*r.Status)
		input.Status = &status
	}
	return input
}

// ListPostsQuery contém os parâmetros da listagem pública
type ListPostsQuery struct {
	Keyword  string `form:"keyword"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
}

// ReactRequest representa o toggle de reação
type ReactRequest struct {
	Action string `json:"action" binding:"required"`
}

// AuthorResponse é o resumo público do autor
type AuthorResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
	Bio            string `json:"bio"`
}

// PostResponse representa um post
type PostResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Content         string          `json:"content"`
	Category        string          `json:"category"`
	Tags            []string        `json:"tags"`
	Likes           []string        `json:"likes"`
	Dislikes        []string        `json:"dislikes"`
	FeaturedImage   string          `json:"featuredImage"`
	Status          string          `json:"status"`
	MetaTitle       string          `json:"metaTitle"`
	MetaDescription string          `json:"metaDescription"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Author          *AuthorResponse `json:"author,omitempty"`
}

// PostListResponse é uma página da listagem pública
type PostListResponse struct {
	Posts      []PostResponse `json:"posts"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	TotalPosts int64          `json:"totalPosts"`
}

// PostLinkResponse é a forma reduzida usada em "últimos posts"
type PostLinkResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// ReactionResponse contém os totais após um toggle
type ReactionResponse struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// PostStatusResponse é a resposta da suspensão administrativa
type PostStatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ToAuthorResponse converte o resumo do autor; nil quando ausente
func ToAuthorResponse(author *entities.Author) *AuthorResponse {
	if author == nil {
		return nil
	}
	return &AuthorResponse{
		ID:             author.ID,
		Name:           author.Name,
		ProfilePicture: author.ProfilePicture,
		Bio:            author.Bio,
	}
}

// ToPostResponse converte uma entidade Post para PostResponse
func ToPostResponse(post *entities.Post) PostResponse {
	return PostResponse{
		ID:              post.ID,
		UserID:          post.UserID,
		Title:           post.Title,
		Slug:            post.Slug,
		Content:         post.Content,
		Category:        post.Category,
		Tags:            nonNil(post.Tags),
		Likes:           nonNil(post.Likes),
		Dislikes:        nonNil(post.Dislikes),
		FeaturedImage:   post.FeaturedImage,
		Status:          string(post.Status),
		MetaTitle:       post.MetaTitle,
		MetaDescription: post.MetaDescription,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
		Author:          ToAuthorResponse(post.Author),
	}
}

// ToPostResponses converte uma lista de posts
func ToPostResponses(posts []*entities.Post) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = ToPostResponse(post)
	}
	return responses
}

// ToPostListResponse converte uma página do serviço
func ToPostListResponse(page *services.PostPage) PostListResponse {
	return PostListResponse{
		Posts:      ToPostResponses(page.Posts),
		Page:       page.Page,
		TotalPages: page.TotalPages,
		TotalPosts: page.TotalPosts,
	}
}

// ToPostLinkResponses converte posts para a forma reduzida
func ToPostLinkResponses(posts []*entities.Post) []PostLinkResponse {
	responses := make([]PostLinkResponse, len(posts))
	for i, post := range posts {
		responses[i] = PostLinkResponse{ID: post.ID, Title: post.Title, Slug: post.Slug}
	}
	return responses
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
