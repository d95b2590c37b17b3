package dto

import (
	"time"

	"github.com/rafabene/blog-backend/internal/domain/entities"
)

// CreateCommentRequest representa um novo comentário; o conteúdo vazio é rejeitado pelo serviço
type CreateCommentRequest struct {
	PostID  string `json:"postId" binding:"required"`
	Content string `json:"content" binding:"max=5000"`
}

// CommenterResponse identifica o autor do comentário
type CommenterResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PostContextResponse identifica o post na moderação
type PostContextResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// CommentResponse representa um comentário
type CommentResponse struct {
	ID          string               `json:"id"`
	PostID      string               `json:"postId"`
	Content     string               `json:"content"`
	IsSuspended bool                 `json:"isSuspended"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	User        *CommenterResponse   `json:"user,omitempty"`
	Post        *PostContextResponse `json:"post,omitempty"`
}

// CommentSuspensionResponse é a resposta do toggle de suspensão
type CommentSuspensionResponse struct {
	Message     string `json:"message"`
	IsSuspended bool   `json:"isSuspended"`
}

// ToCommentResponse converte uma entidade Comment para CommentResponse
func ToCommentResponse(comment *entities.Comment) CommentResponse {
	response := CommentResponse{
		ID:          comment.ID,
		PostID:      comment.PostID,
		Content:     comment.Content,
		IsSuspended: comment.IsSuspended,
		CreatedAt:   comment.CreatedAt,
		UpdatedAt:   comment.UpdatedAt,
	}
	if comment.Author != nil {
		response.User = &CommenterResponse{ID: comment.Author.ID, Name: comment.Author.Name}
	}
	if comment.Post != nil {
		response.Post = &PostContextResponse{ID: comment.Post.ID, Title: comment.Post.Title, Slug: comment.Post.Slug}
	}
	return response
}

// ToCommentResponses converte uma lista de comentários
func ToCommentResponses(comments []*entities.Comment) []CommentResponse {
	responses := make([]CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = ToCommentResponse(comment)
	}
	return responses
}
