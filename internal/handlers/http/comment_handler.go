package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/handlers/dto"
	"github.com/rafabene/blog-backend/internal/handlers/middleware"
	"github.com/rafabene/blog-backend/internal/infrastructure/realtime"
	"github.com/rafabene/blog-backend/internal/services"
)

// CommentHandler lida com comentários e com o feed ao vivo
type CommentHandler struct {
	commentService *services.CommentService
	hub            *realtime.Hub
}

// NewCommentHandler cria um novo CommentHandler
func NewCommentHandler(commentService *services.CommentService, hub *realtime.Hub) *CommentHandler {
	return &CommentHandler{commentService: commentService, hub: hub}
}

// Create comenta em um post
//
//	@Summary	Cria um comentário
//	@Tags		comments
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		dto.CreateCommentRequest	true	"Comentário"
//	@Success	201		{object}	dto.CommentResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), identity.User, req.PostID, req.Content)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// ListForPost lista os comentários visíveis de um post
//
//	@Summary	Comentários de um post
//	@Tags		comments
//	@Produce	json
//	@Param		postId	path	string	true	"ID do post"
//	@Success	200		{array}	dto.CommentResponse
//	@Router		/comments/{postId} [get]
func (h *CommentHandler) ListForPost(c *gin.Context) {
	comments, err := h.commentService.ListForPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}

// ListAll lista todos os comentários com autor e post (admin)
//
//	@Summary	Todos os comentários
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	dto.CommentResponse
//	@Router		/comments/all-admin [get]
func (h *CommentHandler) ListAll(c *gin.Context) {
	comments, err := h.commentService.ListAll(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}

// ToggleSuspension suspende ou reativa um comentário (admin)
//
//	@Summary	Suspende ou reativa um comentário
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do comentário"
//	@Success	200	{object}	dto.CommentSuspensionResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/comments/{id}/suspend [put]
func (h *CommentHandler) ToggleSuspension(c *gin.Context) {
	suspended, err := h.commentService.ToggleSuspension(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CommentSuspensionResponse{
		Message:     dto.T(c, "message.comment_suspension", map[string]interface{}{"Suspended": suspended}),
		IsSuspended: suspended,
	})
}

// Delete remove um comentário (admin)
//
//	@Summary	Remove um comentário
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do comentário"
//	@Success	200	{object}	dto.MessageResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.commentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse(c, "message.comment_deleted"))
}

// Live abre um WebSocket que recebe os novos comentários do post
//
//	@Summary	Feed de comentários ao vivo (WebSocket)
//	@Tags		comments
//	@Param		postId	path	string	true	"ID do post"
//	@Success	101
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/comments/{postId}/live [get]
func (h *CommentHandler) Live(c *gin.Context) {
	postID := c.Param("postId")

	if err := h.commentService.EnsurePost(c.Request.Context(), postID); err != nil {
		abort(c, err)
		return
	}

	// O upgrader já responde ao cliente quando o handshake falha
	conn, err := realtime.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Serve(conn, postID)
}
