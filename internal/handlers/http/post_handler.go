package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/handlers/dto"
	"github.com/rafabene/blog-backend/internal/handlers/middleware"
	"github.com/rafabene/blog-backend/internal/services"
)

// PostHandler lida com requisições HTTP de posts
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler cria um novo PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create cria um post do usuário autenticado
//
//	@Summary	Cria um post
//	@Tags		posts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		dto.CreatePostRequest	true	"Post"
//	@Success	201		{object}	dto.PostResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req dto.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Create(c.Request.Context(), identity.User, req.ToInput())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostResponse(post))
}

// ListPublished lista posts publicados com busca, categoria e paginação
//
//	@Summary	Lista posts publicados
//	@Tags		posts
//	@Produce	json
//	@Param		keyword		query		string	false	"Trecho do título"
//	@Param		category	query		string	false	"Slug da categoria"
//	@Param		page		query		int		false	"Página"
//	@Param		limit		query		int		false	"Itens por página"
//	@Success	200			{object}	dto.PostListResponse
//	@Router		/posts [get]
func (h *PostHandler) ListPublished(c *gin.Context) {
	var query dto.ListPostsQuery
	if !bindQuery(c, &query) {
		return
	}

	page, err := h.postService.ListPublished(c.Request.Context(), services.ListPublishedInput{
		Keyword:      query.Keyword,
		CategorySlug: query.Category,
		Page:         query.Page,
		Limit:        query.Limit,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostListResponse(page))
}

// GetBySlug retorna um post publicado
//
//	@Summary	Detalhe público do post
//	@Tags		posts
//	@Produce	json
//	@Param		slug	path		string	true	"Slug"
//	@Success	200		{object}	dto.PostResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/posts/{slug} [get]
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.postService.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// Latest retorna os posts publicados mais recentes, exceto o informado
//
//	@Summary	Últimos posts
//	@Tags		posts
//	@Produce	json
//	@Param		excludeId	path	string	true	"ID a excluir"
//	@Success	200			{array}	dto.PostLinkResponse
//	@Router		/posts/latest/{excludeId} [get]
func (h *PostHandler) Latest(c *gin.Context) {
	posts, err := h.postService.Latest(c.Request.Context(), c.Param("excludeId"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostLinkResponses(posts))
}

// ListByAuthor lista os posts publicados de um autor
//
//	@Summary	Posts de um autor
//	@Tags		posts
//	@Produce	json
//	@Param		id	path	string	true	"ID do autor"
//	@Success	200	{array}	dto.PostResponse
//	@Router		/posts/author/{id} [get]
func (h *PostHandler) ListByAuthor(c *gin.Context) {
	posts, err := h.postService.ListByAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponses(posts))
}

// ListMine lista todos os posts do usuário autenticado
//
//	@Summary	Meus posts
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	dto.PostResponse
//	@Router		/posts/my-posts [get]
func (h *PostHandler) ListMine(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	posts, err := h.postService.ListMine(c.Request.Context(), identity.User)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponses(posts))
}

// ListAll lista todos os posts (admin)
//
//	@Summary	Todos os posts
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	dto.PostResponse
//	@Router		/posts/all-admin [get]
func (h *PostHandler) ListAll(c *gin.Context) {
	posts, err := h.postService.ListAll(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponses(posts))
}

// GetForEdit retorna o post em qualquer status para o dono ou um admin
//
//	@Summary	Post para edição
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do post"
//	@Success	200	{object}	dto.PostResponse
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/posts/edit/{id} [get]
func (h *PostHandler) GetForEdit(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	post, err := h.postService.GetForEdit(c.Request.Context(), identity.User, c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// Update altera os campos presentes no corpo
//
//	@Summary	Atualiza um post
//	@Tags		posts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string					true	"ID do post"
//	@Param		body	body		dto.UpdatePostRequest	true	"Campos"
//	@Success	200		{object}	dto.PostResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/posts/edit/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req dto.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Update(c.Request.Context(), identity.User, c.Param("id"), req.ToInput())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// React alterna like ou dislike do usuário no post
//
//	@Summary	Reage a um post
//	@Tags		posts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		postId	path		string				true	"ID do post"
//	@Param		body	body		dto.ReactRequest	true	"like ou dislike"
//	@Success	200		{object}	dto.ReactionResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/posts/react/{postId} [put]
func (h *PostHandler) React(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req dto.ReactRequest
	if !bindJSON(c, &req) {
		return
	}

	counts, err := h.postService.React(c.Request.Context(), identity.User, c.Param("postId"), req.Action)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReactionResponse{Likes: counts.Likes, Dislikes: counts.Dislikes})
}

// ToggleSuspension suspende ou reativa um post (admin)
//
//	@Summary	Suspende ou reativa um post
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do post"
//	@Success	200	{object}	dto.PostStatusResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/posts/admin/{id}/suspend [put]
func (h *PostHandler) ToggleSuspension(c *gin.Context) {
	status, err := h.postService.ToggleSuspension(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostStatusResponse{
		Message: dto.T(c, "message.post_status_changed", map[string]interface{}{"Status": string(status)}),
		Status:  string(status),
	})
}

// DeleteOwned remove um post do próprio usuário e seus comentários
//
//	@Summary	Remove um post próprio
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do post"
//	@Success	200	{object}	dto.MessageResponse
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/posts/my-posts/{id} [delete]
func (h *PostHandler) DeleteOwned(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	if err := h.postService.DeleteOwned(c.Request.Context(), identity.User, c.Param("id")); err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse(c, "message.post_deleted"))
}

// DeleteAsAdmin remove qualquer post e seus comentários (admin)
//
//	@Summary	Remove um post
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do post"
//	@Success	200	{object}	dto.MessageResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/posts/admin/{id} [delete]
func (h *PostHandler) DeleteAsAdmin(c *gin.Context) {
	if err := h.postService.DeleteAsAdmin(c.Request.Context(), c.Param("id")); err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse(c, "message.post_deleted"))
}
