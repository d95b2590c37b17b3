package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/handlers/dto"
	"github.com/rafabene/blog-backend/internal/handlers/middleware"
	"github.com/rafabene/blog-backend/internal/services"
)

// UserHandler lida com requisições HTTP de autenticação e usuários
type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(authService *services.AuthService, userService *services.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

// Register cadastra um usuário e envia o código de verificação
//
//	@Summary	Cadastra um usuário
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.RegisterRequest	true	"Dados do usuário"
//	@Success	201		{object}	dto.RegisterResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Success:    true,
		Message:    dto.T(c, "message.user_registered"),
		Email:      user.Email.String(),
		IsVerified: user.IsVerified,
	})
}

// VerifyEmail confirma o email com o código enviado
//
//	@Summary	Verifica o email
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.VerifyEmailRequest	true	"Email e código"
//	@Success	200		{object}	dto.SessionResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/users/verifyEmail [post]
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.authService.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session, dto.T(c, "message.email_verified")))
}

// ResendVerification gera e envia um novo código de verificação
//
//	@Summary	Reenvia o código de verificação
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.EmailRequest	true	"Email"
//	@Success	200		{object}	dto.MessageResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/users/resendVerificationCode [post]
func (h *UserHandler) ResendVerification(c *gin.Context) {
	var req dto.EmailRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse(c, "message.verification_resent"))
}

// Login autentica com email e senha
//
//	@Summary	Login
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.LoginRequest	true	"Credenciais"
//	@Success	200		{object}	dto.SessionResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Router		/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session, ""))
}

// Logout revoga o token atual
//
//	@Summary	Logout
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.MessageResponse
//	@Failure	401	{object}	dto.ErrorResponse
//	@Router		/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	if err := h.authService.Logout(c.Request.Context(), identity.Claims); err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse(c, "message.logged_out"))
}

// ForgotPassword envia o link de redefinição; emails desconhecidos recebem a mesma resposta genérica
//
//	@Summary	Solicita redefinição de senha
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.EmailRequest	true	"Email"
//	@Success	200		{object}	dto.MessageResponse
//	@Failure	500		{object}	dto.ErrorResponse
//	@Router		/users/forgot-password [post]
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse(c, "message.reset_link_generic"))
}

// ResetPassword troca a senha usando o token do email
//
//	@Summary	Redefine a senha
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		token	path		string						true	"Token de redefinição"
//	@Param		body	body		dto.ResetPasswordRequest	true	"Nova senha"
//	@Success	200		{object}	dto.SessionResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/users/reset-password/{token} [put]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.authService.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session, dto.T(c, "message.password_reset")))
}

// GetMyProfile retorna o perfil do usuário autenticado
//
//	@Summary	Perfil do usuário autenticado
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.UserResponse
//	@Router		/users/profile/me [get]
func (h *UserHandler) GetMyProfile(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	user, err := h.userService.GetProfile(c.Request.Context(), identity.UserID())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateProfile atualiza o próprio perfil; aceita JSON ou multipart com o campo image
//
//	@Summary	Atualiza o próprio perfil
//	@Tags		users
//	@Accept		json,mpfd
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		dto.UpdateProfileRequest	false	"Campos do perfil"
//	@Param		image	formData	file						false	"Foto de perfil"
//	@Success	200		{object}	dto.UserResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/users/profile-update [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req dto.UpdateProfileRequest
	var image *services.ImageFile

	if isMultipart(c) {
		if err := c.ShouldBind(&req); err != nil {
			abort(c, &bindError{err: err})
			return
		}

		file, closeFile, err := formImage(c, "image")
		if err != nil {
			abort(c, err)
			return
		}
		defer closeFile()
		image = file
	} else if !bindJSON(c, &req) {
		return
	}

	input := req.ToInput()
	input.Image = image

	user, err := h.userService.UpdateProfile(c.Request.Context(), identity.User, input)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// GetAuthorProfile retorna o perfil público de um autor
//
//	@Summary	Perfil público do autor
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"ID do autor"
//	@Success	200	{object}	dto.AuthorProfileResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/author/{id} [get]
func (h *UserHandler) GetAuthorProfile(c *gin.Context) {
	profile, err := h.userService.GetAuthorProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthorProfileResponse(profile))
}

// ListUsers lista todos os usuários (admin)
//
//	@Summary	Lista usuários
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	dto.UserResponse
//	@Router		/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context(), repositories.UserFilters{})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// UpdateUser altera nome, email ou role de um usuário (admin)
//
//	@Summary	Atualiza um usuário
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string						true	"ID do usuário"
//	@Param		body	body		dto.AdminUpdateUserRequest	true	"Campos"
//	@Success	200		{object}	dto.UserResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.AdminUpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.AdminUpdateUser(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser remove um usuário (admin); o admin não pode remover a si mesmo
//
//	@Summary	Remove um usuário
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do usuário"
//	@Success	200	{object}	dto.MessageResponse
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	if err := h.userService.DeleteUser(c.Request.Context(), identity.User, c.Param("id")); err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse(c, "message.user_removed"))
}
