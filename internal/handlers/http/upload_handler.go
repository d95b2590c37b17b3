package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/handlers/dto"
	"github.com/rafabene/blog-backend/internal/services"
)

// UploadHandler recebe imagens de destaque dos posts
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler cria um novo UploadHandler
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadImage envia a imagem do campo image para o bucket
//
//	@Summary	Envia uma imagem
//	@Tags		uploads
//	@Accept		mpfd
//	@Produce	json
//	@Security	BearerAuth
//	@Param		image	formData	file	true	"Imagem"
//	@Success	201		{object}	dto.UploadResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	500		{object}	dto.ErrorResponse
//	@Router		/upload [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, closeFile, err := formImage(c, "image")
	if err != nil {
		abort(c, err)
		return
	}
	defer closeFile()

	url, err := h.uploadService.UploadFeaturedImage(c.Request.Context(), file)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{
		Message: dto.T(c, "message.file_uploaded"),
		URL:     url,
	})
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// formImage abre o arquivo do campo; sem arquivo retorna (nil, noop, nil)
func formImage(c *gin.Context, field string) (*services.ImageFile, func(), error) {
	noop := func() {}

	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, &bindError{err: err}
	}

	f, err := header.Open()
	if err != nil {
		return nil, noop, &bindError{err: err}
	}

	return &services.ImageFile{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  f,
	}, func() { _ = f.Close() }, nil
}
