package services

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
)

// Pastas do bucket
const (
	FeaturedImagesFolder = "featured"
	AvatarsFolder        = "avatars"
)

// ImageFile é um arquivo recebido em um formulário multipart
type ImageFile struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// UploadService valida imagens e as publica no image store
type UploadService struct {
	store    ports.ImageStore
	maxBytes int64
	logger   ports.Logger
}

// NewUploadService cria um novo UploadService com limite em megabytes
func NewUploadService(store ports.ImageStore, maxUploadMB int64, logger ports.Logger) *UploadService {
	return &UploadService{
		store:    store,
		maxBytes: maxUploadMB << 20,
		logger:   logger,
	}
}

// UploadFeaturedImage publica a imagem de destaque de um post
func (s *UploadService) UploadFeaturedImage(ctx context.Context, file *ImageFile) (string, error) {
	return s.upload(ctx, FeaturedImagesFolder, file)
}

// UploadAvatar publica a foto de perfil de um usuário
func (s *UploadService) UploadAvatar(ctx context.Context, file *ImageFile) (string, error) {
	return s.upload(ctx, AvatarsFolder, file)
}

func (s *UploadService) upload(ctx context.Context, folder string, file *ImageFile) (string, error) {
	if file == nil || file.Content == nil || file.Size == 0 {
		return "", domainerrors.ErrNoFileUploaded
	}
	if file.Size > s.maxBytes {
		return "", s.tooLarge()
	}

	// lê um byte além do limite para detectar tamanhos declarados incorretamente
	data, err := io.ReadAll(io.LimitReader(file.Content, s.maxBytes+1))
	if err != nil {
		return "", domainerrors.ErrUploadFailed.Wrap(err)
	}
	if len(data) == 0 {
		return "", domainerrors.ErrNoFileUploaded
	}
	if int64(len(data)) > s.maxBytes {
		return "", s.tooLarge()
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", domainerrors.ErrNotAnImage
	}

	ext := mime.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(file.Filename))
	}
	key := path.Join(folder, uuid.NewString()+ext)

	url, err := s.store.Upload(ctx, key, data, mime.String())
	if err != nil {
		s.logger.Error("image upload failed", "key", key, "error", err)
		return "", domainerrors.ErrUploadFailed.Wrap(err)
	}

	s.logger.Info("image uploaded", "key", key, "bytes", len(data))
	return url, nil
}

func (s *UploadService) tooLarge() error {
	return domainerrors.ErrFileTooLarge.WithParams(map[string]interface{}{
		"Limit": s.maxBytes >> 20,
	})
}
