package ports

import "context"

// ImageStore publica imagens no host externo e retorna a URL segura
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
