package ports

import "context"

// Email é uma mensagem HTML a ser enviada
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer envia emails transacionais
type Mailer interface {
	Send(ctx context.Context, email Email) error
}
