package entities

import (
	"time"

	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
)

// PostStatus representa o estado do ciclo de vida de um post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "Draft"
	PostStatusPublished PostStatus = "Published"
	PostStatusSuspended PostStatus = "Suspended"
)

// IsValid verifica se o status é conhecido
func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusSuspended:
		return true
	}
	return false
}

// ReactionKind representa like ou dislike
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// ParseReactionKind valida a ação de reação recebida
func ParseReactionKind(action string) (ReactionKind, error) {
	switch ReactionKind(action) {
	case ReactionLike, ReactionDislike:
		return ReactionKind(action), nil
	}
	return "", domainerrors.ErrInvalidReaction
}

// NextReaction calcula a reação resultante de um toggle.
// Repetir a mesma ação remove a reação; a ação oposta substitui a atual.
func NextReaction(current *ReactionKind, action ReactionKind) *ReactionKind {
	if current != nil && *current == action {
		return nil
	}
	next := action
	return &next
}

// ReactionCounts é o resultado de um toggle de reação
type ReactionCounts struct {
	Likes    int
	Dislikes int
}

// Author é o resumo público do autor anexado às leituras
type Author struct {
	ID             string
	Name           string
	ProfilePicture string
	Bio            string
}

// Post representa um post do blog
type Post struct {
	ID            string
	UserID        string
	Title         string
	Slug          string
	Content       string
	Category      string // nome da categoria (desnormalizado)
	Tags          []string
	Likes         []string // IDs de usuários
	Dislikes      []string // IDs de usuários
	FeaturedImage string
	Status        PostStatus
	// SuspendedFrom guarda o status anterior à suspensão pelo admin
	SuspendedFrom   PostStatus
	MetaTitle       string
	MetaDescription string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Author *Author
}

// IsOwnedBy verifica se o usuário é o autor do post
func (p *Post) IsOwnedBy(userID string) bool {
	return p.UserID == userID
}

// IsPublished verifica se o post está visível ao público
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// CanBeManagedBy indica se o usuário pode ver o post em qualquer status
func (p *Post) CanBeManagedBy(user *User) bool {
	if user == nil {
		return false
	}
	return p.IsOwnedBy(user.ID) || user.IsAdmin()
}

// InitialStatus valida o status pedido pelo autor na criação (Draft por padrão)
func InitialStatus(requested PostStatus) (PostStatus, error) {
	switch requested {
	case "":
		return PostStatusDraft, nil
	case PostStatusDraft, PostStatusPublished:
		return requested, nil
	case PostStatusSuspended:
		return "", domainerrors.ErrSuspendReserved
	}
	return "", domainerrors.ErrInvalidPostStatus
}

// ChangeStatusByOwner aplica uma mudança de status pedida pelo autor.
// Um post suspenso fica travado até o admin reverter a suspensão, e
// o autor nunca pode levar o post para Suspended.
func (p *Post) ChangeStatusByOwner(requested PostStatus) error {
	if requested == "" {
		return nil
	}

	if !requested.IsValid() {
		return domainerrors.ErrInvalidPostStatus
	}

	if p.Status == PostStatusSuspended {
		if requested != PostStatusSuspended {
			return domainerrors.ErrPostSuspended
		}
		return nil
	}

	if requested == PostStatusSuspended {
		return domainerrors.ErrSuspendReserved
	}

	p.Status = requested
	return nil
}

// ToggleSuspension alterna a suspensão administrativa.
// Ao reverter, o post volta sempre para Published, independente de SuspendedFrom.
func (p *Post) ToggleSuspension() PostStatus {
	if p.Status == PostStatusSuspended {
		p.Status = PostStatusPublished
		p.SuspendedFrom = ""
		return p.Status
	}

	p.SuspendedFrom = p.Status
	p.Status = PostStatusSuspended
	return p.Status
}

// ReactionOf retorna a reação atual do usuário no post
func (p *Post) ReactionOf(userID string) *ReactionKind {
	for _, id := range p.Likes {
		if id == userID {
			kind := ReactionLike
			return &kind
		}
	}
	for _, id := range p.Dislikes {
		if id == userID {
			kind := ReactionDislike
			return &kind
		}
	}
	return nil
}

// Counts retorna os totais de likes e dislikes
func (p *Post) Counts() ReactionCounts {
	return ReactionCounts{Likes: len(p.Likes), Dislikes: len(p.Dislikes)}
}
