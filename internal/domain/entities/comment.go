package entities

import "time"

// Comment representa um comentário em um post
type Comment struct {
	ID          string
	PostID      string
	UserID      string
	Content     string
	IsSuspended bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Author *Author      // commenter (apenas ID e nome preenchidos)
	Post   *PostContext // preenchido na listagem administrativa
}

// PostContext identifica o post de um comentário na moderação
type PostContext struct {
	ID    string
	Title string
	Slug  string
}

// ToggleSuspension alterna a suspensão e retorna o novo estado
func (c *Comment) ToggleSuspension() bool {
	c.IsSuspended = !c.IsSuspended
	return c.IsSuspended
}
