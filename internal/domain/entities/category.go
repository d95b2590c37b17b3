package entities

import (
	"strings"
	"time"

	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

// Category representa uma categoria de posts
type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory cria uma categoria com slug derivado do nome
func NewCategory(name string) *Category {
	c := &Category{}
	c.Rename(name)
	return c
}

// Rename altera o nome e recalcula o slug
func (c *Category) Rename(name string) {
	name = strings.TrimSpace(name)
	if name == c.Name && c.Slug != "" {
		return
	}
	c.Name = name
	c.Slug = valueobjects.Slugify(name)
}
