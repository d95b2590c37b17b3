package relational

import "time"

// UserModel é o model GORM para usuários
type UserModel struct {
	ID                     string  `gorm:"type:varchar(36);primaryKey"`
	Email                  string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name                   string  `gorm:"type:varchar(500);not null"`
	PasswordHash           string  `gorm:"type:varchar(255);not null"`
	Role                   string  `gorm:"type:varchar(50);not null;index"`
	Bio                    string  `gorm:"type:varchar(500)"`
	ProfilePicture         string  `gorm:"type:varchar(1000)"`
	Website                string  `gorm:"type:varchar(255)"`
	Location               string  `gorm:"type:varchar(255)"`
	GitHub                 string  `gorm:"column:github;type:varchar(255)"`
	IsVerified             bool    `gorm:"not null;default:false"`
	VerificationCode       *string `gorm:"type:varchar(6)"`
	VerificationExpiresAt  *int64  `gorm:"index"`
	ResetPasswordTokenHash *string `gorm:"type:varchar(64);index"`
	ResetPasswordExpiresAt *int64  `gorm:"index"`
	CreatedAt              int64   `gorm:"autoCreateTime:nano;index"`
	UpdatedAt              int64   `gorm:"autoUpdateTime:nano"`
}

func (UserModel) TableName() string {
	return "users"
}

// CategoryModel é o model GORM para categorias
type CategoryModel struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	Name      string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Slug      string `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:nano;index"`
	UpdatedAt int64  `gorm:"autoUpdateTime:nano"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// PostModel é o model GORM para posts
type PostModel struct {
	ID              string          `gorm:"type:varchar(36);primaryKey"`
	UserID          string          `gorm:"type:varchar(36);not null;index"`
	Title           string          `gorm:"type:varchar(500);not null"`
	Slug            string          `gorm:"type:varchar(600);uniqueIndex;not null"`
	Content         string          `gorm:"type:text;not null"`
	Category        string          `gorm:"type:varchar(255);not null;index"`
	Tags            []string        `gorm:"type:text;serializer:json"`
	FeaturedImage   string          `gorm:"type:varchar(1000);not null"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	SuspendedFrom   string          `gorm:"type:varchar(20)"`
	MetaTitle       string          `gorm:"type:varchar(500)"`
	MetaDescription string          `gorm:"type:varchar(1000)"`
	CreatedAt       int64           `gorm:"autoCreateTime:nano;index"`
	UpdatedAt       int64           `gorm:"autoUpdateTime:nano"`
	Reactions       []ReactionModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (PostModel) TableName() string {
	return "posts"
}

// ReactionModel guarda a reação de um usuário a um post.
// A chave primária composta garante no máximo uma reação por usuário.
type ReactionModel struct {
	PostID    string `gorm:"type:varchar(36);primaryKey"`
	UserID    string `gorm:"type:varchar(36);primaryKey"`
	Kind      string `gorm:"type:varchar(10);not null"`
	CreatedAt int64  `gorm:"autoCreateTime:nano"`
}

func (ReactionModel) TableName() string {
	return "post_reactions"
}

// CommentModel é o model GORM para comentários
type CommentModel struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	PostID      string `gorm:"type:varchar(36);not null;index"`
	UserID      string `gorm:"type:varchar(36);not null;index"`
	Content     string `gorm:"type:text;not null"`
	IsSuspended bool   `gorm:"not null;default:false"`
	CreatedAt   int64  `gorm:"autoCreateTime:nano;index"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:nano"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func toNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func toNanoPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ns := t.UnixNano()
	return &ns
}

func fromNano(ns int64) time.Time {
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns).UTC()
}

func fromNanoPtr(ns *int64) *time.Time {
	if ns == nil {
		return nil
	}
	t := time.Unix(0, *ns).UTC()
	return &t
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
