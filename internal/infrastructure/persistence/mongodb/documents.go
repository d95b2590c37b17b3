package mongodb

import (
	"time"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

type userDocument struct {
	ID                     string     `bson:"_id"`
	Email                  string     `bson:"email"`
	Name                   string     `bson:"name"`
	PasswordHash           string     `bson:"password_hash"`
	Role                   string     `bson:"role"`
	Bio                    string     `bson:"bio"`
	ProfilePicture         string     `bson:"profile_picture"`
	Website                string     `bson:"website,omitempty"`
	Location               string     `bson:"location,omitempty"`
	GitHub                 string     `bson:"github,omitempty"`
	IsVerified             bool       `bson:"is_verified"`
	VerificationCode       string     `bson:"verification_code,omitempty"`
	VerificationExpiresAt  *time.Time `bson:"verification_expires_at,omitempty"`
	ResetPasswordTokenHash string     `bson:"reset_password_token_hash,omitempty"`
	ResetPasswordExpiresAt *time.Time `bson:"reset_password_expires_at,omitempty"`
	CreatedAt              time.Time  `bson:"created_at"`
	UpdatedAt              time.Time  `bson:"updated_at"`
}

type postDocument struct {
	ID              string    `bson:"_id"`
	UserID          string    `bson:"user_id"`
	Title           string    `bson:"title"`
	Slug            string    `bson:"slug"`
	Content         string    `bson:"content"`
	Category        string    `bson:"category"`
	Tags            []string  `bson:"tags"`
	Likes           []string  `bson:"likes"`
	Dislikes        []string  `bson:"dislikes"`
	FeaturedImage   string    `bson:"featured_image"`
	Status          string    `bson:"status"`
	SuspendedFrom   string    `bson:"suspended_from,omitempty"`
	MetaTitle       string    `bson:"meta_title,omitempty"`
	MetaDescription string    `bson:"meta_description,omitempty"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

type commentDocument struct {
	ID          string    `bson:"_id"`
	PostID      string    `bson:"post_id"`
	UserID      string    `bson:"user_id"`
	Content     string    `bson:"content"`
	IsSuspended bool      `bson:"is_suspended"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

type categoryDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Slug      string    `bson:"slug"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toUserDocument(u *entities.User) *userDocument {
	return &userDocument{
		ID:                     u.ID,
		Email:                  u.Email.String(),
		Name:                   u.Name,
		PasswordHash:           u.PasswordHash,
		Role:                   string(u.Role),
		Bio:                    u.Bio,
		ProfilePicture:         u.ProfilePicture,
		Website:                u.Website,
		Location:               u.Location,
		GitHub:                 u.GitHub,
		IsVerified:             u.IsVerified,
		VerificationCode:       u.VerificationCode,
		VerificationExpiresAt:  u.VerificationExpiresAt,
		ResetPasswordTokenHash: u.ResetPasswordTokenHash,
		ResetPasswordExpiresAt: u.ResetPasswordExpiresAt,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

func (d *userDocument) toEntity() (*entities.User, error) {
	email, err := valueobjects.NewEmail(d.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:                     d.ID,
		Email:                  email,
		Name:                   d.Name,
		PasswordHash:           d.PasswordHash,
		Role:                   entities.Role(d.Role),
		Bio:                    d.Bio,
		ProfilePicture:         d.ProfilePicture,
		Website:                d.Website,
		Location:               d.Location,
		GitHub:                 d.GitHub,
		IsVerified:             d.IsVerified,
		VerificationCode:       d.VerificationCode,
		VerificationExpiresAt:  utcPtr(d.VerificationExpiresAt),
		ResetPasswordTokenHash: d.ResetPasswordTokenHash,
		ResetPasswordExpiresAt: utcPtr(d.ResetPasswordExpiresAt),
		CreatedAt:              d.CreatedAt.UTC(),
		UpdatedAt:              d.UpdatedAt.UTC(),
	}, nil
}

func toPostDocument(p *entities.Post) *postDocument {
	return &postDocument{
		ID:              p.ID,
		UserID:          p.UserID,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		Category:        p.Category,
		Tags:            nonNil(p.Tags),
		Likes:           nonNil(p.Likes),
		Dislikes:        nonNil(p.Dislikes),
		FeaturedImage:   p.FeaturedImage,
		Status:          string(p.Status),
		SuspendedFrom:   string(p.SuspendedFrom),
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (d *postDocument) toEntity() *entities.Post {
	return &entities.Post{
		ID:              d.ID,
		UserID:          d.UserID,
		Title:           d.Title,
		Slug:            d.Slug,
		Content:         d.Content,
		Category:        d.Category,
		Tags:            nonNil(d.Tags),
		Likes:           nonNil(d.Likes),
		Dislikes:        nonNil(d.Dislikes),
		FeaturedImage:   d.FeaturedImage,
		Status:          entities.PostStatus(d.Status),
		SuspendedFrom:   entities.PostStatus(d.SuspendedFrom),
		MetaTitle:       d.MetaTitle,
		MetaDescription: d.MetaDescription,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
}

func toCommentDocument(c *entities.Comment) *commentDocument {
	return &commentDocument{
		ID:          c.ID,
		PostID:      c.PostID,
		UserID:      c.UserID,
		Content:     c.Content,
		IsSuspended: c.IsSuspended,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d *commentDocument) toEntity() *entities.Comment {
	return &entities.Comment{
		ID:          d.ID,
		PostID:      d.PostID,
		UserID:      d.UserID,
		Content:     d.Content,
		IsSuspended: d.IsSuspended,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func toCategoryDocument(c *entities.Category) *categoryDocument {
	return &categoryDocument{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d *categoryDocument) toEntity() *entities.Category {
	return &entities.Category{
		ID:        d.ID,
		Name:      d.Name,
		Slug:      d.Slug,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// now trunca para milissegundos, a precisão do BSON datetime
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
