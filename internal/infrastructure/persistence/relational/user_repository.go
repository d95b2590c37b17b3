package relational

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	model := toUserModel(user)

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return translateError(err, "create user")
	}

	user.CreatedAt = fromNano(model.CreatedAt)
	user.UpdatedAt = fromNano(model.UpdatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.first(ctx, "find user by id", "id = ?", id)
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*entities.User, error) {
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}

	var models []*UserModel
	if err := dbFrom(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, translateError(err, "find users by ids")
	}

	return toUserEntities(models)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.first(ctx, "find user by email", "email = ?", valueobjects.NormalizeEmail(email))
}

func (r *UserRepository) FindByEmailAndCode(ctx context.Context, email, code string, now time.Time) (*entities.User, error) {
	return r.first(ctx, "find user by verification code",
		"email = ? AND verification_code = ? AND verification_expires_at > ?",
		valueobjects.NormalizeEmail(email), code, now.UnixNano(),
	)
}

func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entities.User, error) {
	return r.first(ctx, "find user by reset token",
		"reset_password_token_hash = ? AND reset_password_expires_at > ?",
		tokenHash, now.UnixNano(),
	)
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	model := toUserModel(user)

	if err := dbFrom(ctx, r.db).Save(model).Error; err != nil {
		return translateError(err, "update user")
	}

	user.UpdatedAt = fromNano(model.UpdatedAt)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	err := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&UserModel{}).Error
	return translateError(err, "delete user")
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	var models []*UserModel

	query := dbFrom(ctx, r.db).Model(&UserModel{})

	if filters.Role != nil {
		query = query.Where("role = ?", string(*filters.Role))
	}

	query = paginate(query, filters.Page, filters.PageSize)

	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, translateError(err, "list users")
	}

	return toUserEntities(models)
}

func (r *UserRepository) ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	db := dbFrom(ctx, r.db)
	cutoff := now.UnixNano()

	codes := db.Model(&UserModel{}).
		Where("verification_expires_at IS NOT NULL AND verification_expires_at <= ?", cutoff).
		Updates(map[string]interface{}{"verification_code": nil, "verification_expires_at": nil})
	if codes.Error != nil {
		return 0, translateError(codes.Error, "clear verification codes")
	}

	resets := db.Model(&UserModel{}).
		Where("reset_password_expires_at IS NOT NULL AND reset_password_expires_at <= ?", cutoff).
		Updates(map[string]interface{}{"reset_password_token_hash": nil, "reset_password_expires_at": nil})
	if resets.Error != nil {
		return 0, translateError(resets.Error, "clear reset tokens")
	}

	return codes.RowsAffected + resets.RowsAffected, nil
}

func (r *UserRepository) first(ctx context.Context, op string, query string, args ...interface{}) (*entities.User, error) {
	var model UserModel

	if err := dbFrom(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err, op)
	}

	return toUserEntity(&model)
}

// paginate aplica limit/offset; pageSize 0 retorna todos os registros
func paginate(query *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

// Conversores
func toUserModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:                     user.ID,
		Email:                  user.Email.String(),
		Name:                   user.Name,
		PasswordHash:           user.PasswordHash,
		Role:                   string(user.Role),
		Bio:                    user.Bio,
		ProfilePicture:         user.ProfilePicture,
		Website:                user.Website,
		Location:               user.Location,
		GitHub:                 user.GitHub,
		IsVerified:             user.IsVerified,
		VerificationCode:       optionalString(user.VerificationCode),
		VerificationExpiresAt:  toNanoPtr(user.VerificationExpiresAt),
		ResetPasswordTokenHash: optionalString(user.ResetPasswordTokenHash),
		ResetPasswordExpiresAt: toNanoPtr(user.ResetPasswordExpiresAt),
		CreatedAt:              toNano(user.CreatedAt),
		UpdatedAt:              toNano(user.UpdatedAt),
	}
}

func toUserEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:                     model.ID,
		Email:                  email,
		Name:                   model.Name,
		PasswordHash:           model.PasswordHash,
		Role:                   entities.Role(model.Role),
		Bio:                    model.Bio,
		ProfilePicture:         model.ProfilePicture,
		Website:                model.Website,
		Location:               model.Location,
		GitHub:                 model.GitHub,
		IsVerified:             model.IsVerified,
		VerificationCode:       derefString(model.VerificationCode),
		VerificationExpiresAt:  fromNanoPtr(model.VerificationExpiresAt),
		ResetPasswordTokenHash: derefString(model.ResetPasswordTokenHash),
		ResetPasswordExpiresAt: fromNanoPtr(model.ResetPasswordExpiresAt),
		CreatedAt:              fromNano(model.CreatedAt),
		UpdatedAt:              fromNano(model.UpdatedAt),
	}, nil
}

func toUserEntities(models []*UserModel) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(models))

	for _, model := range models {
		entity, err := toUserEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, entity)
	}

	return users, nil
}
