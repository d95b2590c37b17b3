package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *mongo.Database) repositories.UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	_, err := r.col.InsertOne(ctx, toUserDocument(user))
	return translateError(err, "insert user")
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "find user by id", bson.M{"_id": id})
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*entities.User, error) {
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}
	return r.find(ctx, "find users by ids", bson.M{"_id": bson.M{"$in": ids}}, nil)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "find user by email", bson.M{"email": valueobjects.NormalizeEmail(email)})
}

func (r *UserRepository) FindByEmailAndCode(ctx context.Context, email, code string, at time.Time) (*entities.User, error) {
	return r.findOne(ctx, "find user by verification code", bson.M{
		"email":                   valueobjects.NormalizeEmail(email),
		"verification_code":       code,
		"verification_expires_at": bson.M{"$gt": at},
	})
}

func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string, at time.Time) (*entities.User, error) {
	return r.findOne(ctx, "find user by reset token", bson.M{
		"reset_password_token_hash": tokenHash,
		"reset_password_expires_at": bson.M{"$gt": at},
	})
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	user.UpdatedAt = now()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, toUserDocument(user))
	return translateError(err, "replace user")
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return translateError(err, "delete user")
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	filter := bson.M{}
	if filters.Role != nil {
		filter["role"] = string(*filters.Role)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	applyPage(opts, filters.Page, filters.PageSize)

	return r.find(ctx, "list users", filter, opts)
}

func (r *UserRepository) ClearExpiredTokens(ctx context.Context, at time.Time) (int64, error) {
	codes, err := r.col.UpdateMany(ctx,
		bson.M{"verification_expires_at": bson.M{"$lte": at}},
		bson.M{"$unset": bson.M{"verification_code": "", "verification_expires_at": ""}},
	)
	if err != nil {
		return 0, translateError(err, "clear verification codes")
	}

	resets, err := r.col.UpdateMany(ctx,
		bson.M{"reset_password_expires_at": bson.M{"$lte": at}},
		bson.M{"$unset": bson.M{"reset_password_token_hash": "", "reset_password_expires_at": ""}},
	)
	if err != nil {
		return 0, translateError(err, "clear reset tokens")
	}

	return codes.ModifiedCount + resets.ModifiedCount, nil
}

func (r *UserRepository) findOne(ctx context.Context, op string, filter bson.M) (*entities.User, error) {
	var doc userDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, translateError(err, op)
	}
	return doc.toEntity()
}

func (r *UserRepository) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]*entities.User, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateError(err, op)
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translateError(err, op)
	}

	users := make([]*entities.User, 0, len(docs))
	for i := range docs {
		user, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// applyPage aplica skip/limit; pageSize 0 retorna todos os documentos
func applyPage(opts *options.FindOptions, page, pageSize int) {
	if pageSize <= 0 {
		return
	}
	if page < 1 {
		page = 1
	}
	opts.SetSkip(int64((page - 1) * pageSize)).SetLimit(int64(pageSize))
}
