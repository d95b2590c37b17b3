package mongodb

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
)

// PostRepository implementa repositories.PostRepository.
// Reações ficam nos arrays likes/dislikes do próprio documento.
type PostRepository struct {
	col *mongo.Collection
}

// NewPostRepository cria um novo PostRepository
func NewPostRepository(db *mongo.Database) repositories.PostRepository {
	return &PostRepository{col: db.Collection(postsCollection)}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.CreatedAt = now()
	post.UpdatedAt = post.CreatedAt

	_, err := r.col.InsertOne(ctx, toPostDocument(post))
	return translateError(err, "insert post")
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*entities.Post, error) {
	return r.findOne(ctx, "find post by id", bson.M{"_id": id})
}

func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*entities.Post, error) {
	return r.findOne(ctx, "find post by slug", bson.M{"slug": slug})
}

func (r *PostRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	filter := bson.M{"slug": slug}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	count, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, translateError(err, "check slug")
	}
	return count > 0, nil
}

// Update substitui os campos editáveis sem tocar nos arrays de reação
func (r *PostRepository) Update(ctx context.Context, post *entities.Post) error {
	post.UpdatedAt = now()

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{"$set": bson.M{
		"title":            post.Title,
		"slug":             post.Slug,
		"content":          post.Content,
		"category":         post.Category,
		"tags":             nonNil(post.Tags),
		"featured_image":   post.FeaturedImage,
		"status":           string(post.Status),
		"suspended_from":   string(post.SuspendedFrom),
		"meta_title":       post.MetaTitle,
		"meta_description": post.MetaDescription,
		"updated_at":       post.UpdatedAt,
	}})
	return translateError(err, "update post")
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return translateError(err, "delete post")
}

func (r *PostRepository) List(ctx context.Context, filters repositories.PostFilters) ([]*entities.Post, int64, error) {
	filter := bson.M{}
	if filters.Status != nil {
		filter["status"] = string(*filters.Status)
	}
	if filters.UserID != "" {
		filter["user_id"] = filters.UserID
	}
	if filters.Category != "" {
		filter["category"] = filters.Category
	}
	if filters.ExcludeID != "" {
		filter["_id"] = bson.M{"$ne": filters.ExcludeID}
	}
	if keyword := strings.TrimSpace(filters.Keyword); keyword != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translateError(err, "count posts")
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	applyPage(opts, filters.Page, filters.PageSize)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, translateError(err, "list posts")
	}
	defer cur.Close(ctx)

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, translateError(err, "decode posts")
	}

	posts := make([]*entities.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toEntity())
	}
	return posts, total, nil
}

func (r *PostRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"category": category})
	if err != nil {
		return 0, translateError(err, "count posts by category")
	}
	return count, nil
}

func (r *PostRepository) RenameCategory(ctx context.Context, oldName, newName string) (int64, error) {
	res, err := r.col.UpdateMany(ctx, bson.M{"category": oldName}, bson.M{"$set": bson.M{"category": newName}})
	if err != nil {
		return 0, translateError(err, "rename post category")
	}
	return res.ModifiedCount, nil
}

// SetReaction aplica $pull/$addToSet numa única operação atômica no documento
func (r *PostRepository) SetReaction(ctx context.Context, postID, userID string, kind *entities.ReactionKind) (entities.ReactionCounts, error) {
	var update bson.M
	switch {
	case kind == nil:
		update = bson.M{"$pull": bson.M{"likes": userID, "dislikes": userID}}
	case *kind == entities.ReactionLike:
		update = bson.M{"$pull": bson.M{"dislikes": userID}, "$addToSet": bson.M{"likes": userID}}
	default:
		update = bson.M{"$pull": bson.M{"likes": userID}, "$addToSet": bson.M{"dislikes": userID}}
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes": 1, "dislikes": 1})

	var doc postDocument
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).Decode(&doc); err != nil {
		return entities.ReactionCounts{}, translateError(err, "set reaction")
	}

	return entities.ReactionCounts{Likes: len(doc.Likes), Dislikes: len(doc.Dislikes)}, nil
}

func (r *PostRepository) findOne(ctx context.Context, op string, filter bson.M) (*entities.Post, error) {
	var doc postDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, translateError(err, op)
	}
	return doc.toEntity(), nil
}
