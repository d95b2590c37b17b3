package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
)

// CommentRepository implementa repositories.CommentRepository
type CommentRepository struct {
	col *mongo.Collection
}

// NewCommentRepository cria um novo CommentRepository
func NewCommentRepository(db *mongo.Database) repositories.CommentRepository {
	return &CommentRepository{col: db.Collection(commentsCollection)}
}

func (r *CommentRepository) Create(ctx context.Context, comment *entities.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	comment.CreatedAt = now()
	comment.UpdatedAt = comment.CreatedAt

	_, err := r.col.InsertOne(ctx, toCommentDocument(comment))
	return translateError(err, "insert comment")
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*entities.Comment, error) {
	var doc commentDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, translateError(err, "find comment by id")
	}
	return doc.toEntity(), nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *entities.Comment) error {
	comment.UpdatedAt = now()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": comment.ID}, toCommentDocument(comment))
	return translateError(err, "replace comment")
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return translateError(err, "delete comment")
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"post_id": postID})
	if err != nil {
		return 0, translateError(err, "delete comments by post")
	}
	return res.DeletedCount, nil
}

func (r *CommentRepository) List(ctx context.Context, filters repositories.CommentFilters) ([]*entities.Comment, error) {
	filter := bson.M{}
	if filters.PostID != "" {
		filter["post_id"] = filters.PostID
	}
	if !filters.IncludeSuspended {
		filter["is_suspended"] = false
	}

	direction := 1
	if filters.NewestFirst {
		direction = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: direction}, {Key: "_id", Value: direction}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateError(err, "list comments")
	}
	defer cur.Close(ctx)

	var docs []commentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translateError(err, "decode comments")
	}

	comments := make([]*entities.Comment, 0, len(docs))
	for i := range docs {
		comments = append(comments, docs[i].toEntity())
	}
	return comments, nil
}
