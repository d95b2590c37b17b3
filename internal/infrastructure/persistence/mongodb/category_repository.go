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

// CategoryRepository implementa repositories.CategoryRepository
type CategoryRepository struct {
	col *mongo.Collection
}

// NewCategoryRepository cria um novo CategoryRepository
func NewCategoryRepository(db *mongo.Database) repositories.CategoryRepository {
	return &CategoryRepository{col: db.Collection(categoriesCollection)}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	category.CreatedAt = now()
	category.UpdatedAt = category.CreatedAt

	_, err := r.col.InsertOne(ctx, toCategoryDocument(category))
	return translateError(err, "insert category")
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*entities.Category, error) {
	return r.findOne(ctx, "find category by id", bson.M{"_id": id})
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*entities.Category, error) {
	return r.findOne(ctx, "find category by slug", bson.M{"slug": slug})
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*entities.Category, error) {
	return r.findOne(ctx, "find category by name", bson.M{"name": name})
}

func (r *CategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	category.UpdatedAt = now()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": category.ID}, toCategoryDocument(category))
	return translateError(err, "replace category")
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return translateError(err, "delete category")
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entities.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, translateError(err, "list categories")
	}
	defer cur.Close(ctx)

	var docs []categoryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translateError(err, "decode categories")
	}

	categories := make([]*entities.Category, 0, len(docs))
	for i := range docs {
		categories = append(categories, docs[i].toEntity())
	}
	return categories, nil
}

func (r *CategoryRepository) findOne(ctx context.Context, op string, filter bson.M) (*entities.Category, error) {
	var doc categoryDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, translateError(err, op)
	}
	return doc.toEntity(), nil
}
