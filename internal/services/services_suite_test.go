package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
	"github.com/rafabene/blog-backend/internal/infrastructure/auth"
	"github.com/rafabene/blog-backend/internal/infrastructure/cache"
	"github.com/rafabene/blog-backend/internal/infrastructure/logging"
	"github.com/rafabene/blog-backend/internal/infrastructure/persistence/relational"
	"github.com/rafabene/blog-backend/internal/services"
)

func TestServices(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Services Suite")
}

const testPassword = "secret123"

type fakeMailer struct {
	mu   sync.Mutex
	sent []ports.Email
	err  error
}

func (m *fakeMailer) Send(_ context.Context, email ports.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *fakeMailer) Sent() []ports.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.Email(nil), m.sent...)
}

type fakeImageStore struct {
	keys []string
	err  error
}

func (s *fakeImageStore) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	return "https://cdn.test/" + key, nil
}

type fakePublisher struct {
	comments []*entities.Comment
}

func (p *fakePublisher) PublishComment(comment *entities.Comment) {
	p.comments = append(p.comments, comment)
}

var errProviderDown = errors.New("provider down")

// testEnv monta os serviços sobre um SQLite em memória exclusivo do teste
type testEnv struct {
	ctx context.Context

	users      repositories.UserRepository
	posts      repositories.PostRepository
	comments   repositories.CommentRepository
	categories repositories.CategoryRepository

	hasher    *auth.BcryptHasher
	tokens    *auth.JWTManager
	mailer    *fakeMailer
	store     *fakeImageStore
	publisher *fakePublisher

	auth     *services.AuthService
	user     *services.UserService
	post     *services.PostService
	comment  *services.CommentService
	category *services.CategoryService
	upload   *services.UploadService
}

func newTestEnv() *testEnv {
	db, err := relational.NewSQLiteMemory(uuid.NewString())
	Expect(err).NotTo(HaveOccurred())

	sqlDB, err := db.DB()
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(sqlDB.Close)

	logger := logging.NewNopLogger()
	uow := relational.NewUnitOfWork(db)

	env := &testEnv{
		ctx:        context.Background(),
		users:      relational.NewUserRepository(db),
		posts:      relational.NewPostRepository(db),
		comments:   relational.NewCommentRepository(db),
		categories: relational.NewCategoryRepository(db),
		hasher:     auth.NewBcryptHasher(bcrypt.MinCost),
		tokens:     auth.NewJWTManager("test-secret", time.Hour),
		mailer:     &fakeMailer{},
		store:      &fakeImageStore{},
		publisher:  &fakePublisher{},
	}

	env.upload = services.NewUploadService(env.store, 1, logger)
	env.auth = services.NewAuthService(env.users, env.tokens, env.hasher, auth.NewRandomSecrets(), cache.NewMemoryStore(time.Minute), env.mailer, "http://client.test/", logger)
	env.user = services.NewUserService(env.users, env.posts, env.upload, logger)
	env.post = services.NewPostService(env.posts, env.comments, env.categories, env.users, uow, logger)
	env.comment = services.NewCommentService(env.comments, env.posts, env.users, env.publisher, logger)
	env.category = services.NewCategoryService(env.categories, env.posts, uow, logger)

	return env
}

// createUser grava um usuário já verificado
func (e *testEnv) createUser(name, email string, role entities.Role) *entities.User {
	address, err := valueobjects.NewEmail(email)
	Expect(err).NotTo(HaveOccurred())

	hash, err := e.hasher.Hash(testPassword)
	Expect(err).NotTo(HaveOccurred())

	user := entities.NewUser(address, name, hash)
	user.Role = role
	user.IsVerified = true
	Expect(e.users.Create(e.ctx, user)).To(Succeed())
	return user
}

func (e *testEnv) createCategory(name string) *entities.Category {
	category, err := e.category.Create(e.ctx, name)
	Expect(err).NotTo(HaveOccurred())
	return category
}

func (e *testEnv) createPost(author *entities.User, title string, status entities.PostStatus) *entities.Post {
	post, err := e.post.Create(e.ctx, author, services.CreatePostInput{
		Title:         title,
		Content:       "Some content about " + title,
		Category:      "Tech",
		FeaturedImage: "https://cdn.test/featured/cover.png",
		Status:        status,
	})
	Expect(err).NotTo(HaveOccurred())
	return post
}
