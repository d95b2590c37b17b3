package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
	httphandlers "github.com/rafabene/blog-backend/internal/handlers/http"
	"github.com/rafabene/blog-backend/internal/handlers/middleware"
	"github.com/rafabene/blog-backend/internal/infrastructure/auth"
	"github.com/rafabene/blog-backend/internal/infrastructure/cache"
	"github.com/rafabene/blog-backend/internal/infrastructure/i18n"
	"github.com/rafabene/blog-backend/internal/infrastructure/logging"
	"github.com/rafabene/blog-backend/internal/infrastructure/persistence/relational"
	"github.com/rafabene/blog-backend/internal/infrastructure/realtime"
	"github.com/rafabene/blog-backend/internal/services"
)

const testPassword = "secret123"

type recordingMailer struct {
	mu   sync.Mutex
	sent []ports.Email
}

func (m *recordingMailer) Send(_ context.Context, email ports.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return nil
}

type memoryImageStore struct{}

func (memoryImageStore) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "https://cdn.test/" + key, nil
}

type apiServer struct {
	t      *testing.T
	router *gin.Engine
	users  repositories.UserRepository
	tokens *auth.JWTManager
	hasher *auth.BcryptHasher
	posts  *services.PostService
	cats   *services.CategoryService
	auth   *services.AuthService
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := relational.NewSQLiteMemory(uuid.NewString())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	i18nService, err := i18n.NewDefaultService()
	require.NoError(t, err)

	logger := logging.NewNopLogger()
	memory := cache.NewMemoryStore(time.Minute)
	uow := relational.NewUnitOfWork(db)

	users := relational.NewUserRepository(db)
	posts := relational.NewPostRepository(db)
	comments := relational.NewCommentRepository(db)
	categories := relational.NewCategoryRepository(db)

	tokens := auth.NewJWTManager("test-secret", time.Hour)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	hub := realtime.NewHub(logger)

	uploadService := services.NewUploadService(memoryImageStore{}, 1, logger)
	authService := services.NewAuthService(users, tokens, hasher, auth.NewRandomSecrets(), memory, &recordingMailer{}, "http://client.test", logger)
	userService := services.NewUserService(users, posts, uploadService, logger)
	postService := services.NewPostService(posts, comments, categories, users, uow, logger)
	commentService := services.NewCommentService(comments, posts, users, hub, logger)
	categoryService := services.NewCategoryService(categories, posts, uow, logger)
	t.Cleanup(authService.Wait)

	router := httphandlers.NewRouter(
		httphandlers.RouterConfig{Env: "test", BaseURL: "http://api.test"},
		httphandlers.Handlers{
			Users:       httphandlers.NewUserHandler(authService, userService),
			Posts:       httphandlers.NewPostHandler(postService),
			Comments:    httphandlers.NewCommentHandler(commentService, hub),
			Categories:  httphandlers.NewCategoryHandler(categoryService),
			Uploads:     httphandlers.NewUploadHandler(uploadService),
			Auth:        middleware.NewAuthMiddleware(authService),
			RateLimiter: middleware.NewRateLimiter(memory, 0, logger),
			I18n:        middleware.NewI18nMiddleware(i18nService),
		},
		logger,
	)

	return &apiServer{
		t:      t,
		router: router,
		users:  users,
		tokens: tokens,
		hasher: hasher,
		posts:  postService,
		cats:   categoryService,
		auth:   authService,
	}
}

// createUser grava um usuário verificado e retorna o token dele
func (s *apiServer) createUser(name, email string, role entities.Role) (*entities.User, string) {
	address, err := valueobjects.NewEmail(email)
	require.NoError(s.t, err)

	hash, err := s.hasher.Hash(testPassword)
	require.NoError(s.t, err)

	user := entities.NewUser(address, name, hash)
	user.Role = role
	user.IsVerified = true
	require.NoError(s.t, s.users.Create(context.Background(), user))

	token, err := s.tokens.Issue(user.ID)
	require.NoError(s.t, err)
	return user, token
}

func (s *apiServer) createCategory(name string) *entities.Category {
	category, err := s.cats.Create(context.Background(), name)
	require.NoError(s.t, err)
	return category
}

func (s *apiServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *apiServer) createPost(token, title, status string) map[string]interface{} {
	w := s.do(http.MethodPost, "/api/posts", token, map[string]interface{}{
		"title":         title,
		"content":       "Content of " + title,
		"category":      "Tech",
		"featuredImage": "https://cdn.test/featured/cover.png",
		"status":        status,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(s.t, w)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestHealthAndUnknownRoute(t *testing.T) {
	s := newAPIServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"status": "ok", "env": "test"}, decode(t, w))

	w = s.do(http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")

	body := decode(t, w)
	assert.Equal(t, "Not Found - /api/nothing-here", body["message"])
	assert.Equal(t, "http://api.test/problems/not-found", body["type"])
	assert.Equal(t, "/api/nothing-here", body["instance"])
	assert.NotEmpty(t, body["stack"])
}

func TestAuthEndpoints(t *testing.T) {
	s := newAPIServer(t)

	t.Run("cadastro não expõe o código de verificação", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/users/register", "", map[string]string{
			"name":     "Alice",
			"email":    "alice@example.com",
			"password": testPassword,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, false, body["isVerified"])
		assert.NotContains(t, w.Body.String(), "code")
	})

	t.Run("email duplicado retorna 409", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/users/register", "", map[string]string{
			"name":     "Alice",
			"email":    "alice@example.com",
			"password": testPassword,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("corpo inválido lista os campos", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/users/register", "", map[string]string{"email": "not-an-email"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		body := decode(t, w)
		errs, ok := body["errors"].([]interface{})
		require.True(t, ok, w.Body.String())

		fields := make([]string, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, e.(map[string]interface{})["field"].(string))
		}
		assert.ElementsMatch(t, []string{"name", "email", "password"}, fields)
	})

	t.Run("login de usuário não verificado retorna 401", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/users/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": testPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("login, perfil e logout", func(t *testing.T) {
		s.createUser("Bob", "bob@example.com", entities.RoleUser)

		w := s.do(http.MethodPost, "/api/users/login", "", map[string]string{
			"email":    "bob@example.com",
			"password": testPassword,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		session := decode(t, w)
		token, _ := session["token"].(string)
		require.NotEmpty(t, token)
		assert.NotContains(t, session, "password")

		w = s.do(http.MethodGet, "/api/users/profile/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bob@example.com", decode(t, w)["email"])

		w = s.do(http.MethodPost, "/api/users/logout", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = s.do(http.MethodGet, "/api/users/profile/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Not authorized, token failed", decode(t, w)["message"])
	})

	t.Run("rota protegida sem token", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/users/profile/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Not authorized, no token", decode(t, w)["message"])
	})

	t.Run("forgot-password responde igual para email conhecido e desconhecido", func(t *testing.T) {
		unknown := s.do(http.MethodPost, "/api/users/forgot-password", "", map[string]string{"email": "ghost@example.com"})
		require.Equal(t, http.StatusOK, unknown.Code)
		assert.Equal(t, "If a user with that email exists, a password reset link has been sent.", decode(t, unknown)["message"])

		known := s.do(http.MethodPost, "/api/users/forgot-password", "", map[string]string{"email": "bob@example.com"})
		require.Equal(t, http.StatusOK, known.Code, known.Body.String())
		assert.Equal(t, unknown.Body.String(), known.Body.String())
	})

	t.Run("bio acentuada conta caracteres", func(t *testing.T) {
		_, token := s.createUser("Chloé", "chloe@example.com", entities.RoleUser)
		bio := strings.Repeat("é", 400)

		w := s.do(http.MethodPut, "/api/users/profile-update", token, map[string]string{"bio": bio})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, bio, decode(t, w)["bio"])
	})

	t.Run("mensagens seguem o idioma pedido", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/users/profile/me?lang=pt-BR", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotEqual(t, "Not authorized, no token", decode(t, w)["message"])
	})
}

func TestPostVisibility(t *testing.T) {
	s := newAPIServer(t)
	s.createCategory("Tech")

	_, ownerToken := s.createUser("Owner", "owner@example.com", entities.RoleUser)
	_, otherToken := s.createUser("Other", "other@example.com", entities.RoleUser)
	_, adminToken := s.createUser("Admin", "admin@example.com", entities.RoleAdmin)

	draft := s.createPost(ownerToken, "Hidden draft", "Draft")
	published := s.createPost(ownerToken, "Hello World", "Published")
	second := s.createPost(ownerToken, "Hello, world!", "Published")

	t.Run("títulos equivalentes recebem sufixo numérico", func(t *testing.T) {
		assert.Equal(t, "hello-world", published["slug"])
		assert.Equal(t, "hello-world-2", second["slug"])
	})

	t.Run("listagem pública mostra apenas publicados", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/posts", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.EqualValues(t, 2, body["totalPosts"])
		assert.EqualValues(t, 1, body["page"])
		assert.NotContains(t, w.Body.String(), "Hidden draft")
	})

	t.Run("categoria desconhecida retorna página vazia", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/posts?category=nope", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]interface{}{
			"posts":      []interface{}{},
			"page":       float64(1),
			"totalPages": float64(0),
			"totalPosts": float64(0),
		}, decode(t, w))
	})

	t.Run("rascunho é invisível pelo slug", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/posts/"+draft["slug"].(string), otherToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rascunho por id para outro usuário retorna 403", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/posts/edit/"+draft["id"].(string), otherToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("dono e admin veem o rascunho por id", func(t *testing.T) {
		for _, token := range []string{ownerToken, adminToken} {
			w := s.do(http.MethodGet, "/api/posts/edit/"+draft["id"].(string), token, nil)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("rotas admin exigem o role Admin", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/posts/all-admin", otherToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Not authorized as an admin", decode(t, w)["message"])

		w = s.do(http.MethodGet, "/api/posts/all-admin", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeList(t, w), 3)
	})

	t.Run("últimos posts excluem o informado", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/posts/latest/"+published["id"].(string), "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		latest := decodeList(t, w)
		require.Len(t, latest, 1)
		assert.Equal(t, second["id"], latest[0]["id"])
	})
}

func TestPostLifecycle(t *testing.T) {
	s := newAPIServer(t)
	s.createCategory("Tech")

	_, ownerToken := s.createUser("Owner", "owner@example.com", entities.RoleUser)
	_, readerToken := s.createUser("Reader", "reader@example.com", entities.RoleUser)
	_, adminToken := s.createUser("Admin", "admin@example.com", entities.RoleAdmin)

	post := s.createPost(ownerToken, "Lifecycle", "Published")
	id := post["id"].(string)

	t.Run("like depois de dislike troca a reação", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/posts/react/"+id, readerToken, map[string]string{"action": "dislike"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]interface{}{"likes": float64(0), "dislikes": float64(1)}, decode(t, w))

		w = s.do(http.MethodPut, "/api/posts/react/"+id, readerToken, map[string]string{"action": "like"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]interface{}{"likes": float64(1), "dislikes": float64(0)}, decode(t, w))

		w = s.do(http.MethodPut, "/api/posts/react/"+id, readerToken, map[string]string{"action": "love"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("somente o dono edita", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/posts/edit/"+id, readerToken, map[string]string{"title": "Stolen"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("autor não suspende o próprio post", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/posts/edit/"+id, ownerToken, map[string]string{"status": "Suspended"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("post suspenso fica travado para o autor", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/posts/admin/"+id+"/suspend", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Suspended", decode(t, w)["status"])

		w = s.do(http.MethodPut, "/api/posts/edit/"+id, ownerToken, map[string]string{"status": "Published"})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.do(http.MethodPut, "/api/posts/admin/"+id+"/suspend", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Published", decode(t, w)["status"])
	})

	t.Run("excluir post remove os comentários", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/comments", readerToken, map[string]string{"postId": id, "content": "Nice post"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "Reader", decode(t, w)["user"].(map[string]interface{})["name"])

		w = s.do(http.MethodGet, "/api/comments/"+id, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeList(t, w), 1)

		w = s.do(http.MethodDelete, "/api/posts/my-posts/"+id, readerToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.do(http.MethodDelete, "/api/posts/my-posts/"+id, ownerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = s.do(http.MethodGet, "/api/comments/"+id, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeList(t, w))
	})
}

func TestCategoryDelete(t *testing.T) {
	s := newAPIServer(t)
	tech := s.createCategory("Tech")
	empty := s.createCategory("Empty")

	_, ownerToken := s.createUser("Owner", "owner@example.com", entities.RoleUser)
	_, adminToken := s.createUser("Admin", "admin@example.com", entities.RoleAdmin)
	s.createPost(ownerToken, "Uses tech", "Draft")

	w := s.do(http.MethodDelete, "/api/categories/"+tech.ID, adminToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t,
		`Cannot delete category "Tech". It is currently used by 1 post(s). Please reassign or delete those posts first.`,
		decode(t, w)["message"],
	)

	w = s.do(http.MethodDelete, "/api/categories/"+empty.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/api/categories/"+empty.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	categories := decodeList(t, w)
	require.Len(t, categories, 1)
	assert.Equal(t, "tech", categories[0]["slug"])
}

func TestUpload(t *testing.T) {
	s := newAPIServer(t)
	_, token := s.createUser("Owner", "owner@example.com", entities.RoleUser)

	upload := func(name string, content []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("image", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

	w := upload("cover.png", png)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Regexp(t, `^https://cdn\.test/featured/[0-9a-f-]{36}\.png$`, decode(t, w)["url"])

	w = upload("notes.png", []byte("just some text"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/upload", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
