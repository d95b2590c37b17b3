package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/services"
)

var _ = Describe("CommentService", func() {
	var (
		env       *testEnv
		author    *entities.User
		commenter *entities.User
		post      *entities.Post
	)

	BeforeEach(func() {
		env = newTestEnv()
		author = env.createUser("Author", "author@example.com", entities.RoleUser)
		commenter = env.createUser("Carol", "carol@example.com", entities.RoleUser)
		env.createCategory("Tech")
		post = env.createPost(author, "Commented Post", entities.PostStatusPublished)
	})

	It("cria o comentário com o nome do autor e publica no feed", func() {
		comment, err := env.comment.Create(env.ctx, commenter, post.ID, "  Nice post  ")
		Expect(err).NotTo(HaveOccurred())
		Expect(comment.Content).To(Equal("Nice post"))
		Expect(comment.Author.Name).To(Equal("Carol"))
		Expect(env.publisher.comments).To(HaveLen(1))
		Expect(env.publisher.comments[0].ID).To(Equal(comment.ID))
	})

	It("valida conteúdo e post", func() {
		_, err := env.comment.Create(env.ctx, commenter, post.ID, "   ")
		Expect(err).To(MatchError(domainerrors.ErrCommentEmpty))

		_, err = env.comment.Create(env.ctx, commenter, "missing", "hello")
		Expect(err).To(MatchError(domainerrors.ErrPostNotFound))
		Expect(env.publisher.comments).To(BeEmpty())
	})

	It("esconde comentários suspensos na leitura pública", func() {
		first, err := env.comment.Create(env.ctx, commenter, post.ID, "first")
		Expect(err).NotTo(HaveOccurred())
		_, err = env.comment.Create(env.ctx, author, post.ID, "second")
		Expect(err).NotTo(HaveOccurred())

		suspended, err := env.comment.ToggleSuspension(env.ctx, first.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(suspended).To(BeTrue())

		visible, err := env.comment.ListForPost(env.ctx, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(visible).To(HaveLen(1))
		Expect(visible[0].Content).To(Equal("second"))
		Expect(visible[0].Author.Name).To(Equal("Author"))

		all, err := env.comment.ListAll(env.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))
		Expect(all[0].Content).To(Equal("second"))
		Expect(all[1].IsSuspended).To(BeTrue())
		Expect(all[1].Post).To(Equal(&entities.PostContext{ID: post.ID, Title: post.Title, Slug: post.Slug}))

		suspended, err = env.comment.ToggleSuspension(env.ctx, first.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(suspended).To(BeFalse())
	})

	It("remove comentários e retorna not found para ausentes", func() {
		comment, err := env.comment.Create(env.ctx, commenter, post.ID, "bye")
		Expect(err).NotTo(HaveOccurred())

		Expect(env.comment.Delete(env.ctx, comment.ID)).To(Succeed())
		Expect(env.comment.Delete(env.ctx, comment.ID)).To(MatchError(domainerrors.ErrCommentNotFound))

		_, err = env.comment.ToggleSuspension(env.ctx, comment.ID)
		Expect(err).To(MatchError(domainerrors.ErrCommentNotFound))
	})
})

var _ = Describe("CategoryService", func() {
	var env *testEnv

	BeforeEach(func() {
		env = newTestEnv()
	})

	It("cria categorias únicas ordenadas por nome", func() {
		env.createCategory("Travel")
		tech := env.createCategory("  Tech Talk ")
		Expect(tech.Name).To(Equal("Tech Talk"))
		Expect(tech.Slug).To(Equal("tech-talk"))

		_, err := env.category.Create(env.ctx, "Tech Talk")
		Expect(err).To(MatchError(domainerrors.ErrCategoryExists))

		_, err = env.category.Create(env.ctx, "   ")
		Expect(err).To(MatchError(domainerrors.ErrCategoryNameMissing))

		categories, err := env.category.List(env.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(categories).To(HaveLen(2))
		Expect(categories[0].Name).To(Equal("Tech Talk"))
		Expect(categories[1].Name).To(Equal("Travel"))
	})

	It("renomeia a categoria e os posts que a usam", func() {
		author := env.createUser("Author", "author@example.com", entities.RoleUser)
		tech := env.createCategory("Tech")
		env.createCategory("Travel")
		post := env.createPost(author, "Gadgets", entities.PostStatusPublished)

		_, err := env.category.Update(env.ctx, tech.ID, "Travel")
		Expect(err).To(MatchError(domainerrors.ErrCategoryExists))

		renamed, err := env.category.Update(env.ctx, tech.ID, "Technology")
		Expect(err).NotTo(HaveOccurred())
		Expect(renamed.Slug).To(Equal("technology"))

		stored, err := env.posts.FindByID(env.ctx, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.Category).To(Equal("Technology"))

		_, err = env.category.Update(env.ctx, "missing", "Other")
		Expect(err).To(MatchError(domainerrors.ErrCategoryNotFound))
	})

	It("impede remover categoria em uso informando a contagem", func() {
		author := env.createUser("Author", "author@example.com", entities.RoleUser)
		tech := env.createCategory("Tech")
		post := env.createPost(author, "Tech Post", entities.PostStatusDraft)

		err := env.category.Delete(env.ctx, tech.ID)
		Expect(err).To(MatchError(domainerrors.ErrCategoryInUse))

		var domainErr *domainerrors.DomainError
		Expect(err).To(BeAssignableToTypeOf(domainErr))
		Expect(err.(*domainerrors.DomainError).Params).To(HaveKeyWithValue("Count", int64(1)))
		Expect(err.(*domainerrors.DomainError).Params).To(HaveKeyWithValue("Name", "Tech"))

		Expect(env.post.DeleteOwned(env.ctx, author, post.ID)).To(Succeed())
		Expect(env.category.Delete(env.ctx, tech.ID)).To(Succeed())
		Expect(env.category.Delete(env.ctx, tech.ID)).To(MatchError(domainerrors.ErrCategoryNotFound))
	})
})

var _ = Describe("UserService", func() {
	var (
		env   *testEnv
		user  *entities.User
		admin *entities.User
	)

	BeforeEach(func() {
		env = newTestEnv()
		user = env.createUser("Dave", "dave@example.com", entities.RoleUser)
		admin = env.createUser("Admin", "admin@example.com", entities.RoleAdmin)
	})

	It("atualiza apenas os campos enviados", func() {
		updated, err := env.user.UpdateProfile(env.ctx, user, services.UpdateProfileInput{
			Website:  ptr("https://dave.dev"),
			Location: ptr("Lisbon"),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Name).To(Equal("Dave"))
		Expect(updated.Bio).To(Equal(entities.DefaultBio))
		Expect(updated.Website).To(Equal("https://dave.dev"))

		updated, err = env.user.UpdateProfile(env.ctx, user, services.UpdateProfileInput{Website: ptr("")})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Website).To(BeEmpty())
		Expect(updated.Location).To(Equal("Lisbon"))
		Expect(updated.Role).To(Equal(entities.RoleUser))
	})

	It("rejeita nome inválido", func() {
		_, err := env.user.UpdateProfile(env.ctx, user, services.UpdateProfileInput{Name: ptr("D")})
		Expect(err).To(MatchError(domainerrors.ErrValidation))
	})

	It("envia a nova foto de perfil", func() {
		updated, err := env.user.UpdateProfile(env.ctx, user, services.UpdateProfileInput{
			Image: pngFile("me.png"),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.ProfilePicture).To(HavePrefix("https://cdn.test/avatars/"))
		Expect(updated.ProfilePicture).To(HaveSuffix(".png"))
	})

	It("soma os totais do autor em todos os posts", func() {
		env.createCategory("Tech")
		published := env.createPost(user, "One", entities.PostStatusPublished)
		draft := env.createPost(user, "Two", entities.PostStatusDraft)

		_, err := env.post.React(env.ctx, admin, published.ID, "like")
		Expect(err).NotTo(HaveOccurred())
		_, err = env.post.React(env.ctx, user, draft.ID, "dislike")
		Expect(err).NotTo(HaveOccurred())

		profile, err := env.user.GetAuthorProfile(env.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(profile.TotalPosts).To(Equal(int64(2)))
		Expect(profile.TotalLikes).To(Equal(1))
		Expect(profile.TotalDislikes).To(Equal(1))

		_, err = env.user.GetAuthorProfile(env.ctx, "missing")
		Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
	})

	It("permite ao admin alterar role e email", func() {
		updated, err := env.user.AdminUpdateUser(env.ctx, user.ID, services.AdminUpdateUserInput{
			Email: ptr("DAVE2@example.com"),
			Role:  ptr(entities.RoleAdmin),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Email.String()).To(Equal("dave2@example.com"))
		Expect(updated.IsAdmin()).To(BeTrue())

		_, err = env.user.AdminUpdateUser(env.ctx, user.ID, services.AdminUpdateUserInput{Email: ptr("admin@example.com")})
		Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))

		_, err = env.user.AdminUpdateUser(env.ctx, user.ID, services.AdminUpdateUserInput{Role: ptr(entities.Role("guest"))})
		Expect(err).To(MatchError(domainerrors.ErrValidation))
	})

	It("impede o admin de remover a si mesmo", func() {
		Expect(env.user.DeleteUser(env.ctx, admin, admin.ID)).To(MatchError(domainerrors.ErrCannotDeleteSelf))
		Expect(env.user.DeleteUser(env.ctx, admin, user.ID)).To(Succeed())
		Expect(env.user.DeleteUser(env.ctx, admin, user.ID)).To(MatchError(domainerrors.ErrUserNotFound))

		users, err := env.user.ListUsers(env.ctx, repositories.UserFilters{})
		Expect(err).NotTo(HaveOccurred())
		Expect(users).To(HaveLen(1))
	})
})
