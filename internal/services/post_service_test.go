package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/services"
)

func ptr[T any](v T) *T {
	return &v
}

var _ = Describe("PostService", func() {
	var (
		env    *testEnv
		author *entities.User
		other  *entities.User
		admin  *entities.User
	)

	BeforeEach(func() {
		env = newTestEnv()
		author = env.createUser("Author", "author@example.com", entities.RoleUser)
		other = env.createUser("Other", "other@example.com", entities.RoleUser)
		admin = env.createUser("Admin", "admin@example.com", entities.RoleAdmin)
		env.createCategory("Tech")
	})

	Describe("Create", func() {
		It("gera slugs únicos para títulos equivalentes", func() {
			first := env.createPost(author, "Hello World", "")
			second := env.createPost(author, "Hello, World!", "")
			third := env.createPost(other, "hello world", "")

			Expect(first.Slug).To(Equal("hello-world"))
			Expect(second.Slug).To(Equal("hello-world-2"))
			Expect(third.Slug).To(Equal("hello-world-3"))
			Expect(first.Status).To(Equal(entities.PostStatusDraft))
			Expect(first.Author.Name).To(Equal("Author"))
		})

		It("usa slug genérico para títulos sem alfanuméricos", func() {
			post := env.createPost(author, "!!!", "")
			Expect(post.Slug).To(Equal("post"))
		})

		It("exige os campos obrigatórios", func() {
			_, err := env.post.Create(env.ctx, author, services.CreatePostInput{
				Title: "Hello", Content: "Body", Category: "Tech",
			})
			Expect(err).To(MatchError(domainerrors.ErrPostMissingFields))
		})

		It("exige categoria existente", func() {
			_, err := env.post.Create(env.ctx, author, services.CreatePostInput{
				Title: "Hello", Content: "Body", Category: "Cooking", FeaturedImage: "https://cdn.test/a.png",
			})
			Expect(err).To(MatchError(domainerrors.ErrUnknownCategory))
		})

		It("não permite criar post suspenso", func() {
			_, err := env.post.Create(env.ctx, author, services.CreatePostInput{
				Title: "Hello", Content: "Body", Category: "Tech", FeaturedImage: "https://cdn.test/a.png",
				Status: entities.PostStatusSuspended,
			})
			Expect(err).To(MatchError(domainerrors.ErrSuspendReserved))
		})
	})

	Describe("leituras públicas", func() {
		var published, draft *entities.Post

		BeforeEach(func() {
			env.createCategory("Go Lang")
			published = env.createPost(author, "Published Post", entities.PostStatusPublished)
			draft = env.createPost(author, "Draft Post", entities.PostStatusDraft)
		})

		It("lista apenas posts publicados", func() {
			page, err := env.post.ListPublished(env.ctx, services.ListPublishedInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Posts).To(HaveLen(1))
			Expect(page.Posts[0].ID).To(Equal(published.ID))
			Expect(page.Posts[0].Author).NotTo(BeNil())
			Expect(page.Page).To(Equal(1))
			Expect(page.TotalPages).To(Equal(1))
			Expect(page.TotalPosts).To(Equal(int64(1)))
		})

		It("filtra por palavra-chave e categoria", func() {
			page, err := env.post.ListPublished(env.ctx, services.ListPublishedInput{Keyword: "PUBLISHED", CategorySlug: "tech"})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Posts).To(HaveLen(1))

			page, err = env.post.ListPublished(env.ctx, services.ListPublishedInput{CategorySlug: "go-lang"})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Posts).To(BeEmpty())
			Expect(page.TotalPosts).To(BeZero())
		})

		It("retorna página vazia para categoria desconhecida", func() {
			page, err := env.post.ListPublished(env.ctx, services.ListPublishedInput{CategorySlug: "nope", Page: 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Posts).To(BeEmpty())
			Expect(page.Page).To(Equal(1))
			Expect(page.TotalPages).To(BeZero())
		})

		It("pagina com limite", func() {
			env.createPost(author, "Second Published", entities.PostStatusPublished)
			env.createPost(author, "Third Published", entities.PostStatusPublished)

			page, err := env.post.ListPublished(env.ctx, services.ListPublishedInput{Page: 2, Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Posts).To(HaveLen(1))
			Expect(page.Posts[0].ID).To(Equal(published.ID))
			Expect(page.TotalPages).To(Equal(2))
			Expect(page.TotalPosts).To(Equal(int64(3)))
		})

		It("esconde rascunhos na leitura por slug", func() {
			post, err := env.post.GetPublishedBySlug(env.ctx, published.Slug)
			Expect(err).NotTo(HaveOccurred())
			Expect(post.ID).To(Equal(published.ID))

			_, err = env.post.GetPublishedBySlug(env.ctx, draft.Slug)
			Expect(err).To(MatchError(domainerrors.ErrPostNotFound))
		})

		It("lista os mais recentes excluindo o post atual", func() {
			newer := env.createPost(other, "Newer Published", entities.PostStatusPublished)

			latest, err := env.post.Latest(env.ctx, newer.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(latest).To(HaveLen(1))
			Expect(latest[0].ID).To(Equal(published.ID))
		})

		It("separa posts do autor, do usuário e da administração", func() {
			byAuthor, err := env.post.ListByAuthor(env.ctx, author.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(byAuthor).To(HaveLen(1))

			mine, err := env.post.ListMine(env.ctx, author)
			Expect(err).NotTo(HaveOccurred())
			Expect(mine).To(HaveLen(2))
			Expect(mine[0].ID).To(Equal(draft.ID))

			all, err := env.post.ListAll(env.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
		})

		It("permite ver rascunho apenas ao autor e ao admin", func() {
			_, err := env.post.GetForEdit(env.ctx, author, draft.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = env.post.GetForEdit(env.ctx, admin, draft.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = env.post.GetForEdit(env.ctx, other, draft.ID)
			Expect(err).To(MatchError(domainerrors.ErrPostViewForbidden))

			_, err = env.post.GetForEdit(env.ctx, author, "missing")
			Expect(err).To(MatchError(domainerrors.ErrPostNotFound))
		})
	})

	Describe("Update", func() {
		var post *entities.Post

		BeforeEach(func() {
			post = env.createPost(author, "Original Title", entities.PostStatusDraft)
		})

		It("permite apenas ao autor", func() {
			_, err := env.post.Update(env.ctx, other, post.ID, services.UpdatePostInput{Title: ptr("Hijack")})
			Expect(err).To(MatchError(domainerrors.ErrPostNotOwned))

			_, err = env.post.Update(env.ctx, admin, post.ID, services.UpdatePostInput{Title: ptr("Hijack")})
			Expect(err).To(MatchError(domainerrors.ErrPostNotOwned))
		})

		It("recalcula o slug quando o título muda", func() {
			env.createPost(other, "New Title", "")

			updated, err := env.post.Update(env.ctx, author, post.ID, services.UpdatePostInput{Title: ptr("New Title")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Slug).To(Equal("new-title-2"))

			updated, err = env.post.Update(env.ctx, author, post.ID, services.UpdatePostInput{Title: ptr("new title")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Slug).To(Equal("new-title-2"))
		})

		It("mantém campos ausentes e limpa opcionais enviados vazios", func() {
			post.MetaTitle = "Meta"
			Expect(env.posts.Update(env.ctx, post)).To(Succeed())

			updated, err := env.post.Update(env.ctx, author, post.ID, services.UpdatePostInput{
				MetaTitle: ptr(""),
				Tags:      ptr([]string{"go", " ", "gin"}),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.MetaTitle).To(BeEmpty())
			Expect(updated.Title).To(Equal("Original Title"))
			Expect(updated.Tags).To(Equal([]string{"go", "gin"}))
		})

		It("não aceita campos obrigatórios vazios", func() {
			_, err := env.post.Update(env.ctx, author, post.ID, services.UpdatePostInput{Content: ptr("  ")})
			Expect(err).To(MatchError(domainerrors.ErrPostMissingFields))
		})

		It("publica e despublica", func() {
			updated, err := env.post.Update(env.ctx, author, post.ID, services.UpdatePostInput{Status: ptr(entities.PostStatusPublished)})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(entities.PostStatusPublished))

			_, err = env.post.Update(env.ctx, author, post.ID, services.UpdatePostInput{Status: ptr(entities.PostStatusSuspended)})
			Expect(err).To(MatchError(domainerrors.ErrSuspendReserved))
		})
	})

	Describe("suspensão administrativa", func() {
		It("trava o post até o admin reverter", func() {
			post := env.createPost(author, "Controversial", entities.PostStatusPublished)

			status, err := env.post.ToggleSuspension(env.ctx, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(entities.PostStatusSuspended))

			_, err = env.post.Update(env.ctx, author, post.ID, services.UpdatePostInput{Status: ptr(entities.PostStatusPublished)})
			Expect(err).To(MatchError(domainerrors.ErrPostSuspended))
			_, err = env.post.Update(env.ctx, author, post.ID, services.UpdatePostInput{Status: ptr(entities.PostStatusDraft)})
			Expect(err).To(MatchError(domainerrors.ErrPostSuspended))

			status, err = env.post.ToggleSuspension(env.ctx, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(entities.PostStatusPublished))
		})

		It("retorna not found para post ausente", func() {
			_, err := env.post.ToggleSuspension(env.ctx, "missing")
			Expect(err).To(MatchError(domainerrors.ErrPostNotFound))
		})
	})

	Describe("React", func() {
		var post *entities.Post

		BeforeEach(func() {
			post = env.createPost(author, "Reactable", entities.PostStatusPublished)
		})

		It("troca dislike por like em uma operação", func() {
			counts, err := env.post.React(env.ctx, other, post.ID, "dislike")
			Expect(err).NotTo(HaveOccurred())
			Expect(counts).To(Equal(entities.ReactionCounts{Likes: 0, Dislikes: 1}))

			counts, err = env.post.React(env.ctx, other, post.ID, "like")
			Expect(err).NotTo(HaveOccurred())
			Expect(counts).To(Equal(entities.ReactionCounts{Likes: 1, Dislikes: 0}))

			counts, err = env.post.React(env.ctx, author, post.ID, "like")
			Expect(err).NotTo(HaveOccurred())
			Expect(counts).To(Equal(entities.ReactionCounts{Likes: 2, Dislikes: 0}))
		})

		It("remove a reação repetida", func() {
			_, err := env.post.React(env.ctx, other, post.ID, "like")
			Expect(err).NotTo(HaveOccurred())

			counts, err := env.post.React(env.ctx, other, post.ID, "like")
			Expect(err).NotTo(HaveOccurred())
			Expect(counts).To(Equal(entities.ReactionCounts{}))
		})

		It("valida ação e post", func() {
			_, err := env.post.React(env.ctx, other, post.ID, "love")
			Expect(err).To(MatchError(domainerrors.ErrInvalidReaction))

			_, err = env.post.React(env.ctx, other, "missing", "like")
			Expect(err).To(MatchError(domainerrors.ErrPostNotFound))
		})
	})

	Describe("Delete", func() {
		It("remove o post e seus comentários", func() {
			post := env.createPost(author, "Doomed", entities.PostStatusPublished)
			_, err := env.comment.Create(env.ctx, other, post.ID, "first!")
			Expect(err).NotTo(HaveOccurred())
			_, err = env.comment.Create(env.ctx, author, post.ID, "thanks")
			Expect(err).NotTo(HaveOccurred())

			Expect(env.post.DeleteOwned(env.ctx, other, post.ID)).To(MatchError(domainerrors.ErrPostNotOwned))
			Expect(env.post.DeleteOwned(env.ctx, author, post.ID)).To(Succeed())

			found, err := env.posts.FindByID(env.ctx, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())

			comments, err := env.comment.ListAll(env.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(comments).To(BeEmpty())
		})

		It("permite ao admin remover qualquer post", func() {
			post := env.createPost(author, "Spam", entities.PostStatusPublished)

			Expect(env.post.DeleteAsAdmin(env.ctx, post.ID)).To(Succeed())
			Expect(env.post.DeleteAsAdmin(env.ctx, post.ID)).To(MatchError(domainerrors.ErrPostNotFound))
		})
	})
})
