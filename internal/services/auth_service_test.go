package services_test

import (
	"regexp"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/services"
)

var resetLinkPattern = regexp.MustCompile(`/reset-password/([0-9a-f]{40})`)

var _ = Describe("AuthService", func() {
	var env *testEnv

	BeforeEach(func() {
		env = newTestEnv()
	})

	register := func(email string) *entities.User {
		user, err := env.auth.Register(env.ctx, services.RegisterInput{
			Name:     "Alice",
			Email:    email,
			Password: testPassword,
		})
		Expect(err).NotTo(HaveOccurred())
		env.auth.Wait()
		return user
	}

	Describe("Register", func() {
		It("cria usuário não verificado e envia o código em segundo plano", func() {
			user := register("Alice@Example.com")

			Expect(user.IsVerified).To(BeFalse())
			Expect(user.Email.String()).To(Equal("alice@example.com"))
			Expect(user.Role).To(Equal(entities.RoleUser))
			Expect(user.VerificationCode).To(MatchRegexp(`^\d{6}$`))
			Expect(user.PasswordHash).NotTo(Equal(testPassword))

			sent := env.mailer.Sent()
			Expect(sent).To(HaveLen(1))
			Expect(sent[0].To).To(Equal("alice@example.com"))
			Expect(sent[0].HTML).To(ContainSubstring(user.VerificationCode))
			Expect(sent[0].HTML).To(ContainSubstring("24 hours"))
		})

		It("rejeita email repetido", func() {
			register("alice@example.com")

			_, err := env.auth.Register(env.ctx, services.RegisterInput{
				Name: "Other", Email: "ALICE@example.com", Password: testPassword,
			})
			Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
		})

		It("conclui o cadastro mesmo quando o email falha", func() {
			env.mailer.err = errProviderDown

			user := register("alice@example.com")
			Expect(user.ID).NotTo(BeEmpty())
		})
	})

	Describe("VerifyEmail", func() {
		It("verifica com o código correto e abre sessão", func() {
			user := register("alice@example.com")

			session, err := env.auth.VerifyEmail(env.ctx, "alice@example.com", user.VerificationCode)
			Expect(err).NotTo(HaveOccurred())
			Expect(session.User.IsVerified).To(BeTrue())
			Expect(session.User.VerificationCode).To(BeEmpty())

			claims, err := env.tokens.Parse(session.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(user.ID))
		})

		It("rejeita código errado", func() {
			register("alice@example.com")

			_, err := env.auth.VerifyEmail(env.ctx, "alice@example.com", "000000x")
			Expect(err).To(MatchError(domainerrors.ErrInvalidVerification))
		})

		It("rejeita código expirado", func() {
			user := register("alice@example.com")

			expired := time.Now().Add(-time.Minute)
			user.VerificationExpiresAt = &expired
			Expect(env.users.Update(env.ctx, user)).To(Succeed())

			_, err := env.auth.VerifyEmail(env.ctx, "alice@example.com", user.VerificationCode)
			Expect(err).To(MatchError(domainerrors.ErrInvalidVerification))
		})
	})

	Describe("ResendVerification", func() {
		It("envia novo código de 15 minutos", func() {
			register("alice@example.com")

			Expect(env.auth.ResendVerification(env.ctx, "alice@example.com")).To(Succeed())

			sent := env.mailer.Sent()
			Expect(sent).To(HaveLen(2))
			Expect(sent[1].HTML).To(ContainSubstring("15 minutes"))
		})

		It("retorna erros de usuário ausente ou já verificado", func() {
			env.createUser("Bob", "bob@example.com", entities.RoleUser)

			Expect(env.auth.ResendVerification(env.ctx, "")).To(MatchError(domainerrors.ErrInvalidEmail))
			Expect(env.auth.ResendVerification(env.ctx, "ghost@example.com")).To(MatchError(domainerrors.ErrUserNotFound))
			Expect(env.auth.ResendVerification(env.ctx, "bob@example.com")).To(MatchError(domainerrors.ErrAlreadyVerified))
		})

		It("propaga a falha do envio", func() {
			register("alice@example.com")
			env.mailer.err = errProviderDown

			Expect(env.auth.ResendVerification(env.ctx, "alice@example.com")).To(MatchError(domainerrors.ErrEmailFailed))
		})
	})

	Describe("Login", func() {
		It("autentica usuário verificado", func() {
			user := env.createUser("Bob", "bob@example.com", entities.RoleUser)

			session, err := env.auth.Login(env.ctx, " BOB@example.com ", testPassword)
			Expect(err).NotTo(HaveOccurred())
			Expect(session.User.ID).To(Equal(user.ID))
			Expect(session.Token).NotTo(BeEmpty())
		})

		It("rejeita senha errada e usuário ausente", func() {
			env.createUser("Bob", "bob@example.com", entities.RoleUser)

			_, err := env.auth.Login(env.ctx, "bob@example.com", "wrong-password")
			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))

			_, err = env.auth.Login(env.ctx, "ghost@example.com", testPassword)
			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
		})

		It("rejeita usuário não verificado", func() {
			register("alice@example.com")

			_, err := env.auth.Login(env.ctx, "alice@example.com", testPassword)
			Expect(err).To(MatchError(domainerrors.ErrEmailNotVerified))
		})
	})

	Describe("Authenticate e Logout", func() {
		It("resolve o token e deixa de aceitá-lo após o logout", func() {
			user := env.createUser("Bob", "bob@example.com", entities.RoleUser)
			session, err := env.auth.Login(env.ctx, "bob@example.com", testPassword)
			Expect(err).NotTo(HaveOccurred())

			identity, err := env.auth.Authenticate(env.ctx, session.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(identity.UserID()).To(Equal(user.ID))

			Expect(env.auth.Logout(env.ctx, identity.Claims)).To(Succeed())

			_, err = env.auth.Authenticate(env.ctx, session.Token)
			Expect(err).To(MatchError(domainerrors.ErrTokenInvalid))
		})

		It("rejeita token malformado", func() {
			_, err := env.auth.Authenticate(env.ctx, "not-a-token")
			Expect(err).To(MatchError(domainerrors.ErrTokenInvalid))
		})

		It("rejeita token de usuário removido", func() {
			user := env.createUser("Bob", "bob@example.com", entities.RoleUser)
			token, err := env.tokens.Issue(user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(env.users.Delete(env.ctx, user.ID)).To(Succeed())

			_, err = env.auth.Authenticate(env.ctx, token)
			Expect(err).To(MatchError(domainerrors.ErrTokenUser))
		})
	})

	Describe("ForgotPassword e ResetPassword", func() {
		It("não envia nada para email desconhecido", func() {
			Expect(env.auth.ForgotPassword(env.ctx, "ghost@example.com")).To(Succeed())
			Expect(env.mailer.Sent()).To(BeEmpty())
		})

		It("envia o link e troca a senha com o token", func() {
			user := env.createUser("Bob", "bob@example.com", entities.RoleUser)

			Expect(env.auth.ForgotPassword(env.ctx, "bob@example.com")).To(Succeed())

			emails := env.mailer.Sent()
			Expect(emails).To(HaveLen(1))
			Expect(emails[0].HTML).To(ContainSubstring("http://client.test/reset-password/"))
			match := resetLinkPattern.FindStringSubmatch(emails[0].HTML)
			Expect(match).To(HaveLen(2))

			stored, err := env.users.FindByID(env.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.ResetPasswordTokenHash).NotTo(Equal(match[1]))

			session, err := env.auth.ResetPassword(env.ctx, match[1], "new-password")
			Expect(err).NotTo(HaveOccurred())
			Expect(session.User.ResetPasswordTokenHash).To(BeEmpty())

			_, err = env.auth.Login(env.ctx, "bob@example.com", "new-password")
			Expect(err).NotTo(HaveOccurred())

			_, err = env.auth.ResetPassword(env.ctx, match[1], "another-password")
			Expect(err).To(MatchError(domainerrors.ErrInvalidResetToken))
		})

		It("limpa o token quando o email falha", func() {
			user := env.createUser("Bob", "bob@example.com", entities.RoleUser)
			env.mailer.err = errProviderDown

			err := env.auth.ForgotPassword(env.ctx, "bob@example.com")
			Expect(err).To(MatchError(domainerrors.ErrEmailFailed))

			stored, err := env.users.FindByID(env.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.ResetPasswordTokenHash).To(BeEmpty())
			Expect(stored.ResetPasswordExpiresAt).To(BeNil())
		})
	})
})
