package errors

// Kind classifica erros de domínio; a camada HTTP converte cada Kind em um status
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
)

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound        = New(KindNotFound, "error.user_not_found")
	ErrEmailAlreadyExists  = New(KindConflict, "error.email_already_exists")
	ErrInvalidCredentials  = New(KindUnauthorized, "error.invalid_credentials")
	ErrEmailNotVerified    = New(KindUnauthorized, "error.email_not_verified")
	ErrAlreadyVerified     = New(KindBadRequest, "error.already_verified")
	ErrInvalidVerification = New(KindBadRequest, "error.invalid_verification_code")
	ErrInvalidResetToken   = New(KindBadRequest, "error.invalid_reset_token")
	ErrCannotDeleteSelf    = New(KindBadRequest, "error.cannot_delete_self")

	ErrNoToken       = New(KindUnauthorized, "error.no_token")
	ErrTokenInvalid  = New(KindUnauthorized, "error.token_invalid")
	ErrTokenUser     = New(KindUnauthorized, "error.token_user_not_found")
	ErrAdminRequired = New(KindForbidden, "error.admin_required")
	ErrRateLimited   = New(KindTooManyRequests, "error.rate_limited")

	ErrPostNotFound        = New(KindNotFound, "error.post_not_found")
	ErrPostNotOwned        = New(KindForbidden, "error.post_not_owned")
	ErrPostViewForbidden   = New(KindForbidden, "error.post_view_forbidden")
	ErrPostSuspended       = New(KindForbidden, "error.post_suspended")
	ErrSuspendReserved     = New(KindForbidden, "error.post_suspend_reserved")
	ErrPostMissingFields   = New(KindValidation, "error.post_missing_fields")
	ErrInvalidPostStatus   = New(KindValidation, "error.invalid_post_status")
	ErrInvalidReaction     = New(KindBadRequest, "error.invalid_reaction")
	ErrSlugUnavailable     = New(KindConflict, "error.slug_unavailable")
	ErrCommentNotFound     = New(KindNotFound, "error.comment_not_found")
	ErrCommentEmpty        = New(KindValidation, "error.comment_empty")
	ErrCategoryNotFound    = New(KindNotFound, "error.category_not_found")
	ErrUnknownCategory     = New(KindValidation, "error.unknown_category")
	ErrCategoryNameMissing = New(KindValidation, "error.category_name_required")
	ErrCategoryExists      = New(KindConflict, "error.category_exists")
	ErrCategoryInUse       = New(KindBadRequest, "error.category_in_use")

	ErrNoFileUploaded = New(KindBadRequest, "error.no_file_uploaded")
	ErrFileTooLarge   = New(KindBadRequest, "error.file_too_large")
	ErrNotAnImage     = New(KindBadRequest, "error.not_an_image")
	ErrUploadFailed   = New(KindInternal, "error.upload_failed")
	ErrEmailFailed    = New(KindInternal, "error.email_failed")
)

// Domain errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrInvalidEmail = New(KindValidation, "error.invalid_email")
	ErrValidation   = New(KindValidation, "error.validation.detail")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
	ProblemTypeRateLimited  = "/problems/too-many-requests"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Kind   Kind
	Code   string                 // chave i18n da mensagem
	Params map[string]interface{} // parâmetros do template da mensagem
	Err    error
}

// New cria um erro de domínio sentinela
func New(kind Kind, code string) *DomainError {
	return &DomainError{Kind: kind, Code: code}
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is compara pelo código para que cópias parametrizadas casem com o sentinela
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithParams retorna uma cópia do erro com parâmetros de mensagem
func (e *DomainError) WithParams(params map[string]interface{}) *DomainError {
	cp := *e
	cp.Params = params
	return &cp
}

// Wrap retorna uma cópia do erro encadeando a causa
func (e *DomainError) Wrap(err error) *DomainError {
	cp := *e
	cp.Err = err
	return &cp
}

// ProblemType retorna o path do tipo RFC 7807 correspondente ao Kind
func (k Kind) ProblemType() string {
	switch k {
	case KindValidation:
		return ProblemTypeValidation
	case KindBadRequest:
		return ProblemTypeBadRequest
	case KindUnauthorized:
		return ProblemTypeUnauthorized
	case KindForbidden:
		return ProblemTypeForbidden
	case KindNotFound:
		return ProblemTypeNotFound
	case KindConflict:
		return ProblemTypeConflict
	case KindTooManyRequests:
		return ProblemTypeRateLimited
	default:
		return ProblemTypeInternal
	}
}
