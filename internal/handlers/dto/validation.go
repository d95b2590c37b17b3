package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidatorTagNames faz o validator reportar campos pelo nome JSON
func RegisterValidatorTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
}

// ValidationErrors converte os erros do validator em mensagens traduzidas.
// Retorna nil quando err não é um erro de validação de campos.
func ValidationErrors(c *gin.Context, err error) []ValidationError {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil
	}

	result := make([]ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		params := map[string]interface{}{
			"Field": fe.Field(),
			"Param": fe.Param(),
		}

		key := "validation." + fe.Tag()
		if !hasTranslation(c, key) {
			key = "validation.invalid"
		}

		result = append(result, ValidationError{
			Field:   fe.Field(),
			Message: T(c, key, params),
			Tag:     fe.Tag(),
		})
	}
	return result
}

func hasTranslation(c *gin.Context, key string) bool {
	return T(c, key) != key
}
