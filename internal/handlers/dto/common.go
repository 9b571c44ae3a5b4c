package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blogpro-backend/internal/domain/errors"
	"github.com/rafabene/blogpro-backend/internal/domain/ports"
)

// Response é o envelope uniforme de todas as respostas da API
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK cria uma resposta de sucesso
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail cria uma resposta de falha
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

// statusOf mapeia cada kind de erro de domínio para um status HTTP
func statusOf(kind errors.Kind) int {
	switch kind {
	case errors.KindConflict:
		return http.StatusConflict
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindUnauthorized:
		return http.StatusUnauthorized
	case errors.KindForbidden:
		return http.StatusForbidden
	case errors.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError é o boundary único de erros: mapeia o kind para o status
// e o envelope. Erros internos são logados no servidor e o cliente recebe
// uma mensagem genérica.
func RespondError(c *gin.Context, logger ports.Logger, err error) {
	kind := errors.KindOf(err)
	status := statusOf(kind)

	message := err.Error()
	if kind == errors.KindInternal {
		logger.Error("internal error",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err,
		)
		message = "Something went wrong. Please try again later."
	}

	c.AbortWithStatusJSON(status, Fail(message))
}

// RespondValidationError responde uma falha de binding/validação do corpo
func RespondValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Fail("Invalid request: "+err.Error()))
}
