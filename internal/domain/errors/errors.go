package errors

import (
	"errors"
	"fmt"
)

// Kind classifica um erro de domínio. O boundary HTTP mapeia cada kind
// para um status e um envelope de resposta uniforme.
type Kind int

const (
	KindInternal Kind = iota
	KindConflict
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindValidation
)

// Error é o tipo único de erro de domínio, carregando o kind e uma
// mensagem apresentável ao cliente (exceto para KindInternal)
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E cria um erro de domínio com o kind e mensagem informados
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap cria um erro de domínio englobando uma causa
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Conflict cria um erro de conflito (unicidade ou estado já alcançado)
func Conflict(message string) *Error {
	return E(KindConflict, message)
}

// NotFound cria um erro de recurso inexistente
func NotFound(resource string) *Error {
	return E(KindNotFound, resource+" not found")
}

// Unauthorized cria um erro de credencial ausente ou inválida
func Unauthorized(message string) *Error {
	return E(KindUnauthorized, message)
}

// Forbidden cria um erro de permissão insuficiente
func Forbidden(message string) *Error {
	return E(KindForbidden, message)
}

// Validation cria um erro de entrada malformada
func Validation(message string) *Error {
	return E(KindValidation, message)
}

// Internal engloba uma falha inesperada de infraestrutura
func Internal(err error) *Error {
	return Wrap(KindInternal, "internal error", err)
}

// Internalf engloba uma falha inesperada com contexto formatado
func Internalf(format string, args ...any) *Error {
	return Wrap(KindInternal, "internal error", fmt.Errorf(format, args...))
}

// KindOf extrai o kind de um erro; erros desconhecidos são KindInternal
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// Erros do serviço de tokens. Já carregam o kind Unauthorized porque toda
// falha de verificação é tratada como credencial inválida pelo boundary.
var (
	ErrTokenExpired      = E(KindUnauthorized, "token has expired")
	ErrTokenMalformed    = E(KindUnauthorized, "token is malformed")
	ErrWrongTokenPurpose = E(KindUnauthorized, "wrong token purpose")
)
