package graphql

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/logging"
)

// Values of extensions.code.
const (
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeNotFound           = "NOT_FOUND"
	CodeBadUserInput       = "BAD_USER_INPUT"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

// Error is a resolver error carrying a machine-readable code in its
// extensions.
type Error struct {
	Message string
	Code    string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// toGraphQLError maps service errors to client-facing errors. Anything that
// is not a domain failure is logged and reported without detail.
func toGraphQLError(ctx context.Context, log logging.Logger, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		return &Error{Message: "User already exists", Code: CodeAlreadyExists}
	case errors.Is(err, common.ErrorInvalidCredentials):
		return &Error{Message: "Invalid credentials", Code: CodeInvalidCredentials}
	case errors.Is(err, common.ErrorUnauthenticated):
		return &Error{Message: "Not authenticated", Code: CodeUnauthenticated}
	case errors.Is(err, common.ErrorNotFound):
		return &Error{Message: "Task not found", Code: CodeNotFound}
	case errors.Is(err, common.ErrorValidation):
		return &Error{Message: validationMessage(err), Code: CodeBadUserInput}
	default:
		log.Error(ctx, "operation failed", "op", op, "error", err)
		return &Error{Message: "Internal server error", Code: CodeInternal}
	}
}

// validationMessage drops the sentinel prefix from "validation error: ...".
func validationMessage(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, common.ErrorValidation.Error()+": "); ok {
		return rest
	}
	return msg
}
