package httpx

import (
	"context"
	"errors"

	"github.com/carcarepro/carcare-ui/internal/api"
	apperrors "github.com/carcarepro/carcare-ui/internal/errors"
)

// formError is the presentation of a failed form submission: an overall
// message plus optional field-level errors.
type formError struct {
	Message string
	Fields  map[string]string
}

// presentFormError maps service and backend errors onto what the form
// shows. Backend detail messages surface verbatim; everything else gets
// a generic message so internals never leak into the page.
func presentFormError(err error) formError {
	if err == nil {
		return formError{}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return formError{Message: "Request timed out. Please try again."}
	}
	if errors.Is(err, context.Canceled) {
		return formError{Message: "Request was canceled."}
	}

	if apperrors.IsValidation(err) {
		if field := apperrors.GetField(err); field != "" {
			return formError{
				Message: errMsgFixBelow,
				Fields:  map[string]string{field: validationMessage(err)},
			}
		}
		return formError{Message: validationMessage(err)}
	}

	if detail := api.Detail(err); detail != "" {
		return formError{Message: detail}
	}

	return formError{Message: "An error occurred. Please try again."}
}

// validationMessage unwraps the AppError message without the code prefix.
func validationMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
