package service

type ErrorCode string

const (
	ErrorCodeValidation           ErrorCode = "VALIDATION"
	ErrorCodeNotFound             ErrorCode = "NOT_FOUND"
	ErrorCodeStore                ErrorCode = "STORE_ERROR"
	ErrorCodeInvalidBody          ErrorCode = "INVALID_BODY"
	ErrorCodeConfirmationRequired ErrorCode = "CONFIRMATION_REQUIRED"
	ErrorCodeInvalidState         ErrorCode = "INVALID_STATE"
	ErrorCodeMethodNotAllowed     ErrorCode = "METHOD_NOT_ALLOWED"
	ErrorCodeInternal             ErrorCode = "INTERNAL"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func (e *Error) Error() string {
	return e.Message
}
