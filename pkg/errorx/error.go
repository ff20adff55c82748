package errorx

import "fmt"

// Error carries a stable numeric code and a message which is safe to show to
// clients. Internal details must be logged, never put in Message.
type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}
