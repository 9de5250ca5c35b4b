package errors

type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string {
	return e.msg
}

// IsNotFound reports that the error should surface as a missing resource
func (e *NotFoundError) IsNotFound() bool {
	return true
}

func NewNotFoundError(text string) error {
	return &NotFoundError{text}
}
