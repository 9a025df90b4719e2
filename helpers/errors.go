package helpers

// AppError carries the HTTP status and the UPPER_SNAKE code rendered in the envelope.
type AppError struct {
	Status int
	Code   string
	Detail string
}

func NewError(status int, code string) *AppError {
	return &AppError{Status: status, Code: code}
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return e.Code + ": " + e.Detail
	}
	return e.Code
}

func (e *AppError) WithDetail(detail string) *AppError {
	return &AppError{Status: e.Status, Code: e.Code, Detail: detail}
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}
