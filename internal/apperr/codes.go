package apperr

type Code string

const (
	CodeUnknown     Code = "UNKNOWN"
	CodeValidation  Code = "VALIDATION"
	CodeNotFound    Code = "NOT_FOUND"
	CodeDuplicate   Code = "DUPLICATE"
	CodeForbidden   Code = "FORBIDDEN"
	CodeSchema      Code = "SCHEMA"
	CodeUnavailable Code = "UNAVAILABLE"
	CodeRateLimited Code = "RATE_LIMITED"
)
