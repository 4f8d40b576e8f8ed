package xe

import "github.com/go-orz/orz"

var (
	ErrInvalidParams        = orz.NewError(10400, "Invalid parameters")
	ErrInvalidToken         = orz.NewError(10403, "Invalid or expired token")
	ErrPermissionDenied     = orz.NewError(10401, "You do not have permission to access this data")
	ErrNotFound             = orz.NewError(10404, "Record not found")
	ErrAccountAlreadyUsed   = orz.NewError(10000, "Email is already registered")
	ErrIncorrectPassword    = orz.NewError(10001, "Invalid email or password")
	ErrPasswordMismatch     = orz.NewError(10002, "Passwords do not match")
	ErrIncorrectOldPassword = orz.NewError(10003, "Current password is incorrect")
	ErrInvalidAuthCode      = orz.NewError(10005, "Could not verify email")
	ErrInvalidViewMode      = orz.NewError(10011, "Unknown view mode")
	ErrInvalidTimezone      = orz.NewError(10012, "Unknown timezone")
)
