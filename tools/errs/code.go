package errs

// 认证 11xx / 持久化 12xx / 资源 13xx
const (
	ServerInternalError = 500

	AuthFailedError   = 1101
	TokenExpiredError = 1102

	PersistenceError = 1201

	RecordNotFoundError = 1301
)

var (
	ErrAuthFailed     = NewCodeError(AuthFailedError, "authentication failed")
	ErrTokenExpired   = NewCodeError(TokenExpiredError, "token expired")
	ErrPersistence    = NewCodeError(PersistenceError, "persistence failed")
	ErrRecordNotFound = NewCodeError(RecordNotFoundError, "record not found")
	ErrInternal       = NewCodeError(ServerInternalError, "server internal error")
)
