package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 用户模块错误 100xx
	ErrUserExists   = 10001
	ErrUserNotFound = 10002
	ErrAuthFailed   = 10003
	ErrTokenInvalid = 10004
	ErrUnauthorized = 10005

	// 动态模块错误 200xx
	ErrEmptyContent  = 20001
	ErrPostNotFound  = 20002
	ErrInvalidParent = 20003
	ErrInvalidTarget = 20004
	ErrDuplicateLike = 20005

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
