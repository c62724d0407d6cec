package ecode

// 业务错误码，0表示成功，非0为失败
const (
	Success = 0
	Unknown = 10001
	// 请求参数错误
	ValidateErr = 10002
	// token鉴权失败
	RequireAuthErr = 10003
	// 资源不存在
	NotFoundErr = 10004
	// 监控后端不可用或返回错误
	BackendErr = 10005
	// 请求过于频繁
	TooManyRequestErr = 10006
)
