package model

// 用户侧的请求和响应结构，validate和label给gin的validator用

type UserLoginReq struct {
	Username string `json:"username" validate:"required,min=2,max=32" label:"用户名"`
	Password string `json:"password" validate:"required,min=6,max=64" label:"密码"`
}

type UserLoginRes struct {
	UserId          int64  `json:"user_id"`
	Username        string `json:"username"`
	IsAdministrator bool   `json:"is_administrator"`
	Token           string `json:"token"`
	ExpiredAt       int64  `json:"expired_at"`
}

type UserInfo struct {
	Id              int64  `json:"id"`
	Username        string `json:"username"`
	IsAdministrator bool   `json:"is_administrator"`
}

// UserCreateReq 管理员创建操作员账号
type UserCreateReq struct {
	Username        string `json:"username" validate:"required,min=2,max=32" label:"用户名"`
	Password        string `json:"password" validate:"required,min=6,max=64" label:"密码"`
	IsAdministrator bool   `json:"is_administrator"`
}

type UserPasswordReq struct {
	OldPassword string `json:"old_password" validate:"required,min=6,max=64" label:"原密码"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=64" label:"新密码"`
}
