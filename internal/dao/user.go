package dao

import (
	"context"

	"spikeboard/internal/model/entity"
)

type UserDao interface {
	// 根据用户名获取user实体
	UserGetByName(ctx context.Context, username string) (entity.User, error)
	// 根据id获取user实体
	UserGetById(ctx context.Context, userId int64) (entity.User, error)
	// 创建用户
	UserCreate(ctx context.Context, user *entity.User) error
	// 更新用户
	UserUpdate(ctx context.Context, user *entity.User) error
	// 更新最近登录ip
	UserUpdateLastLoginIp(ctx context.Context, userId int64, ip string) error
	// 获取是否是管理员用户
	UserGetIsAdministrator(ctx context.Context, userId int64) (isAdministrator bool, err error)

	// 保存配置快照
	SettingsRevisionCreate(ctx context.Context, rev *entity.SettingsRevision) error
	// 查询某用户最近的配置快照
	SettingsRevisionsGet(ctx context.Context, userId int64, limit int) ([]entity.SettingsRevision, error)
}
