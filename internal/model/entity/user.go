package entity

import (
	"spikeboard/utils"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

// 面板的操作员账号，和screener后端的user标识一一对应
type User struct {
	Id              int64                 `gorm:"column:id;primary_key;" json:"id"`
	Username        string                `gorm:"column:username;not null;unique" json:"username"` // unique 用户名唯一且不能为空
	Password        string                `gorm:"column:password" json:"password"`                 // bcrypt哈希
	IsActive        bool                  `gorm:"column:is_active" json:"is_active"`
	IsAdministrator bool                  `gorm:"column:is_administrator;default:false" json:"is_administrator"` // 是否为管理员
	LastLoginIp     string                `gorm:"column:last_login_ip" json:"last_login_ip"`
	CreatedAt       utils.JsonTime        `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       utils.JsonTime        `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt       utils.JsonTime        `gorm:"column:deleted_at" json:"deleted_at"`
	IsDel           soft_delete.DeletedAt `gorm:"softDelete:flag,DeletedAtField:DeletedAt"`
}

func (User) TableName() string {
	return "user"
}

// 每次保存配置时记一条快照，出问题可以回滚对比
type SettingsRevision struct {
	Id        int64          `gorm:"column:id;primary_key;" json:"id"`
	UserId    int64          `gorm:"column:user_id;index" json:"user_id"`
	Snapshot  datatypes.JSON `gorm:"column:snapshot" json:"snapshot"` // 下发给后端的options json原文
	CreatedAt utils.JsonTime `gorm:"column:created_at" json:"created_at"`
}

func (SettingsRevision) TableName() string {
	return "settings_revision"
}
