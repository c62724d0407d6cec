package query

import (
	"context"

	"gorm.io/gorm"

	"spikeboard/internal/dao"
	"spikeboard/internal/model/entity"
	"spikeboard/pkg/errors"
	"spikeboard/pkg/errors/ecode"
)

var _ dao.UserDao = (*userDao)(nil)

type userDao struct {
	ds *gorm.DB
}

func NewUserDao(ds *gorm.DB) *userDao {
	return &userDao{
		ds: ds,
	}
}

func (u *userDao) UserGetByName(ctx context.Context, username string) (entity.User, error) {
	var user entity.User
	err := u.ds.WithContext(ctx).Model(&entity.User{}).Where("username = ?", username).Find(&user).Error
	return user, err
}

func (u *userDao) UserGetById(ctx context.Context, userId int64) (entity.User, error) {
	var user entity.User
	err := u.ds.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userId).Find(&user).Error
	return user, err
}

func (u *userDao) UserCreate(ctx context.Context, user *entity.User) error {
	var existingUser entity.User
	// 数据库的唯一约束挡不住并发插入同名用户的竞态，先查一遍
	err := u.ds.WithContext(ctx).Where("username = ?", user.Username).First(&existingUser).Error
	if err == nil {
		return errors.WithCodef(ecode.ValidateErr, "用户名已存在: %s", user.Username)
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return u.ds.WithContext(ctx).Create(user).Error
}

func (u *userDao) UserUpdate(ctx context.Context, user *entity.User) error {
	return u.ds.WithContext(ctx).Updates(user).Error
}

func (u *userDao) UserUpdateLastLoginIp(ctx context.Context, userId int64, ip string) error {
	return u.ds.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userId).Update("last_login_ip", ip).Error
}

func (u *userDao) UserGetIsAdministrator(ctx context.Context, userId int64) (isAdministrator bool, err error) {
	err = u.ds.WithContext(ctx).Model(entity.User{}).Where("id = ?", userId).Select("is_administrator").Find(&isAdministrator).Error
	return
}

func (u *userDao) SettingsRevisionCreate(ctx context.Context, rev *entity.SettingsRevision) error {
	return u.ds.WithContext(ctx).Create(rev).Error
}

func (u *userDao) SettingsRevisionsGet(ctx context.Context, userId int64, limit int) ([]entity.SettingsRevision, error) {
	var revs []entity.SettingsRevision
	err := u.ds.WithContext(ctx).Model(&entity.SettingsRevision{}).Where("user_id = ?", userId).Order("id desc").Limit(limit).Find(&revs).Error
	return revs, err
}
