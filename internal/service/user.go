package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"spikeboard/conf"
	"spikeboard/internal/consts"
	"spikeboard/internal/dao"
	"spikeboard/internal/model"
	"spikeboard/internal/model/entity"
	"spikeboard/pkg/errors"
	"spikeboard/pkg/errors/ecode"
	"spikeboard/pkg/jwt"
	"spikeboard/pkg/logger"
	"spikeboard/utils/uuid"
)

type UserService interface {
	UserLogin(ctx *gin.Context, username, password string) (res model.UserLoginRes, err error)
	UserLogout(ctx context.Context, tokenStr string) error
	UserRefresh(ctx *gin.Context) (res model.UserLoginRes, err error)
	UserCreate(ctx context.Context, username, password string, isAdministrator bool) (*entity.User, error)
	UserRegister(ctx *gin.Context, req model.UserCreateReq) (model.UserInfo, error)
	UserPasswordChange(ctx *gin.Context, oldPassword, newPassword string) error
}

// userService 实现UserService接口
type userService struct {
	ud   dao.UserDao
	iSrv uuid.SnowNode
}

func NewUserService(ud dao.UserDao) *userService {
	return &userService{
		ud:   ud,
		iSrv: *uuid.NewNode(3),
	}
}

// 给token有效期加一点随机抖动，避免批量登录的token在同一秒集中过期
func tokenTtl() int64 {
	r := rand.New(rand.NewSource(time.Now().Unix()))
	return conf.AppConfig.Jwt.JwtTtl + int64(r.Intn(100)*9)
}

func (u *userService) issueToken(userInfo *entity.User) (res model.UserLoginRes, err error) {
	settime := tokenTtl()
	expireAt := time.Now().Add(time.Duration(settime) * time.Second)
	claims := jwt.BuildClaims(expireAt, userInfo.Id, userInfo.IsAdministrator)
	token, err := jwt.GenToken(claims, conf.AppConfig.Jwt.Secret)
	if err != nil {
		logger.Infof("Jwt Token 生成错误：%s", userInfo.Username)
		return res, err
	}
	res.Token = token
	res.UserId = userInfo.Id
	res.Username = userInfo.Username
	res.IsAdministrator = claims.IsAdministrator()
	res.ExpiredAt = expireAt.Unix()
	return res, nil
}

func (u *userService) UserLogin(ctx *gin.Context, username, password string) (res model.UserLoginRes, err error) {
	userInfo, err := u.ud.UserGetByName(ctx, username)
	if err != nil {
		logger.Infof("查询用户失败:%s", err)
		return res, err
	}
	if username != userInfo.Username {
		logger.Infof("用户不存在: %s", username)
		return res, errors.WithCode(ecode.ValidateErr, "用户名或密码错误")
	}
	if !userInfo.IsActive {
		return res, errors.WithCode(ecode.ValidateErr, "用户未激活")
	}
	if err = bcrypt.CompareHashAndPassword([]byte(userInfo.Password), []byte(password)); err != nil {
		logger.Infof("密码错误：%s", username)
		return res, errors.WithCode(ecode.ValidateErr, "用户名或密码错误")
	}

	res, err = u.issueToken(&userInfo)
	if err != nil {
		return res, err
	}
	ctx.Set(consts.UserID, userInfo.Id)
	if err := u.ud.UserUpdateLastLoginIp(ctx, userInfo.Id, ctx.ClientIP()); err != nil {
		logger.Warnf("更新登录ip失败: %v", err)
	}
	return res, nil
}

func (u *userService) UserLogout(ctx context.Context, tokenStr string) error {
	return jwt.JoinBlackList(ctx, tokenStr, conf.AppConfig.Jwt.Secret)
}

func (u *userService) UserRefresh(ctx *gin.Context) (res model.UserLoginRes, err error) {
	userId := ctx.GetInt64(consts.UserID)
	tokenStr := ctx.GetString(consts.JWTTokenCtx)
	userInfo, err := u.ud.UserGetById(ctx, userId)
	if err != nil {
		logger.Infof("查询用户失败：%s", err)
		return res, err
	}
	if userInfo.Id == 0 {
		logger.Infof("用户不存在：%d", userId)
		return res, errors.WithCodef(ecode.RequireAuthErr, "用户不存在：%d", userId)
	}
	if !userInfo.IsActive {
		return res, errors.WithCode(ecode.RequireAuthErr, "用户未激活")
	}
	res, err = u.issueToken(&userInfo)
	if err != nil {
		return res, err
	}
	// 旧token作废
	if err := jwt.JoinBlackList(ctx, tokenStr, conf.AppConfig.Jwt.Secret); err != nil {
		logger.Infof("加入黑名单失败：%s", userInfo.Username)
	}
	return res, nil
}

// UserCreate 创建操作员账号，启动时的管理员种子和管理端建号都走这里
func (u *userService) UserCreate(ctx context.Context, username, password string, isAdministrator bool) (*entity.User, error) {
	existing, err := u.ud.UserGetByName(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing.Id != 0 {
		return nil, errors.WithCodef(ecode.ValidateErr, "用户名已存在: %s", username)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Id:              u.iSrv.GenSnowID(),
		Username:        username,
		Password:        string(hashed),
		IsActive:        true,
		IsAdministrator: isAdministrator,
	}
	if err := u.ud.UserCreate(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UserRegister 管理员给其他操作员建号，按库里的管理员标记做权限校验
func (u *userService) UserRegister(ctx *gin.Context, req model.UserCreateReq) (res model.UserInfo, err error) {
	isAdmin, err := u.ud.UserGetIsAdministrator(ctx, ctx.GetInt64(consts.UserID))
	if err != nil {
		return res, err
	}
	if !isAdmin {
		return res, errors.WithCode(ecode.RequireAuthErr, "仅管理员可创建账号")
	}
	user, err := u.UserCreate(ctx, req.Username, req.Password, req.IsAdministrator)
	if err != nil {
		return res, err
	}
	res.Id = user.Id
	res.Username = user.Username
	res.IsAdministrator = user.IsAdministrator
	return res, nil
}

// UserPasswordChange 修改当前用户的密码，要先验原密码
func (u *userService) UserPasswordChange(ctx *gin.Context, oldPassword, newPassword string) error {
	userInfo, err := u.ud.UserGetById(ctx, ctx.GetInt64(consts.UserID))
	if err != nil {
		return err
	}
	if userInfo.Id == 0 {
		return errors.WithCode(ecode.RequireAuthErr, "用户不存在")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userInfo.Password), []byte(oldPassword)); err != nil {
		return errors.WithCode(ecode.ValidateErr, "原密码错误")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return u.ud.UserUpdate(ctx, &entity.User{Id: userInfo.Id, Password: string(hashed)})
}
