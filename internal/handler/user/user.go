package user

import (
	"github.com/gin-gonic/gin"

	"spikeboard/internal/consts"
	"spikeboard/internal/model"
	"spikeboard/internal/service"
	"spikeboard/pkg/errors"
	"spikeboard/pkg/errors/ecode"
	"spikeboard/pkg/response"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// @Summary		用户登录
// @version		1.0
// @description	账号密码登录，返回jwt token
// @Accept			json
// @Produce		json
// @Success		200	{object}	response.ApiResponse{data=model.UserLoginRes}
// @Router			/api/v1/auth/login [post]
func (handler *UserHandler) UserLogin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.UserLoginReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, err.Error()), nil)
			return
		}
		res, err := handler.service.UserLogin(ctx, req.Username, req.Password)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		用户登出
// @version		1.0
// @description	当前token加入黑名单
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/auth/logout [get]
func (handler *UserHandler) UserLogout() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenStr := ctx.GetString(consts.JWTTokenCtx)
		if err := handler.service.UserLogout(ctx, tokenStr); err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "登出失败"), nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}

// @Summary		创建账号
// @version		1.0
// @description	管理员创建操作员账号
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.UserInfo}
// @Router			/api/v1/user [post]
func (handler *UserHandler) UserCreate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.UserCreateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, err.Error()), nil)
			return
		}
		res, err := handler.service.UserRegister(ctx, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		修改密码
// @version		1.0
// @description	验证原密码后更新当前用户的密码
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/user/password [post]
func (handler *UserHandler) UserPasswordChange() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.UserPasswordReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, err.Error()), nil)
			return
		}
		if err := handler.service.UserPasswordChange(ctx, req.OldPassword, req.NewPassword); err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}

// @Summary		刷新token
// @version		1.0
// @description	签发新token并作废当前token
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.UserLoginRes}
// @Router			/api/v1/auth/refresh [get]
func (handler *UserHandler) UserRefresh() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := handler.service.UserRefresh(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
