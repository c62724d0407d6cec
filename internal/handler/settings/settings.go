package settings

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"spikeboard/internal/model"
	"spikeboard/internal/service"
	"spikeboard/pkg/errors"
	"spikeboard/pkg/errors/ecode"
	"spikeboard/pkg/response"
)

type SettingsHandler struct {
	service service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// @Summary		获取配置
// @version		1.0
// @description	当前用户的完整配置视图，后端没存过返回默认配置
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.SettingsGetRes}
// @Router			/api/v1/settings [get]
func (handler *SettingsHandler) SettingsGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := handler.service.SettingsGet(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		保存配置
// @version		1.0
// @description	全量保存配置并返回保存后的视图
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.SettingsGetRes}
// @Router			/api/v1/settings [post]
func (handler *SettingsHandler) SettingsSave() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.SettingsSaveReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, err.Error()), nil)
			return
		}
		res, err := handler.service.SettingsSave(ctx, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		模板预览
// @version		1.0
// @description	模板在friendly、technical、markup三种形态间转换并用样例行情渲染
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.TemplatePreviewRes}
// @Router			/api/v1/settings/template/preview [post]
func (handler *SettingsHandler) TemplatePreview() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.TemplatePreviewReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, err.Error()), nil)
			return
		}
		res, err := handler.service.TemplatePreview(ctx, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		配置快照列表
// @version		1.0
// @description	当前用户最近保存的配置快照，limit默认10最大50
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.SettingsRevisionsRes}
// @Router			/api/v1/settings/revisions [get]
func (handler *SettingsHandler) SettingsRevisions() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		limit := cast.ToInt(ctx.Query("limit"))
		res, err := handler.service.SettingsRevisions(ctx, limit)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		条件摘要
// @version		1.0
// @description	条件列表归一化并生成人读摘要
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.ConditionsDescribeRes}
// @Router			/api/v1/settings/conditions/describe [post]
func (handler *SettingsHandler) ConditionsDescribe() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.ConditionsDescribeReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, err.Error()), nil)
			return
		}
		response.JSON(ctx, nil, handler.service.ConditionsDescribe(req))
	}
}
