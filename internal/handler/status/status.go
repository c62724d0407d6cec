package status

import (
	"github.com/gin-gonic/gin"

	"spikeboard/internal/service"
	"spikeboard/pkg/response"
)

type StatusHandler struct {
	service service.StatusService
}

func NewStatusHandler(service service.StatusService) *StatusHandler {
	return &StatusHandler{service: service}
}

// @Summary		交易所状态
// @version		1.0
// @description	各交易所采集器的连接状态
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.ExchangesStatusRes}
// @Router			/api/v1/status/exchanges [get]
func (handler *StatusHandler) ExchangesStatus() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := handler.service.ExchangesStatus(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		检测统计
// @version		1.0
// @description	最近的spike检测统计
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.SpikeStatsRes}
// @Router			/api/v1/status/spikes [get]
func (handler *StatusHandler) SpikeStats() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := handler.service.SpikeStats(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
