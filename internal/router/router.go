package router

import (
	"github.com/gin-gonic/gin"

	"spikeboard/internal/handler/settings"
	"spikeboard/internal/handler/status"
	"spikeboard/internal/handler/user"
	"spikeboard/internal/middleware"
)

type ApiRouter struct {
	userHandler     *user.UserHandler
	settingsHandler *settings.SettingsHandler
	statusHandler   *status.StatusHandler
	wsHandler       *status.WsHandler
}

func NewApiRouter(uh *user.UserHandler, sh *settings.SettingsHandler, th *status.StatusHandler, wh *status.WsHandler) *ApiRouter {
	return &ApiRouter{userHandler: uh, settingsHandler: sh, statusHandler: th, wsHandler: wh}
}

func (api *ApiRouter) Load(g *gin.Engine) {

	base := g.Group("/api/v1")

	auth := base.Group("/auth")
	{
		auth.POST("/login", middleware.AntiDuplicateMiddleware(), api.userHandler.UserLogin())
		auth.GET("/logout", middleware.AuthToken(), api.userHandler.UserLogout())
		auth.GET("/refresh", middleware.AuthToken(), api.userHandler.UserRefresh())
	}

	u := base.Group("/user", middleware.AuthToken())
	{
		u.POST("", middleware.AntiDuplicateMiddleware(), api.userHandler.UserCreate())
		u.POST("/password", api.userHandler.UserPasswordChange())
	}

	s := base.Group("/settings", middleware.AuthToken())
	{
		s.GET("", api.settingsHandler.SettingsGet())
		s.POST("", middleware.AntiDuplicateMiddleware(), api.settingsHandler.SettingsSave())
		s.POST("/template/preview", api.settingsHandler.TemplatePreview())
		s.POST("/conditions/describe", api.settingsHandler.ConditionsDescribe())
		s.GET("/revisions", api.settingsHandler.SettingsRevisions())
	}

	st := base.Group("/status", middleware.AuthToken())
	{
		st.GET("/exchanges", api.statusHandler.ExchangesStatus())
		st.GET("/spikes", api.statusHandler.SpikeStats())
		st.GET("/ws", api.wsHandler.ServeWS) // websocket推送状态
	}
}
