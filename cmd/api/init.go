package api

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"spikeboard/conf"
	"spikeboard/internal/backend"
	"spikeboard/internal/dao/query"
	settingsHandler "spikeboard/internal/handler/settings"
	statusHandler "spikeboard/internal/handler/status"
	userHandler "spikeboard/internal/handler/user"
	"spikeboard/internal/router"
	"spikeboard/internal/service"
	"spikeboard/pkg/logger"
)

// EnsureAdmin 按配置创建初始管理员账号，已存在或未配置就跳过。
// 没有这一步，全新部署的库里没有任何账号，登录入口进不去
func EnsureAdmin(db *gorm.DB) {
	admin := conf.AppConfig.Admin
	if admin.Username == "" || admin.Password == "" {
		return
	}
	ud := query.NewUserDao(db)
	existing, err := ud.UserGetByName(context.Background(), admin.Username)
	if err != nil {
		log.Fatalf("admin account check failed: %v", err)
	}
	if existing.Id != 0 {
		return
	}
	us := service.NewUserService(ud)
	if _, err := us.UserCreate(context.Background(), admin.Username, admin.Password, true); err != nil {
		log.Fatalf("admin account seed failed: %v", err)
	}
	logger.Infof("已创建初始管理员账号: %s", admin.Username)
}

func InitRouter(db *gorm.DB) Router {
	appCfg := conf.AppConfig

	bc, err := backend.NewClient(appCfg.Backend.BaseURL, appCfg.Backend.Timeout, appCfg.Backend.MaxRetries)
	if err != nil {
		log.Fatalf("backend client init failed: %v", err)
	}

	ud := query.NewUserDao(db)

	us := service.NewUserService(ud)
	ss := service.NewSettingsService(bc, ud)
	sts := service.NewStatusService(bc)

	uh := userHandler.NewUserHandler(us)
	sh := settingsHandler.NewSettingsHandler(ss)
	th := statusHandler.NewStatusHandler(sts)
	wh := statusHandler.NewWsHandler(sts, time.Duration(appCfg.CacheTTL.Status)*time.Second)

	// 开始广播状态
	go wh.BroadcastStatus(context.Background())

	return router.NewApiRouter(uh, sh, th, wh)
}
