package main

import (
	"fmt"
	"log"
	"os"

	"spikeboard/cmd/api"
	"spikeboard/conf"
	"spikeboard/internal/middleware"
	"spikeboard/pkg/cache"
	"spikeboard/pkg/db"
	"spikeboard/pkg/logger"
)

// 面板服务入口：登录鉴权，配置读写代理，状态推送

func main() {

	// 加载配置文件
	err := conf.LoadConfig("conf/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appCfg := conf.AppConfig
	logger.InitLogger(&appCfg.Log, appCfg.AppName)

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	if dbUser == "" || dbPass == "" || dbHost == "" {
		dbUser = conf.AppConfig.Username
		dbPass = conf.AppConfig.Db.Password
		dbHost = conf.AppConfig.Host
		dbPort = conf.AppConfig.Port
		dbName = conf.AppConfig.DbName
	}

	// 初始化数据库
	datasource := db.Init(db.Config{
		User:      dbUser,
		Password:  dbPass,
		Host:      dbHost,
		Port:      dbPort,
		DBName:    dbName,
		ParseTime: true,
	})

	// 初始管理员账号，环境变量优先于配置文件
	if v := os.Getenv("ADMIN_USER"); v != "" {
		conf.AppConfig.Admin.Username = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		conf.AppConfig.Admin.Password = v
	}
	api.EnsureAdmin(datasource)

	redisHost := os.Getenv("REDIS_HOST")
	redisPort := os.Getenv("REDIS_PORT")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisAddr := fmt.Sprintf("%s:%s", redisHost, redisPort)
	if redisHost == "" || redisPort == "" {
		redisAddr = conf.AppConfig.Redis.Addr
	}
	if redisPassword != "" {
		appCfg.Redis.Password = redisPassword
	}
	appCfg.Redis.Addr = redisAddr

	// 初始化redis缓存
	cache.InitRedis(appCfg.Redis)

	// 创建并启动服务
	srv := api.NewServer(&appCfg)
	srv.RegisterOnShutdown(func() {
		if datasource != nil {
			// 关闭主库链接
			m, err := datasource.DB()
			if err == nil {
				_ = m.Close()
			}
		}

		cache.CloseRedis()
	})
	srvRouter := api.InitRouter(datasource)

	srv.Run(middleware.NewMiddleware(), srvRouter)
}
