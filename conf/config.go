package conf

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

// 配置加载（监控后端地址、数据库、redis等）

// BackendConfig 监控后端（spike screener）的HTTP配置
type BackendConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`     // 单次请求超时
	MaxRetries int           `yaml:"max-retries"` // 失败重试次数
}

type Db struct {
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

// RedisConfig is used to configure redis
type RedisConfig struct {
	Addr         string `yaml:"address"`
	Password     string `yaml:"password"`
	Db           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool-size"`
	MinIdleConns int    `yaml:"min-idle-conns"`
	IdleTimeout  int    `yaml:"idle-timeout"`
}

type JwtConfig struct {
	Secret                  string `yaml:"secret"`
	JwtTtl                  int64  `yaml:"ttl"`              // token 有效期（秒）
	JwtBlacklistGracePeriod int64  `yaml:"blacklistperiod" ` // 黑名单宽限时间（秒）
}

// AdminConfig 初始管理员账号，首次启动时自动创建
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// CacheTTLConfig 代理数据的缓存时间
type CacheTTLConfig struct {
	Settings int `yaml:"settings"` // 用户设置缓存（秒）
	Status   int `yaml:"status"`   // 交易所状态缓存（秒）
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`
	ExternalURL  string `yaml:"external_url"`

	Backend  BackendConfig  `yaml:"backend"`
	Db       `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Jwt      JwtConfig      `yaml:"jwt"`
	Admin    AdminConfig    `yaml:"admin"`
	Redis    RedisConfig    `yaml:"redis"`
	CacheTTL CacheTTLConfig `yaml:"cache-ttl"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	// 后端地址兜底，留空时默认连本机的screener
	if AppConfig.Backend.BaseURL == "" {
		AppConfig.Backend.BaseURL = "http://127.0.0.1:8000"
	}
	if AppConfig.Backend.Timeout <= 0 {
		AppConfig.Backend.Timeout = 10 * time.Second
	}
	if AppConfig.Backend.MaxRetries <= 0 {
		AppConfig.Backend.MaxRetries = 3
	}
	return nil
}
