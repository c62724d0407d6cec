package consts

import "time"

const (
	// RequestId 请求id名称
	RequestId   = "request_id"
	UserID      = "user_id"
	JWTTokenCtx = "token_ctx"

	// redis缓存key前缀
	SettingsCachePrefix = "Dash_Settings:"
	StatusCachePrefix   = "Dash_Status:"
	SpikeStatsCacheKey  = "Dash_Spike_Stats"

	// 默认redis过期时间
	RedisExrDefault = time.Hour * 24

	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)
