package backend

import "github.com/goccy/go-json"

// 后端screener服务的线格式。options_json是不透明字符串，
// 解析交给settings包，这里只做搬运。

// UserRecord 后端保存的一条用户配置
type UserRecord struct {
	User        string `json:"user"`
	TgToken     string `json:"tg_token"`
	ChatID      string `json:"chat_id"`
	OptionsJSON string `json:"options_json"`
}

// ErrorDetail 后端的错误响应体
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// ExchangeStatus 各交易所采集器的运行状态，结构由后端定义，原样透传
type ExchangeStatus struct {
	Exchange  string          `json:"exchange"`
	Connected bool            `json:"connected"`
	Markets   json.RawMessage `json:"markets,omitempty"`
	UpdatedAt int64           `json:"updated_at"`
}

// SpikeStats 最近检测统计，原样透传给前端
type SpikeStats struct {
	Total    int64           `json:"total"`
	LastHour int64           `json:"last_hour"`
	Recent   json.RawMessage `json:"recent,omitempty"`
}
