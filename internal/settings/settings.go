package settings

import (
	"fmt"

	"spikeboard/internal/condition"
	"spikeboard/internal/template"
)

// 用户options文档的内存形态。内存里messageTemplate一律是friendly形态，
// 序列化下发给后端时才转回technical，转换在codec里做。

// MarketThresholds 单个市场的触发阈值，数值一律存字符串，
// 前端输入框里是什么就存什么，后端自己解析
type MarketThresholds struct {
	Enabled bool   `json:"enabled"`
	Delta   string `json:"delta"`
	Volume  string `json:"volume"`
	Shadow  string `json:"shadow"`
}

// PairSetting 单个交易对的覆盖配置
type PairSetting struct {
	Enabled bool   `json:"enabled"`
	Delta   string `json:"delta,omitempty"`
	Volume  string `json:"volume,omitempty"`
}

// ConditionalTemplate 条件模板：条件全部命中时改用这条消息模板
type ConditionalTemplate struct {
	Name       string
	Enabled    bool
	Conditions []condition.Condition
	Template   string // friendly形态
	ChatID     string
}

// DisplayName 列表展示名，没起名就用序号兜底
func (t ConditionalTemplate) DisplayName(idx int) string {
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("Template #%d", idx+1)
}

// Settings 一个用户的完整配置
type Settings struct {
	Exchanges            map[string]bool
	ExchangeSettings     map[string]map[string]MarketThresholds // exchange -> market -> thresholds
	PairSettings         map[string]PairSetting
	Blacklist            []string
	MessageTemplate      string // friendly形态
	ConditionalTemplates []ConditionalTemplate
	Timezone             string
}

// DefaultMessageTemplate 新用户的初始模板，technical形态
const DefaultMessageTemplate = "{direction} {delta_formatted} {symbol} on {exchange_market}\nVolume: {volume_formatted}\n{time_formatted}"

const DefaultTimezone = "UTC"

func defaultThresholds() MarketThresholds {
	return MarketThresholds{Enabled: true, Delta: "5", Volume: "100000", Shadow: "0"}
}

// Defaults 返回新用户配置：全部交易所开启，spot和futures都用统一阈值
func Defaults() *Settings {
	s := &Settings{
		Exchanges:            make(map[string]bool, len(condition.Exchanges)),
		ExchangeSettings:     make(map[string]map[string]MarketThresholds, len(condition.Exchanges)),
		PairSettings:         make(map[string]PairSetting),
		Blacklist:            []string{},
		MessageTemplate:      template.ToFriendly(DefaultMessageTemplate),
		ConditionalTemplates: []ConditionalTemplate{},
		Timezone:             DefaultTimezone,
	}
	for _, ex := range condition.Exchanges {
		s.Exchanges[ex] = true
		s.ExchangeSettings[ex] = map[string]MarketThresholds{
			"spot":    defaultThresholds(),
			"futures": defaultThresholds(),
		}
	}
	return s
}
