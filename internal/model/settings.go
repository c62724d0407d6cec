package model

import (
	"github.com/goccy/go-json"

	"spikeboard/internal/condition"
	"spikeboard/internal/settings"
	"spikeboard/utils"
)

// SettingsGetRes 返回给前端的完整配置视图。模板给两种形态：
// friendly给纯文本编辑，markup给富文本编辑器直接注入
type SettingsGetRes struct {
	TgToken          string                                          `json:"tg_token"`
	ChatId           string                                          `json:"chat_id"`
	Exchanges        map[string]bool                                 `json:"exchanges"`
	ExchangeSettings map[string]map[string]settings.MarketThresholds `json:"exchangeSettings"`
	PairSettings     map[string]settings.PairSetting                 `json:"pairSettings"`
	Blacklist        []string                                        `json:"blacklist"`
	MessageTemplate  string                                          `json:"messageTemplate"`
	TemplateMarkup   string                                          `json:"templateMarkup"`
	Templates        []ConditionalTemplateView                       `json:"conditionalTemplates"`
	Timezone         string                                          `json:"timezone"`
}

// ConditionalTemplateView 条件模板的列表视图，带人读的条件摘要
type ConditionalTemplateView struct {
	DisplayName    string                `json:"display_name"`
	Name           string                `json:"name,omitempty"`
	Enabled        bool                  `json:"enabled"`
	Conditions     []condition.Condition `json:"conditions"`
	Summary        string                `json:"summary"`
	Template       string                `json:"template"`
	TemplateMarkup string                `json:"templateMarkup"`
	ChatId         string                `json:"chat_id,omitempty"`
}

// SettingsSaveReq 保存请求。options是前端攒出来的文档，
// 字段形态不可信，走和后端存档一样的宽容解析
type SettingsSaveReq struct {
	TgToken string          `json:"tg_token" validate:"required" label:"机器人token"`
	ChatId  string          `json:"chat_id" validate:"required" label:"会话id"`
	Options json.RawMessage `json:"options" validate:"required" label:"配置"`
}

type TemplatePreviewReq struct {
	Template string `json:"template" validate:"required" label:"消息模板"`
	Markup   bool   `json:"markup"`   // template字段是否为编辑器HTML形态
	Timezone string `json:"timezone"` // 预览时间用的时区，留空取已保存配置
}

type TemplatePreviewRes struct {
	Technical string `json:"technical"`
	Friendly  string `json:"friendly"`
	Markup    string `json:"markup"`
	Preview   string `json:"preview"` // 用样例数据渲染后的消息
}

// SettingsRevisionView 历史快照的列表视图，snapshot是当时下发的options原文
type SettingsRevisionView struct {
	Id        int64           `json:"id"`
	Snapshot  json.RawMessage `json:"snapshot"`
	CreatedAt utils.JsonTime  `json:"created_at"`
}

type SettingsRevisionsRes struct {
	Revisions []SettingsRevisionView `json:"revisions"`
}

type ConditionsDescribeReq struct {
	Conditions []condition.Raw `json:"conditions" validate:"required" label:"条件列表"`
}

type ConditionsDescribeRes struct {
	Conditions []condition.Condition `json:"conditions"` // 归一化后的条件
	Summary    string                `json:"summary"`
}
