package settings

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"

	"spikeboard/internal/condition"
	"spikeboard/internal/template"
	"spikeboard/pkg/logger"
	"spikeboard/utils"
)

// options文档的线格式。历史版本五花八门：布尔写成0/1，数字和数字字符串
// 混用，单数condition，缺失的enabled。解析端照单全收，
// 出问题的字段退回默认值，整个文档坏掉才退回Defaults。

type thresholdsBlob struct {
	Enabled interface{} `json:"enabled"`
	Delta   interface{} `json:"delta"`
	Volume  interface{} `json:"volume"`
	Shadow  interface{} `json:"shadow"`
}

type pairBlob struct {
	Enabled *bool       `json:"enabled"`
	Delta   interface{} `json:"delta"`
	Volume  interface{} `json:"volume"`
}

type tplBlob struct {
	Name       string          `json:"name"`
	Enabled    *bool           `json:"enabled"`   // 缺失按true算
	Condition  json.RawMessage `json:"condition"` // 旧版单数写法
	Conditions []condition.Raw `json:"conditions"`
	Template   string          `json:"template"`
	ChatID     interface{}     `json:"chat_id"`
}

type optionsBlob struct {
	Exchanges            map[string]interface{}               `json:"exchanges"`
	ExchangeSettings     map[string]map[string]thresholdsBlob `json:"exchangeSettings"`
	PairSettings         map[string]pairBlob                  `json:"pairSettings"`
	Blacklist            []string                             `json:"blacklist"`
	MessageTemplate      string                               `json:"messageTemplate"`
	ConditionalTemplates []tplBlob                            `json:"conditionalTemplates"`
	Timezone             string                               `json:"timezone"`
}

// numStr 宽容取数字字符串：数字、数字字符串都转成字符串形态，
// 取不出来就用fallback
func numStr(v interface{}, fallback string) string {
	if v == nil {
		return fallback
	}
	switch v.(type) {
	case bool, map[string]interface{}, []interface{}:
		return fallback
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fallback
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	if _, err := cast.ToFloat64E(s); err != nil {
		return fallback
	}
	return s
}

func toBool(v interface{}, fallback bool) bool {
	if v == nil {
		return fallback
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return fallback
	}
	return b
}

// mergeThresholds 把blob里出现的字段盖到base上，没出现的保持base
func mergeThresholds(base MarketThresholds, b thresholdsBlob) MarketThresholds {
	out := base
	out.Enabled = toBool(b.Enabled, base.Enabled)
	out.Delta = numStr(b.Delta, base.Delta)
	out.Volume = numStr(b.Volume, base.Volume)
	out.Shadow = numStr(b.Shadow, base.Shadow)
	return out
}

func parseTemplateText(raw string) string {
	return template.ToFriendly(template.MigrateLegacy(template.ToTechnical(raw)))
}

func parseConditionalTemplate(b tplBlob) ConditionalTemplate {
	t := ConditionalTemplate{
		Name:    strings.TrimSpace(b.Name),
		Enabled: b.Enabled == nil || *b.Enabled,
		ChatID:  strings.TrimSpace(cast.ToString(b.ChatID)),
	}
	raws := b.Conditions
	if len(raws) == 0 && len(b.Condition) > 0 {
		// 旧版只存一个condition，包成数组
		var one condition.Raw
		if err := json.Unmarshal(b.Condition, &one); err == nil {
			raws = []condition.Raw{one}
		}
	}
	t.Conditions = condition.NormalizeAll(raws)
	t.Template = parseTemplateText(b.Template)
	return t
}

// Parse 把后端存的options json解析成内存形态。
// 整个文档解析失败时落回默认配置，单个字段坏了只影响那个字段。
// 模板文本不论存的是friendly还是technical形态，解析结果都一样，
// 所以保存请求里的options也走同一个入口。
func Parse(raw []byte) *Settings {
	s := Defaults()
	if len(raw) == 0 {
		return s
	}
	var blob optionsBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		logger.Warnf("options json无法解析，使用默认配置: %v", err)
		return s
	}
	return merge(s, &blob)
}

// merge 把blob的内容深合并进base。base是完整的默认配置，
// blob里没出现的部分一律保持默认，局部覆盖不影响兄弟字段。
func merge(base *Settings, blob *optionsBlob) *Settings {
	for ex, v := range blob.Exchanges {
		base.Exchanges[ex] = toBool(v, true)
	}
	for ex, markets := range blob.ExchangeSettings {
		if base.ExchangeSettings[ex] == nil {
			base.ExchangeSettings[ex] = make(map[string]MarketThresholds, len(markets))
		}
		for mkt, tb := range markets {
			cur, ok := base.ExchangeSettings[ex][mkt]
			if !ok {
				cur = defaultThresholds()
			}
			base.ExchangeSettings[ex][mkt] = mergeThresholds(cur, tb)
		}
	}
	for pair, pb := range blob.PairSettings {
		pair = strings.ToUpper(strings.TrimSpace(pair))
		if pair == "" {
			continue
		}
		ps := PairSetting{
			// 旧版pairSettings没有enabled字段，缺失按开启算
			Enabled: pb.Enabled == nil || *pb.Enabled,
			Delta:   numStr(pb.Delta, ""),
			Volume:  numStr(pb.Volume, ""),
		}
		base.PairSettings[pair] = ps
	}
	for _, sym := range blob.Blacklist {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym != "" && !utils.ContainsStr(base.Blacklist, sym) {
			base.Blacklist = append(base.Blacklist, sym)
		}
	}
	if strings.TrimSpace(blob.MessageTemplate) != "" {
		base.MessageTemplate = parseTemplateText(blob.MessageTemplate)
	}
	for _, tb := range blob.ConditionalTemplates {
		base.ConditionalTemplates = append(base.ConditionalTemplates, parseConditionalTemplate(tb))
	}
	if tz := strings.TrimSpace(blob.Timezone); tz != "" {
		base.Timezone = tz
	}
	return base
}

// 序列化用的出口结构，和解析端分开，出口类型是确定的
type tplOut struct {
	Name       string                `json:"name,omitempty"`
	Enabled    *bool                 `json:"enabled,omitempty"` // 只在false时写出
	Conditions []condition.Condition `json:"conditions"`
	Template   string                `json:"template"`
	ChatID     string                `json:"chat_id,omitempty"`
}

type pairOut struct {
	Enabled *bool  `json:"enabled,omitempty"` // 只在false时写出
	Delta   string `json:"delta,omitempty"`
	Volume  string `json:"volume,omitempty"`
}

type optionsOut struct {
	Exchanges            map[string]bool                        `json:"exchanges"`
	ExchangeSettings     map[string]map[string]MarketThresholds `json:"exchangeSettings"`
	PairSettings         map[string]pairOut                     `json:"pairSettings,omitempty"`
	Blacklist            []string                               `json:"blacklist"`
	MessageTemplate      string                                 `json:"messageTemplate"`
	ConditionalTemplates []tplOut                               `json:"conditionalTemplates,omitempty"`
	Timezone             string                                 `json:"timezone"`
}

var boolFalse = false

// Serialize 把内存形态转回options json下发给后端。
// 模板转technical形态，enabled为true时省略，blacklist永远是数组不是null。
func Serialize(s *Settings) ([]byte, error) {
	out := optionsOut{
		Exchanges:        s.Exchanges,
		ExchangeSettings: s.ExchangeSettings,
		Blacklist:        s.Blacklist,
		MessageTemplate:  template.ToTechnical(s.MessageTemplate),
		Timezone:         s.Timezone,
	}
	if out.Blacklist == nil {
		out.Blacklist = []string{}
	}
	if len(s.PairSettings) > 0 {
		out.PairSettings = make(map[string]pairOut, len(s.PairSettings))
		for pair, ps := range s.PairSettings {
			po := pairOut{Delta: ps.Delta, Volume: ps.Volume}
			if !ps.Enabled {
				po.Enabled = &boolFalse
			}
			out.PairSettings[pair] = po
		}
	}
	for _, t := range s.ConditionalTemplates {
		to := tplOut{
			Name:       t.Name,
			Conditions: t.Conditions,
			Template:   template.ToTechnical(t.Template),
			ChatID:     t.ChatID,
		}
		if to.Conditions == nil {
			to.Conditions = []condition.Condition{}
		}
		if !t.Enabled {
			to.Enabled = &boolFalse
		}
		out.ConditionalTemplates = append(out.ConditionalTemplates, to)
	}
	return json.Marshal(out)
}
