package settings

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"spikeboard/internal/condition"
)

func TestParseEmptyAndInvalid(t *testing.T) {
	def := Defaults()
	for _, raw := range [][]byte{nil, []byte(""), []byte("not json{"), []byte("[1,2,3]")} {
		s := Parse(raw)
		if len(s.Exchanges) != len(def.Exchanges) {
			t.Errorf("Parse(%q): exchanges = %d, want defaults", raw, len(s.Exchanges))
		}
		if s.MessageTemplate != def.MessageTemplate {
			t.Errorf("Parse(%q): template = %q", raw, s.MessageTemplate)
		}
		if s.Blacklist == nil {
			t.Errorf("Parse(%q): blacklist is nil", raw)
		}
	}
}

func TestParsePartialMergePreservesSiblings(t *testing.T) {
	// 只覆盖binance spot的delta，其余一切保持默认
	raw := []byte(`{"exchangeSettings":{"binance":{"spot":{"delta":"8"}}}}`)
	s := Parse(raw)

	got := s.ExchangeSettings["binance"]["spot"]
	if got.Delta != "8" {
		t.Errorf("binance spot delta = %q, want 8", got.Delta)
	}
	if got.Volume != "100000" || got.Shadow != "0" || !got.Enabled {
		t.Errorf("binance spot siblings changed: %+v", got)
	}
	if fut := s.ExchangeSettings["binance"]["futures"]; fut.Delta != "5" {
		t.Errorf("binance futures touched: %+v", fut)
	}
	if by := s.ExchangeSettings["bybit"]["spot"]; by.Delta != "5" {
		t.Errorf("bybit touched: %+v", by)
	}
}

func TestParseTolerantValues(t *testing.T) {
	raw := []byte(`{
		"exchanges": {"binance": 0, "bybit": "true"},
		"exchangeSettings": {"okx": {"spot": {"enabled": 1, "delta": 7, "volume": "abc"}}},
		"pairSettings": {" btcusdt ": {"delta": 3}},
		"timezone": " Europe/Moscow "
	}`)
	s := Parse(raw)

	if s.Exchanges["binance"] {
		t.Error("binance should be disabled by 0")
	}
	if !s.Exchanges["bybit"] {
		t.Error("bybit should be enabled by \"true\"")
	}
	okx := s.ExchangeSettings["okx"]["spot"]
	if !okx.Enabled || okx.Delta != "7" {
		t.Errorf("okx spot = %+v", okx)
	}
	// 坏数字退回默认
	if okx.Volume != "100000" {
		t.Errorf("okx volume = %q, want default", okx.Volume)
	}
	ps, ok := s.PairSettings["BTCUSDT"]
	if !ok {
		t.Fatalf("pair key not normalized: %v", s.PairSettings)
	}
	// 缺失enabled注入true
	if !ps.Enabled || ps.Delta != "3" {
		t.Errorf("pair setting = %+v", ps)
	}
	if s.Timezone != "Europe/Moscow" {
		t.Errorf("timezone = %q", s.Timezone)
	}
}

func TestParseTemplateForms(t *testing.T) {
	// 存档里是technical形态
	s := Parse([]byte(`{"messageTemplate":"Spike {symbol}"}`))
	if s.MessageTemplate != "Spike [Symbol]" {
		t.Errorf("from technical = %q", s.MessageTemplate)
	}
	// 保存请求里可能已经是friendly形态，解析结果必须一致
	s = Parse([]byte(`{"messageTemplate":"Spike [Symbol]"}`))
	if s.MessageTemplate != "Spike [Symbol]" {
		t.Errorf("from friendly = %q", s.MessageTemplate)
	}
	// 旧占位符迁移
	s = Parse([]byte(`{"messageTemplate":"{exchange} {market}: {volume} USDT"}`))
	if s.MessageTemplate != "[Exchange and market]: [Volume]" {
		t.Errorf("legacy migrated = %q", s.MessageTemplate)
	}
}

func TestParseConditionalTemplates(t *testing.T) {
	raw := []byte(`{"conditionalTemplates": [
		{"name": "big", "conditions": [{"type": "delta", "value": 7}], "template": "{symbol} big move", "chat_id": 123456},
		{"enabled": false, "condition": {"type": "volume", "valueMin": 50000}, "template": "old style"}
	]}`)
	s := Parse(raw)
	if len(s.ConditionalTemplates) != 2 {
		t.Fatalf("templates = %d", len(s.ConditionalTemplates))
	}

	first := s.ConditionalTemplates[0]
	if !first.Enabled {
		t.Error("missing enabled should default to true")
	}
	if first.ChatID != "123456" {
		t.Errorf("chat_id = %q", first.ChatID)
	}
	if len(first.Conditions) != 1 || first.Conditions[0].ValueMin != 7 {
		t.Errorf("conditions = %+v", first.Conditions)
	}
	if first.Template != "[Symbol] big move" {
		t.Errorf("template = %q", first.Template)
	}
	if first.DisplayName(0) != "big" {
		t.Errorf("display name = %q", first.DisplayName(0))
	}

	second := s.ConditionalTemplates[1]
	if second.Enabled {
		t.Error("explicit false must stay false")
	}
	// 单数condition包成数组
	if len(second.Conditions) != 1 || second.Conditions[0].Type != condition.TypeVolume {
		t.Errorf("legacy condition = %+v", second.Conditions)
	}
	if second.DisplayName(1) != "Template #2" {
		t.Errorf("fallback display name = %q", second.DisplayName(1))
	}
}

func TestParseBlacklistNormalized(t *testing.T) {
	s := Parse([]byte(`{"blacklist": [" btcusdt", "ETHUSDT", "btcusdt", ""]}`))
	if len(s.Blacklist) != 2 {
		t.Fatalf("blacklist = %v", s.Blacklist)
	}
	if s.Blacklist[0] != "BTCUSDT" || s.Blacklist[1] != "ETHUSDT" {
		t.Errorf("blacklist = %v", s.Blacklist)
	}
}

func TestSerializeMinimalShape(t *testing.T) {
	s := Defaults()
	s.PairSettings["BTCUSDT"] = PairSetting{Enabled: true, Delta: "3"}
	s.PairSettings["ETHUSDT"] = PairSetting{Enabled: false}
	s.ConditionalTemplates = []ConditionalTemplate{
		{Name: "big", Enabled: true, Template: "[Symbol] pump", Conditions: []condition.Condition{
			condition.Normalize(condition.Raw{Type: "delta", ValueMin: 7}),
		}},
		{Enabled: false, Template: "quiet"},
	}

	b, err := Serialize(s)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)

	// 模板转回technical形态
	if !strings.Contains(out, `{symbol} pump`) {
		t.Errorf("template not technical: %s", out)
	}
	if strings.Contains(out, "[Symbol]") {
		t.Errorf("friendly label leaked: %s", out)
	}
	// enabled只在false时出现
	var round map[string]interface{}
	if err := json.Unmarshal(b, &round); err != nil {
		t.Fatal(err)
	}
	pairs := round["pairSettings"].(map[string]interface{})
	if _, has := pairs["BTCUSDT"].(map[string]interface{})["enabled"]; has {
		t.Error("enabled:true should be omitted for pairs")
	}
	if en := pairs["ETHUSDT"].(map[string]interface{})["enabled"]; en != false {
		t.Errorf("ETHUSDT enabled = %v", en)
	}
	tpls := round["conditionalTemplates"].([]interface{})
	if _, has := tpls[0].(map[string]interface{})["enabled"]; has {
		t.Error("enabled:true should be omitted for templates")
	}
	if en := tpls[1].(map[string]interface{})["enabled"]; en != false {
		t.Errorf("second template enabled = %v", en)
	}
}

func TestSerializeBlacklistNeverNull(t *testing.T) {
	s := Defaults()
	s.Blacklist = nil
	b, err := Serialize(s)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"blacklist":[]`) {
		t.Errorf("blacklist must be [], got: %s", b)
	}
	if strings.Contains(string(b), `"blacklist":null`) {
		t.Errorf("blacklist serialized as null: %s", b)
	}
}

func TestParseSerializeRoundTrip(t *testing.T) {
	raw := []byte(`{
		"exchanges": {"gate": false},
		"exchangeSettings": {"binance": {"futures": {"delta": "9", "enabled": false}}},
		"blacklist": ["DOGEUSDT"],
		"messageTemplate": "{direction} {delta_formatted} {symbol}",
		"timezone": "Asia/Shanghai"
	}`)
	first := Parse(raw)
	b, err := Serialize(first)
	if err != nil {
		t.Fatal(err)
	}
	second := Parse(b)

	if second.Exchanges["gate"] || !second.Exchanges["binance"] {
		t.Errorf("exchanges lost: %v", second.Exchanges)
	}
	fut := second.ExchangeSettings["binance"]["futures"]
	if fut.Delta != "9" || fut.Enabled {
		t.Errorf("futures lost: %+v", fut)
	}
	if second.MessageTemplate != first.MessageTemplate {
		t.Errorf("template drifted: %q vs %q", second.MessageTemplate, first.MessageTemplate)
	}
	if second.Timezone != "Asia/Shanghai" {
		t.Errorf("timezone = %q", second.Timezone)
	}
	if len(second.Blacklist) != 1 || second.Blacklist[0] != "DOGEUSDT" {
		t.Errorf("blacklist = %v", second.Blacklist)
	}
}
