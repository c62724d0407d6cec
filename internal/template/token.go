package template

import (
	"strings"
)

// 占位符表：technical key是后端发消息时替换的键，永远不能改；
// friendly label是编辑界面展示的文案，可以随版本调整。
// 两边必须一一对应，转换是纯文本整体替换。

type Token struct {
	Key   string // 存储和下发给后端的technical key
	Label string // 编辑态展示的friendly label，带方括号
}

var Tokens = []Token{
	{Key: "{delta_formatted}", Label: "[Spike delta]"},
	{Key: "{direction}", Label: "[Direction]"},
	{Key: "{exchange_market}", Label: "[Exchange and market]"},
	{Key: "{symbol}", Label: "[Symbol]"},
	{Key: "{volume_formatted}", Label: "[Volume]"},
	{Key: "{shadow_formatted}", Label: "[Wick %]"},
	{Key: "{time_formatted}", Label: "[Detection time]"},
	{Key: "{timestamp}", Label: "[Timestamp]"},
}

var (
	toFriendlyRepl  *strings.Replacer
	toTechnicalRepl *strings.Replacer
	labelByKey      map[string]string
	keyByLabel      map[string]string
)

func init() {
	labelByKey = make(map[string]string, len(Tokens))
	keyByLabel = make(map[string]string, len(Tokens))
	f := make([]string, 0, len(Tokens)*2)
	t := make([]string, 0, len(Tokens)*2)
	for _, tok := range Tokens {
		labelByKey[tok.Key] = tok.Label
		keyByLabel[tok.Label] = tok.Key
		f = append(f, tok.Key, tok.Label)
		t = append(t, tok.Label, tok.Key)
	}
	// strings.Replacer做字面量整体替换，不涉及正则转义问题
	toFriendlyRepl = strings.NewReplacer(f...)
	toTechnicalRepl = strings.NewReplacer(t...)
}

// ToFriendly 把technical形态的模板转为编辑态，未知文本原样保留
func ToFriendly(technical string) string {
	return toFriendlyRepl.Replace(technical)
}

// ToTechnical 把编辑态模板转回technical形态，未知文本原样保留
func ToTechnical(friendly string) string {
	return toTechnicalRepl.Replace(friendly)
}

// LabelOf 返回technical key对应的friendly label，查不到返回空串
func LabelOf(key string) string {
	return labelByKey[key]
}

// KeyOf 返回friendly label对应的technical key，查不到返回空串
func KeyOf(label string) string {
	return keyByLabel[label]
}

// 旧版模板里交易所和市场是两个独立占位符，成交量也用过旧写法，
// 加载时一次性改写成现在的合并占位符。只在加载方向做，保存不再回写旧键。
var legacyRepl = strings.NewReplacer(
	"{exchange} {market}", "{exchange_market}",
	"{exchange}", "{exchange_market}",
	" {market}", "",
	"{market}", "",
	"{volume} USDT", "{volume_formatted}",
	"{volume}", "{volume_formatted}",
)

// MigrateLegacy 把废弃的旧占位符改写成当前键，幂等
func MigrateLegacy(technical string) string {
	return legacyRepl.Replace(technical)
}

// Render 按technical key做样例替换，用于消息预览。
// vars的键是technical key本身（如"{symbol}"），未提供的键保持原样。
func Render(technical string, vars map[string]string) string {
	if len(vars) == 0 {
		return technical
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		if _, known := labelByKey[k]; !known {
			continue
		}
		pairs = append(pairs, k, v)
	}
	if len(pairs) == 0 {
		return technical
	}
	return strings.NewReplacer(pairs...).Replace(technical)
}
