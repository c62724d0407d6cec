package condition

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// 条件是带类型标签的变体，normalize后保证每个变体的字段都在合法范围内。
// 输入来自前端和旧版存档，任何字段都可能缺失或类型不对，
// 所以解析一律走cast做宽容转换，坏值退回默认值，绝不panic。

const (
	TypeVolume    = "volume"
	TypeDelta     = "delta"
	TypeWick      = "wick_pct"
	TypeSeries    = "series"
	TypeSymbol    = "symbol"
	TypeExchange  = "exchange"
	TypeMarket    = "market"
	TypeDirection = "direction"
)

var (
	Exchanges  = []string{"binance", "bybit", "okx", "gate", "bitget"}
	Markets    = []string{"spot", "futures", "linear"}
	Directions = []string{"up", "down"}
)

const (
	DefaultSeriesCount  = 2
	DefaultSeriesWindow = 300 // 秒
	MinSeriesCount      = 2
	MinSeriesWindow     = 60
)

// Raw 是反序列化用的松散形态，数值字段先收成interface{}再宽容转换
type Raw struct {
	Type     string      `json:"type"`
	Value    interface{} `json:"value,omitempty"` // 旧版单值写法
	ValueMin interface{} `json:"valueMin,omitempty"`
	ValueMax interface{} `json:"valueMax,omitempty"`
	Count    interface{} `json:"count,omitempty"`
	Window   interface{} `json:"timeWindowSeconds,omitempty"`
	WindowV1 interface{} `json:"window,omitempty"` // 旧版字段名
	Symbol   string      `json:"symbol,omitempty"`
	Exchange string      `json:"exchange,omitempty"`
	Market   string      `json:"market,omitempty"`
	Dir      string      `json:"direction,omitempty"`
}

// Condition 是归一化后的形态。范围型变体用ValueMin/ValueMax，
// ValueMax为nil表示无上界。Count/Window只有series用。
type Condition struct {
	Type     string
	ValueMin float64
	ValueMax *float64
	Count    int
	Window   int
	Symbol   string
	Exchange string
	Market   string
	Dir      string
}

// castFloat 宽容取数：数字、数字字符串都收，其他情况返回fallback
func castFloat(v interface{}, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return fallback
	}
	return f
}

func pickEnum(v string, options []string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, opt := range options {
		if v == opt {
			return opt
		}
	}
	return options[0]
}

// Normalize 把松散输入归一化。未知type按volume处理，
// 已经归一化过的输入再过一遍结果不变。
func Normalize(r Raw) Condition {
	typ := strings.ToLower(strings.TrimSpace(r.Type))
	switch typ {
	case TypeVolume, TypeDelta, TypeWick, TypeSeries, TypeSymbol, TypeExchange, TypeMarket, TypeDirection:
	default:
		typ = TypeVolume
	}

	c := Condition{Type: typ}
	switch typ {
	case TypeVolume, TypeDelta, TypeWick:
		// 旧版把阈值写在value里，迁移成valueMin。取不出数就归0
		min := r.ValueMin
		if min == nil {
			min = r.Value
		}
		c.ValueMin = castFloat(min, 0)
		if c.ValueMin < 0 {
			c.ValueMin = 0
		}
		if r.ValueMax != nil {
			max, err := cast.ToFloat64E(r.ValueMax)
			if err == nil && max >= c.ValueMin {
				c.ValueMax = &max
			}
		}
	case TypeSeries:
		c.Count = int(castFloat(r.Count, DefaultSeriesCount))
		if c.Count < MinSeriesCount {
			c.Count = MinSeriesCount
		}
		window := r.Window
		if window == nil {
			window = r.WindowV1
		}
		c.Window = int(castFloat(window, DefaultSeriesWindow))
		if c.Window < MinSeriesWindow {
			c.Window = DefaultSeriesWindow
		}
	case TypeSymbol:
		c.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
	case TypeExchange:
		c.Exchange = pickEnum(r.Exchange, Exchanges)
	case TypeMarket:
		c.Market = pickEnum(r.Market, Markets)
	case TypeDirection:
		c.Dir = pickEnum(r.Dir, Directions)
	}
	return c
}

// NormalizeAll 批量归一化，nil输入返回空切片而不是nil
func NormalizeAll(raws []Raw) []Condition {
	out := make([]Condition, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r))
	}
	return out
}

// MarshalJSON 按变体输出最小字段集。范围型的valueMax固定输出，
// 无上界时是显式null，前端靠这个区分"没有上界"和"字段丢了"。
func (c Condition) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{"type": c.Type}
	switch c.Type {
	case TypeVolume, TypeDelta, TypeWick:
		m["valueMin"] = c.ValueMin
		m["valueMax"] = c.ValueMax
	case TypeSeries:
		m["count"] = c.Count
		m["timeWindowSeconds"] = c.Window
	case TypeSymbol:
		m["symbol"] = c.Symbol
	case TypeExchange:
		m["exchange"] = c.Exchange
	case TypeMarket:
		m["market"] = c.Market
	case TypeDirection:
		m["direction"] = c.Dir
	}
	return json.Marshal(m)
}

// UnmarshalJSON 反序列化即归一化，外面拿到的永远是合法条件
func (c *Condition) UnmarshalJSON(data []byte) error {
	var r Raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*c = Normalize(r)
	return nil
}
