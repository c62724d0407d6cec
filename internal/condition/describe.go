package condition

import (
	"fmt"
	"strconv"
	"strings"

	"spikeboard/utils"
)

const (
	// Separator 多条件摘要的连接符
	Separator = " · "
	// NoConditions 空条件列表的摘要文案
	NoConditions = "No conditions"
)

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// 枚举值都是小写ascii，首字母大写后展示
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func window2str(sec int) string {
	if sec%60 == 0 {
		return fmt.Sprintf("%d min", sec/60)
	}
	return fmt.Sprintf("%d sec", sec)
}

// Describe 生成单个条件的人读摘要，给模板列表展示用
func Describe(c Condition) string {
	switch c.Type {
	case TypeVolume:
		if c.ValueMax != nil {
			return fmt.Sprintf("Volume %s–%s USDT", utils.FormatThousands(c.ValueMin), utils.FormatThousands(*c.ValueMax))
		}
		return fmt.Sprintf("Volume ≥ %s USDT", utils.FormatThousands(c.ValueMin))
	case TypeDelta:
		if c.ValueMax != nil {
			return fmt.Sprintf("Delta %s–%s", pct(c.ValueMin), pct(*c.ValueMax))
		}
		return fmt.Sprintf("Delta ≥ %s", pct(c.ValueMin))
	case TypeWick:
		if c.ValueMax != nil {
			return fmt.Sprintf("Wick %s–%s", pct(c.ValueMin), pct(*c.ValueMax))
		}
		return fmt.Sprintf("Wick ≥ %s", pct(c.ValueMin))
	case TypeSeries:
		return fmt.Sprintf("Series: %d spikes in %s", c.Count, window2str(c.Window))
	case TypeSymbol:
		return "Symbol: " + c.Symbol
	case TypeExchange:
		return "Exchange: " + title(c.Exchange)
	case TypeMarket:
		return "Market: " + title(c.Market)
	case TypeDirection:
		return "Direction: " + title(c.Dir)
	}
	return ""
}

// DescribeList 把条件列表拼成一行摘要，空列表返回固定文案
func DescribeList(conds []Condition) string {
	if len(conds) == 0 {
		return NoConditions
	}
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		parts = append(parts, Describe(c))
	}
	return strings.Join(parts, Separator)
}
