package condition

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestNormalizeLegacyValueMigration(t *testing.T) {
	// 旧版写法 {type:"delta",value:7} 迁移成 valueMin:7, valueMax无上界
	c := Normalize(Raw{Type: "delta", Value: 7})
	if c.Type != TypeDelta {
		t.Fatalf("type = %q", c.Type)
	}
	if c.ValueMin != 7 {
		t.Errorf("valueMin = %v, want 7", c.ValueMin)
	}
	if c.ValueMax != nil {
		t.Errorf("valueMax = %v, want nil", *c.ValueMax)
	}

	// valueMin和value同时出现时valueMin优先
	c = Normalize(Raw{Type: "delta", Value: 7, ValueMin: 3})
	if c.ValueMin != 3 {
		t.Errorf("valueMin = %v, want 3", c.ValueMin)
	}
}

func TestNormalizeRangedBounds(t *testing.T) {
	max := 10.0
	tests := []struct {
		name    string
		in      Raw
		wantMin float64
		wantMax *float64
	}{
		{name: "valid range", in: Raw{Type: "delta", ValueMin: 5, ValueMax: 10}, wantMin: 5, wantMax: &max},
		{name: "max below min dropped", in: Raw{Type: "delta", ValueMin: 5, ValueMax: 2}, wantMin: 5, wantMax: nil},
		{name: "numeric strings accepted", in: Raw{Type: "volume", ValueMin: "25000"}, wantMin: 25000, wantMax: nil},
		{name: "missing min defaults to zero", in: Raw{Type: "volume"}, wantMin: 0, wantMax: nil},
		{name: "garbage min defaults to zero", in: Raw{Type: "wick_pct", ValueMin: "abc"}, wantMin: 0, wantMax: nil},
		{name: "negative min clamped to zero", in: Raw{Type: "delta", ValueMin: -3}, wantMin: 0, wantMax: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Normalize(tt.in)
			if c.ValueMin != tt.wantMin {
				t.Errorf("valueMin = %v, want %v", c.ValueMin, tt.wantMin)
			}
			if (c.ValueMax == nil) != (tt.wantMax == nil) {
				t.Fatalf("valueMax nil-ness = %v, want %v", c.ValueMax == nil, tt.wantMax == nil)
			}
			if c.ValueMax != nil && *c.ValueMax != *tt.wantMax {
				t.Errorf("valueMax = %v, want %v", *c.ValueMax, *tt.wantMax)
			}
		})
	}
}

func TestNormalizeSeries(t *testing.T) {
	c := Normalize(Raw{Type: "series", Count: 3, Window: 300})
	if c.Count != 3 || c.Window != 300 {
		t.Errorf("got count=%d window=%d", c.Count, c.Window)
	}
	// 过小的值拉回下限或默认
	c = Normalize(Raw{Type: "series", Count: 1, Window: 10})
	if c.Count != MinSeriesCount {
		t.Errorf("count = %d, want %d", c.Count, MinSeriesCount)
	}
	if c.Window != DefaultSeriesWindow {
		t.Errorf("window = %d, want %d", c.Window, DefaultSeriesWindow)
	}
	c = Normalize(Raw{Type: "series"})
	if c.Count != DefaultSeriesCount || c.Window != DefaultSeriesWindow {
		t.Errorf("defaults: count=%d window=%d", c.Count, c.Window)
	}
}

func TestNormalizeEnumsAndSymbol(t *testing.T) {
	if c := Normalize(Raw{Type: "symbol", Symbol: " btcusdt "}); c.Symbol != "BTCUSDT" {
		t.Errorf("symbol = %q", c.Symbol)
	}
	if c := Normalize(Raw{Type: "exchange", Exchange: "ByBit"}); c.Exchange != "bybit" {
		t.Errorf("exchange = %q", c.Exchange)
	}
	if c := Normalize(Raw{Type: "exchange", Exchange: "kraken"}); c.Exchange != "binance" {
		t.Errorf("unknown exchange = %q, want first option", c.Exchange)
	}
	if c := Normalize(Raw{Type: "market", Market: ""}); c.Market != "spot" {
		t.Errorf("market = %q", c.Market)
	}
	if c := Normalize(Raw{Type: "direction", Dir: "DOWN"}); c.Dir != "down" {
		t.Errorf("direction = %q", c.Dir)
	}
	if c := Normalize(Raw{Type: "direction", Dir: "sideways"}); c.Dir != "up" {
		t.Errorf("unknown direction = %q, want first option", c.Dir)
	}
}

func TestNormalizeUnknownType(t *testing.T) {
	c := Normalize(Raw{Type: "bogus"})
	if c.Type != TypeVolume {
		t.Errorf("unknown type normalized to %q, want volume", c.Type)
	}
	if c.ValueMin != 0 {
		t.Errorf("valueMin = %v, want 0", c.ValueMin)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raws := []Raw{
		{Type: "delta", Value: 7},
		{Type: "series", Count: 1, Window: 10},
		{Type: "exchange", Exchange: "kraken"},
		{Type: "symbol", Symbol: " ethusdt"},
	}
	for _, r := range raws {
		first := Normalize(r)
		// 把归一化结果序列化再反序列化，应当得到同一个条件
		b, err := json.Marshal(first)
		if err != nil {
			t.Fatal(err)
		}
		var second Condition
		if err := json.Unmarshal(b, &second); err != nil {
			t.Fatal(err)
		}
		if first.Type != second.Type || first.ValueMin != second.ValueMin ||
			first.Count != second.Count || first.Window != second.Window ||
			first.Symbol != second.Symbol || first.Exchange != second.Exchange ||
			first.Market != second.Market || first.Dir != second.Dir {
			t.Errorf("normalize not stable: %+v vs %+v", first, second)
		}
	}
}

func TestMarshalShape(t *testing.T) {
	b, err := json.Marshal(Normalize(Raw{Type: "delta", ValueMin: 5}))
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	// 无上界时valueMax必须是显式null
	if !strings.Contains(s, `"valueMax":null`) {
		t.Errorf("expected explicit null valueMax, got %s", s)
	}
	if strings.Contains(s, "symbol") || strings.Contains(s, "count") {
		t.Errorf("ranged variant leaked foreign fields: %s", s)
	}

	b, err = json.Marshal(Normalize(Raw{Type: "symbol", Symbol: "btcusdt"}))
	if err != nil {
		t.Fatal(err)
	}
	s = string(b)
	if !strings.Contains(s, `"symbol":"BTCUSDT"`) {
		t.Errorf("symbol variant: %s", s)
	}
	if strings.Contains(s, "valueMin") {
		t.Errorf("symbol variant leaked foreign fields: %s", s)
	}
}

func TestDescribe(t *testing.T) {
	max := 10.0
	tests := []struct {
		name string
		c    Condition
		want string
	}{
		{name: "volume lower bound", c: Condition{Type: TypeVolume, ValueMin: 10000}, want: "Volume ≥ 10,000 USDT"},
		{name: "delta lower bound", c: Condition{Type: TypeDelta, ValueMin: 5}, want: "Delta ≥ 5%"},
		{name: "delta range", c: Condition{Type: TypeDelta, ValueMin: 5, ValueMax: &max}, want: "Delta 5%–10%"},
		{name: "wick", c: Condition{Type: TypeWick, ValueMin: 1.5}, want: "Wick ≥ 1.5%"},
		{name: "series", c: Condition{Type: TypeSeries, Count: 3, Window: 300}, want: "Series: 3 spikes in 5 min"},
		{name: "series odd window", c: Condition{Type: TypeSeries, Count: 2, Window: 90}, want: "Series: 2 spikes in 90 sec"},
		{name: "symbol", c: Condition{Type: TypeSymbol, Symbol: "BTCUSDT"}, want: "Symbol: BTCUSDT"},
		{name: "exchange", c: Condition{Type: TypeExchange, Exchange: "binance"}, want: "Exchange: Binance"},
		{name: "direction", c: Condition{Type: TypeDirection, Dir: "up"}, want: "Direction: Up"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.c); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribeList(t *testing.T) {
	if got := DescribeList(nil); got != NoConditions {
		t.Errorf("empty list = %q", got)
	}
	conds := []Condition{
		{Type: TypeDelta, ValueMin: 5},
		{Type: TypeVolume, ValueMin: 10000},
	}
	want := "Delta ≥ 5%" + Separator + "Volume ≥ 10,000 USDT"
	if got := DescribeList(conds); got != want {
		t.Errorf("DescribeList() = %q, want %q", got, want)
	}
}
