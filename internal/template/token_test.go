package template

import (
	"testing"
)

func TestTokenTableBijection(t *testing.T) {
	seenKey := make(map[string]bool)
	seenLabel := make(map[string]bool)
	for _, tok := range Tokens {
		if seenKey[tok.Key] {
			t.Fatalf("duplicate key %q", tok.Key)
		}
		if seenLabel[tok.Label] {
			t.Fatalf("duplicate label %q", tok.Label)
		}
		seenKey[tok.Key] = true
		seenLabel[tok.Label] = true
		if KeyOf(LabelOf(tok.Key)) != tok.Key {
			t.Errorf("key %q does not round-trip through label", tok.Key)
		}
	}
	if len(Tokens) != 8 {
		t.Fatalf("expected 8 tokens, got %d", len(Tokens))
	}
}

func TestToFriendlyToTechnicalRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		technical string
		friendly  string
	}{
		{
			name:      "single token",
			technical: "Spike on {symbol}",
			friendly:  "Spike on [Symbol]",
		},
		{
			name:      "multiple tokens with text",
			technical: "{direction} {delta_formatted} on {exchange_market}\nVolume: {volume_formatted}",
			friendly:  "[Direction] [Spike delta] on [Exchange and market]\nVolume: [Volume]",
		},
		{
			name:      "no tokens",
			technical: "plain text stays as is",
			friendly:  "plain text stays as is",
		},
		{
			name:      "all tokens",
			technical: "{delta_formatted}{direction}{exchange_market}{symbol}{volume_formatted}{shadow_formatted}{time_formatted}{timestamp}",
			friendly:  "[Spike delta][Direction][Exchange and market][Symbol][Volume][Wick %][Detection time][Timestamp]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToFriendly(tt.technical); got != tt.friendly {
				t.Errorf("ToFriendly() = %q, want %q", got, tt.friendly)
			}
			if got := ToTechnical(tt.friendly); got != tt.technical {
				t.Errorf("ToTechnical() = %q, want %q", got, tt.technical)
			}
			// 两个方向来回转必须无损
			if got := ToTechnical(ToFriendly(tt.technical)); got != tt.technical {
				t.Errorf("round-trip technical = %q, want %q", got, tt.technical)
			}
		})
	}
}

func TestToTechnicalIdempotent(t *testing.T) {
	// 已经是technical形态的输入再转一次不能变
	in := "Alert {symbol} {delta_formatted}"
	if got := ToTechnical(in); got != in {
		t.Errorf("ToTechnical on technical input = %q, want unchanged", got)
	}
	mixed := "[Symbol] and {delta_formatted}"
	want := "{symbol} and {delta_formatted}"
	if got := ToTechnical(mixed); got != want {
		t.Errorf("ToTechnical on mixed input = %q, want %q", got, want)
	}
}

func TestUnknownBracketsPreserved(t *testing.T) {
	in := "[Not a token] stays, so does {not_a_key}"
	if got := ToTechnical(in); got != in {
		t.Errorf("unknown brackets changed: %q", got)
	}
	if got := ToFriendly(in); got != in {
		t.Errorf("unknown keys changed: %q", got)
	}
}

func TestMigrateLegacy(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "exchange market pair",
			in:   "Spike on {exchange} {market}",
			want: "Spike on {exchange_market}",
		},
		{
			name: "exchange alone",
			in:   "{exchange}: {symbol}",
			want: "{exchange_market}: {symbol}",
		},
		{
			name: "market alone dropped",
			in:   "On {market} pair {symbol}",
			want: "On pair {symbol}",
		},
		{
			name: "volume with unit suffix",
			in:   "Vol {volume} USDT",
			want: "Vol {volume_formatted}",
		},
		{
			name: "volume bare",
			in:   "Vol {volume}",
			want: "Vol {volume_formatted}",
		},
		{
			name: "current keys untouched",
			in:   "{exchange_market} {volume_formatted}",
			want: "{exchange_market} {volume_formatted}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MigrateLegacy(tt.in)
			if got != tt.want {
				t.Errorf("MigrateLegacy(%q) = %q, want %q", tt.in, got, tt.want)
			}
			// 迁移必须幂等
			if again := MigrateLegacy(got); again != got {
				t.Errorf("MigrateLegacy not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestRender(t *testing.T) {
	vars := map[string]string{
		"{symbol}":          "BTCUSDT",
		"{delta_formatted}": "+5.2%",
		"{not_a_key}":       "ignored",
	}
	got := Render("{symbol} moved {delta_formatted} ({timestamp})", vars)
	want := "BTCUSDT moved +5.2% ({timestamp})"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if got := Render("unchanged", nil); got != "unchanged" {
		t.Errorf("Render with nil vars = %q", got)
	}
}
