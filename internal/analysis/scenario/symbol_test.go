package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenario-parser/internal/models"
)

func TestSymbolResolver_Resolve(t *testing.T) {
	r := NewSymbolResolver(DefaultAliases)

	tests := []struct {
		name string
		text string
		want string // "" means no symbol
	}{
		{"ascii alias", "GOLD環境認識", "GC=F"},
		{"case insensitive", "gold outlook", "GC=F"},
		{"katakana alias", "ゴールドは堅調", "GC=F"},
		{"prefixed alias", "NYダウは反発", "^DJI"},
		{"bare alias", "ダウは反発", "^DJI"},
		{"alias before kanji", "ダウ平均の見通し", "^DJI"},
		{"slash alias", "XAU/USDの日足", "GC=F"},

		// A katakana alias inside a longer katakana word is not a name.
		{"down trend", "ダウントレンドが続く", ""},
		{"goldman", "ゴールドマンの見通し", ""},
		{"ascii inside word", "GOLDEN cross", ""},
		{"first real alias wins", "ダウンサイドに注意。ドル円は反発", "USDJPY=X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.text)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestSymbolResolver_LongestAliasAtSamePosition(t *testing.T) {
	r := NewSymbolResolver(map[string]string{
		"ダウ":   "DOW",
		"ダウ平均": "DJIA",
		"NY":   "NYSE",
		"NYダウ": "NYDOW",
	})

	tests := []struct {
		text string
		want string
	}{
		{"ダウ平均は反発", "DJIA"},
		{"ダウは反発", "DOW"},
		{"NYダウは反発", "NYDOW"},
		{"NY市場", "NYSE"},
	}
	for _, tt := range tests {
		got := r.Resolve(tt.text)
		require.NotNil(t, got, tt.text)
		assert.Equal(t, tt.want, *got, tt.text)
	}
}

func TestParse_DownTrendIsNotDow(t *testing.T) {
	result := mustParse(t, NewParser(), "ダウントレンドが続く。日足ベースのサポートラインは4317近辺です。")

	assert.Nil(t, result.Symbol)
	assert.Equal(t, []float64{4317}, prices(result.SupportLevels, models.TimeframeDaily))
}
