package scenario

import (
	"regexp"
	"strings"

	"scenario-parser/internal/models"
)

// DefaultAliases maps instrument names as they appear in scenario notes to
// canonical identifiers. Matching is case-insensitive; longer aliases win
// over shorter ones that start at the same position.
var DefaultAliases = map[string]string{
	// Precious metals
	"GOLD":     "GC=F",
	"ゴールド":     "GC=F",
	"金先物":      "GC=F",
	"NY金":      "GC=F",
	"XAUUSD":   "GC=F",
	"XAU/USD":  "GC=F",
	"SILVER":   "SI=F",
	"シルバー":     "SI=F",
	"銀先物":      "SI=F",
	"XAGUSD":   "SI=F",
	"プラチナ":     "PL=F",
	"PLATINUM": "PL=F",

	// Energy
	"原油":    "CL=F",
	"WTI":   "CL=F",
	"CRUDE": "CL=F",

	// FX
	"ドル円":     "USDJPY=X",
	"USDJPY":  "USDJPY=X",
	"USD/JPY": "USDJPY=X",
	"ユーロドル":   "EURUSD=X",
	"EURUSD":  "EURUSD=X",
	"EUR/USD": "EURUSD=X",
	"ポンドドル":   "GBPUSD=X",
	"GBPUSD":  "GBPUSD=X",
	"GBP/USD": "GBPUSD=X",
	"ユーロ円":    "EURJPY=X",
	"EURJPY":  "EURJPY=X",
	"EUR/JPY": "EURJPY=X",
	"ポンド円":    "GBPJPY=X",
	"GBPJPY":  "GBPJPY=X",
	"GBP/JPY": "GBPJPY=X",
	"豪ドル円":    "AUDJPY=X",
	"AUDJPY":  "AUDJPY=X",
	"AUD/JPY": "AUDJPY=X",

	// Indices and crypto
	"日経平均":   "^N225",
	"日経225":  "^N225",
	"NIKKEI": "^N225",
	"ダウ":     "^DJI",
	"NYダウ":   "^DJI",
	"ビットコイン": "BTC-USD",
	"BTC":    "BTC-USD",
	"BTCUSD": "BTC-USD",
}

// timeframeSynonyms maps every accepted timeframe token to its timeframe.
// Keys are lower-case with spaces removed.
var timeframeSynonyms = map[string]models.Timeframe{
	"日足":     models.TimeframeDaily,
	"1日足":    models.TimeframeDaily,
	"デイリー":   models.TimeframeDaily,
	"daily":  models.TimeframeDaily,
	"週足":     models.TimeframeWeekly,
	"1週足":    models.TimeframeWeekly,
	"ウィークリー": models.TimeframeWeekly,
	"weekly": models.TimeframeWeekly,
	"月足":     models.TimeframeMonthly,
	"1ヶ月足":   models.TimeframeMonthly,
	"1か月足":   models.TimeframeMonthly,
	"1カ月足":   models.TimeframeMonthly,
	"マンスリー":  models.TimeframeMonthly,
	"monthly": models.TimeframeMonthly,
	"d1":      models.TimeframeDaily,
	"w1":      models.TimeframeWeekly,
	"mn":      models.TimeframeMonthly,
}

// timeframeToken matches anything shaped like a timeframe, known or not.
// Tokens absent from timeframeSynonyms reject the levels they govern.
var timeframeToken = regexp.MustCompile(`(?i)\d+\s*(?:分|時間|日|週|ヶ月|か月|カ月|ヵ月)足|[日週月年]足|デイリー|ウィークリー|マンスリー|\bdaily\b|\bweekly\b|\bmonthly\b|\b(?:m|h|d|w)\d+\b|\bmn\b`)

// lookupTimeframe resolves a token matched by timeframeToken.
func lookupTimeframe(token string) (models.Timeframe, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(token), ""))
	tf, ok := timeframeSynonyms[key]
	return tf, ok
}

// polarityKeyword matches the words that introduce support or resistance.
var polarityKeyword = regexp.MustCompile(`(?i)下値支持|支持線|サポート|上値抵抗|抵抗線|レジスタンス|\bsupport\b|\bresistance\b`)

var polaritySynonyms = map[string]models.LevelType{
	"下値支持":       models.LevelSupport,
	"支持線":        models.LevelSupport,
	"サポート":       models.LevelSupport,
	"support":    models.LevelSupport,
	"上値抵抗":       models.LevelResistance,
	"抵抗線":        models.LevelResistance,
	"レジスタンス":     models.LevelResistance,
	"resistance": models.LevelResistance,
}

// zonePolarity maps the polarity word of a zone expression to a zone type.
var zonePolarity = map[string]models.ZoneType{
	"サポート":       models.ZoneSupport,
	"支持":         models.ZoneSupport,
	"support":    models.ZoneSupport,
	"レジスタンス":     models.ZoneResistance,
	"抵抗":         models.ZoneResistance,
	"resistance": models.ZoneResistance,
}

func lookupPolarity(word string) (models.LevelType, bool) {
	lt, ok := polaritySynonyms[strings.ToLower(word)]
	return lt, ok
}

func lookupZonePolarity(word string) (models.ZoneType, bool) {
	zt, ok := zonePolarity[strings.ToLower(word)]
	return zt, ok
}

// Pattern fragments shared by the zone and trend grammars.
const (
	pricePattern     = `(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)`
	qualifierPattern = `(?:近辺|付近|前後|辺り|あたり|水準|レベル|円)?`
	rangeSepPattern  = `\s*(?:~|〜|-|‐|−|から)\s*`
	zonePolPattern   = `(サポート|支持|レジスタンス|抵抗|(?i:support|resistance))`
	zoneWordPattern  = `\s*(?:帯|ゾーン|レンジ|圏|(?i:zone))`
)

// unitSuffixes are runes that, directly after a numeral, make it a
// quantity other than a price.
const unitSuffixes = "年月日時分秒足%本回週間つ番倍/:"

// notePatterns are the cautionary and conditional phrases collected as notes.
var notePatterns = []*regexp.Regexp{
	regexp.MustCompile(`に(?:は|も)?(?:要)?(?:注意|警戒|留意)`),
	regexp.MustCompile(`要(?:注意|警戒)`),
	regexp.MustCompile(`(?:急落|急騰|暴落|乱高下|反落)(?:の)?(?:可能性|恐れ|おそれ|リスク)`),
	regexp.MustCompile(`トレンド(?:継続|転換)`),
	regexp.MustCompile(`(?i)\bcaution\b|\bbeware\b`),
}
