package scenario

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"scenario-parser/internal/models"
)

// fragments are pieces of scenario vocabulary. Random concatenations hit
// the extractors far more often than arbitrary strings would.
var fragments = []string{
	"日足ベースの", "週足ベースの", "月足の", "4時間足の", "年足", "サポートライン", "レジスタンスライン",
	"支持線", "抵抗線", "は", "が", "と", "、", "。", "\n", "近辺", "付近", "～", "~", "から", "の間",
	"サポート帯", "レジスタンス帯", "ゾーン", "上昇", "下落", "へ", "まで", "急落に注意", "トレンド継続",
	"GOLD", "ドル円", "2025年10月21日", "8時00分", "15時", "4317", "4,320", "152.25", "0", "99999999",
	"１２３４", "ｻﾎﾟｰﾄ", " ",
}

func scenarioTextGen() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, len(fragments)-1)).Map(func(idx []int) string {
		var b strings.Builder
		for _, i := range idx {
			b.WriteString(fragments[i])
		}
		return b.String()
	})
}

func newProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

// Property: for any valid UTF-8 text, Parse returns a well-formed record
// whose sequences are all non-nil and whose raw text is the input.
func TestProperty_ParseAlwaysWellFormed(t *testing.T) {
	p := NewParser()
	properties := newProperties()

	check := func(text string) bool {
		result, err := p.Parse(text)
		if err != nil || result == nil {
			t.Logf("Parse(%q) failed: %v", text, err)
			return false
		}
		if result.RawText != text {
			return false
		}
		return result.SupportLevels != nil && result.ResistanceLevels != nil &&
			result.SupportZones != nil && result.ResistanceZones != nil &&
			result.TrendLines != nil && result.Notes != nil
	}

	properties.Property("arbitrary strings", prop.ForAll(check, gen.AnyString()))
	properties.Property("scenario-like strings", prop.ForAll(check, scenarioTextGen()))

	properties.TestingRun(t)
}

// Property: parsing is a pure function of its input.
func TestProperty_ParseIdempotent(t *testing.T) {
	p := NewParser()
	properties := newProperties()

	properties.Property("parse(text) == parse(text)", prop.ForAll(
		func(text string) bool {
			first, err1 := p.Parse(text)
			second, err2 := p.Parse(text)
			return err1 == nil && err2 == nil && reflect.DeepEqual(first, second)
		},
		scenarioTextGen(),
	))

	properties.TestingRun(t)
}

// Property: extracted records satisfy their invariants. Zones are ordered,
// levels carry closed-vocabulary tags and positive prices, notes are
// unique.
func TestProperty_ExtractedInvariants(t *testing.T) {
	p := NewParser()
	properties := newProperties()

	properties.Property("Validate accepts every parse result", prop.ForAll(
		func(text string) bool {
			result, err := p.Parse(text)
			if err != nil {
				return false
			}
			if err := result.Validate(); err != nil {
				t.Logf("Parse(%q) produced invalid record: %v", text, err)
				return false
			}
			for _, l := range append(result.SupportLevels, result.ResistanceLevels...) {
				if !l.Timeframe.Valid() || !l.LevelType.Valid() {
					return false
				}
			}
			for _, z := range append(result.SupportZones, result.ResistanceZones...) {
				if z.LowerBound > z.UpperBound {
					return false
				}
			}
			return true
		},
		scenarioTextGen(),
	))

	properties.TestingRun(t)
}

// Property: a two-numeral zone is ordered whichever way the text states it.
func TestProperty_ZoneBoundsOrdered(t *testing.T) {
	p := NewParser()
	properties := newProperties()

	properties.Property("lower_bound <= upper_bound", prop.ForAll(
		func(a, b int, resistance bool) bool {
			polarity, want := "サポート", models.ZoneSupport
			if resistance {
				polarity, want = "レジスタンス", models.ZoneResistance
			}
			text := fmt.Sprintf("%d近辺～%d近辺の%s帯", a, b, polarity)
			result, err := p.Parse(text)
			if err != nil {
				return false
			}
			zones := result.SupportZones
			if resistance {
				zones = result.ResistanceZones
			}
			if len(zones) != 1 {
				t.Logf("%q: expected one zone, got %d", text, len(zones))
				return false
			}
			z := zones[0]
			lo, hi := float64(a), float64(b)
			if lo > hi {
				lo, hi = hi, lo
			}
			return z.ZoneType == want && z.LowerBound == lo && z.UpperBound == hi
		},
		gen.IntRange(1, 100000),
		gen.IntRange(1, 100000),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property: serializing a parse result and decoding it reproduces the
// same record.
func TestProperty_JSONRoundTrip(t *testing.T) {
	p := NewParser()
	properties := newProperties()

	properties.Property("decode(encode(s)) == s", prop.ForAll(
		func(text string) bool {
			result, err := p.Parse(text)
			if err != nil {
				return false
			}
			data, err := json.Marshal(result)
			if err != nil {
				t.Logf("marshal failed: %v", err)
				return false
			}
			var decoded models.ParsedScenario
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Logf("unmarshal failed: %v", err)
				return false
			}
			return reflect.DeepEqual(result, &decoded)
		},
		scenarioTextGen(),
	))

	properties.TestingRun(t)
}
