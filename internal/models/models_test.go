package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "scenario-parser/internal/errors"
)

func sampleScenario() *ParsedScenario {
	symbol := "GC=F"
	date := Date(2025, time.October, 21, 8, 0)
	start := Date(2025, time.October, 21, 9, 0)
	s := NewParsedScenario("raw")
	s.Symbol = &symbol
	s.AnalysisDate = &date
	s.SupportLevels = []PriceLevel{{Price: 4317, LevelType: LevelSupport, Timeframe: TimeframeDaily, Description: "d"}}
	s.ResistanceLevels = []PriceLevel{{Price: 4443, LevelType: LevelResistance, Timeframe: TimeframeWeekly}}
	s.SupportZones = []PriceZone{NewPriceZone(4320, 4317, ZoneSupport, "z")}
	s.TrendLines = []TrendLine{{StartPrice: 4300, EndPrice: 4350, StartTime: &start}}
	s.Notes = []string{"急落に注意"}
	return s
}

func TestNewPriceZone_OrdersBounds(t *testing.T) {
	z := NewPriceZone(4320, 4317, ZoneSupport, "")
	assert.Equal(t, 4317.0, z.LowerBound)
	assert.Equal(t, 4320.0, z.UpperBound)
	assert.Equal(t, 3.0, z.Width())
	assert.True(t, z.Contains(4317))
	assert.False(t, z.Contains(4321))

	degenerate := NewPriceZone(4300, 4300, ZoneResistance, "")
	assert.Equal(t, degenerate.LowerBound, degenerate.UpperBound)
}

func TestParsedScenario_JSONShape(t *testing.T) {
	data, err := json.Marshal(NewParsedScenario(""))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"symbol": null,
		"analysis_date": null,
		"support_levels": [],
		"resistance_levels": [],
		"support_zones": [],
		"resistance_zones": [],
		"trend_lines": [],
		"notes": [],
		"raw_text": ""
	}`, string(data))
}

func TestParsedScenario_RoundTrip(t *testing.T) {
	original := sampleScenario()

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"analysis_date":"2025-10-21T08:00:00"`)
	assert.Contains(t, string(data), `"end_time":null`)

	var decoded ParsedScenario
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, &decoded)
}

func TestParsedScenario_UnmarshalKeepsSequences(t *testing.T) {
	var s ParsedScenario
	require.NoError(t, json.Unmarshal([]byte(`{"raw_text":"x","notes":null}`), &s))

	assert.NotNil(t, s.SupportLevels)
	assert.NotNil(t, s.ResistanceZones)
	assert.NotNil(t, s.Notes)
	assert.Nil(t, s.Symbol)
	assert.True(t, s.IsEmpty())
}

func TestParsedScenario_UnmarshalRejectsUnknownVocabulary(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"timeframe", `{"support_levels":[{"price":1,"level_type":"support","timeframe":"hourly"}]}`},
		{"level type", `{"support_levels":[{"price":1,"level_type":"pivot","timeframe":"daily"}]}`},
		{"zone type", `{"support_zones":[{"lower_bound":1,"upper_bound":2,"zone_type":"demand"}]}`},
		{"timestamp", `{"analysis_date":"21/10/2025"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ParsedScenario
			err := json.Unmarshal([]byte(tt.doc), &s)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidValue))
		})
	}
}

func TestLocalTime_LegacyLayout(t *testing.T) {
	var lt LocalTime
	require.NoError(t, json.Unmarshal([]byte(`"2025-10-21 08:00"`), &lt))
	assert.Equal(t, Date(2025, time.October, 21, 8, 0), lt)
}

func TestNewLocalTime_DropsZone(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)
	lt := NewLocalTime(time.Date(2025, 10, 21, 8, 0, 0, 0, jst))
	assert.Equal(t, "2025-10-21T08:00:00", lt.String())
	assert.Equal(t, time.UTC, lt.Location())
}

func TestParsedScenario_Validate(t *testing.T) {
	assert.NoError(t, sampleScenario().Validate())

	t.Run("inverted zone", func(t *testing.T) {
		s := sampleScenario()
		s.SupportZones[0] = PriceZone{LowerBound: 5, UpperBound: 1, ZoneType: ZoneSupport}
		assert.Error(t, s.Validate())
	})

	t.Run("wrong list", func(t *testing.T) {
		s := sampleScenario()
		s.SupportLevels[0].LevelType = LevelResistance
		assert.Error(t, s.Validate())
	})

	t.Run("non-positive price", func(t *testing.T) {
		s := sampleScenario()
		s.ResistanceLevels[0].Price = 0
		assert.Error(t, s.Validate())
	})

	t.Run("duplicate note", func(t *testing.T) {
		s := sampleScenario()
		s.Notes = append(s.Notes, s.Notes[0])
		var verr *apperrors.ValidationError
		require.True(t, apperrors.As(s.Validate(), &verr))
		assert.Equal(t, "notes", verr.Field)
	})
}

func TestParsedScenario_CloneIsIndependent(t *testing.T) {
	original := sampleScenario()
	clone := original.Clone()
	require.Equal(t, original, clone)

	*clone.Symbol = "SI=F"
	clone.SupportLevels[0].Price = 1
	clone.Notes[0] = "changed"
	*clone.TrendLines[0].StartTime = Date(2000, time.January, 1, 0, 0)

	assert.Equal(t, "GC=F", original.SymbolOrEmpty())
	assert.Equal(t, 4317.0, original.SupportLevels[0].Price)
	assert.Equal(t, "急落に注意", original.Notes[0])
	assert.Equal(t, 2025, original.TrendLines[0].StartTime.Year())
}

func TestParsedScenario_LevelsByTimeframe(t *testing.T) {
	grouped := sampleScenario().LevelsByTimeframe()
	assert.Len(t, grouped[TimeframeDaily], 1)
	assert.Len(t, grouped[TimeframeWeekly], 1)
	assert.Empty(t, grouped[TimeframeMonthly])
}
