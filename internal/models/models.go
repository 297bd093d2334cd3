// Package models provides domain models for parsed market scenarios.
package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	apperrors "scenario-parser/internal/errors"
)

// LevelType represents the polarity of a price level.
type LevelType string

const (
	LevelSupport    LevelType = "support"
	LevelResistance LevelType = "resistance"
)

// Valid reports whether the level type belongs to the closed vocabulary.
func (l LevelType) Valid() bool {
	return l == LevelSupport || l == LevelResistance
}

// UnmarshalJSON rejects unknown level types.
func (l *LevelType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "level_type", l, LevelType.Valid)
}

// Timeframe represents the chart granularity a level applies to.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

// Timeframes lists every timeframe in display order.
var Timeframes = []Timeframe{TimeframeDaily, TimeframeWeekly, TimeframeMonthly}

// Valid reports whether the timeframe belongs to the closed vocabulary.
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeDaily, TimeframeWeekly, TimeframeMonthly:
		return true
	}
	return false
}

// UnmarshalJSON rejects unknown timeframes.
func (t *Timeframe) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "timeframe", t, Timeframe.Valid)
}

// ZoneType represents the polarity of a price zone.
type ZoneType string

const (
	ZoneSupport    ZoneType = "support_zone"
	ZoneResistance ZoneType = "resistance_zone"
)

// Valid reports whether the zone type belongs to the closed vocabulary.
func (z ZoneType) Valid() bool {
	return z == ZoneSupport || z == ZoneResistance
}

// UnmarshalJSON rejects unknown zone types.
func (z *ZoneType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "zone_type", z, ZoneType.Valid)
}

func unmarshalEnum[T ~string](data []byte, field string, target *T, valid func(T) bool) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := T(s)
	if !valid(v) {
		return apperrors.NewValidationError(field, s, "not in closed vocabulary")
	}
	*target = v
	return nil
}

// LocalTimeLayout is the naive timestamp layout of the interchange document.
const LocalTimeLayout = "2006-01-02T15:04:05"

// LocalTime is a wall-clock timestamp without zone information. The wall
// clock is carried in UTC so that equal readings compare equal.
type LocalTime struct {
	time.Time
}

// NewLocalTime keeps the wall-clock fields of t and drops its zone.
func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

// Date builds a LocalTime from calendar fields.
func Date(year int, month time.Month, day, hour, minute int) LocalTime {
	return LocalTime{time.Date(year, month, day, hour, minute, 0, 0, time.UTC)}
}

// String formats the timestamp with LocalTimeLayout.
func (t LocalTime) String() string {
	return t.Format(LocalTimeLayout)
}

// MarshalJSON encodes the timestamp as a naive ISO-8601 string.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(LocalTimeLayout))
}

// UnmarshalJSON accepts the layouts ParseLocalTime does.
func (t *LocalTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseLocalTime reads the naive layout, the minute-precision form
// "2006-01-02 15:04" or a bare date.
func ParseLocalTime(s string) (LocalTime, error) {
	for _, layout := range []string{LocalTimeLayout, "2006-01-02 15:04", "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return LocalTime{parsed}, nil
		}
	}
	return LocalTime{}, apperrors.NewValidationError("timestamp", s, "unrecognized layout")
}

// PriceLevel represents a single support or resistance price.
type PriceLevel struct {
	Price       float64   `json:"price"`
	LevelType   LevelType `json:"level_type"`
	Timeframe   Timeframe `json:"timeframe"`
	Description string    `json:"description"`
}

// PriceZone represents a support or resistance band.
type PriceZone struct {
	LowerBound  float64  `json:"lower_bound"`
	UpperBound  float64  `json:"upper_bound"`
	ZoneType    ZoneType `json:"zone_type"`
	Description string   `json:"description"`
}

// NewPriceZone orders the bounds so that LowerBound <= UpperBound.
func NewPriceZone(a, b float64, zoneType ZoneType, description string) PriceZone {
	if a > b {
		a, b = b, a
	}
	return PriceZone{
		LowerBound:  a,
		UpperBound:  b,
		ZoneType:    zoneType,
		Description: description,
	}
}

// Width returns the size of the band.
func (z PriceZone) Width() float64 {
	return z.UpperBound - z.LowerBound
}

// Contains reports whether price lies inside the band, bounds included.
func (z PriceZone) Contains(price float64) bool {
	return price >= z.LowerBound && price <= z.UpperBound
}

// TrendLine represents a two-point price trajectory.
type TrendLine struct {
	StartPrice  float64    `json:"start_price"`
	EndPrice    float64    `json:"end_price"`
	StartTime   *LocalTime `json:"start_time"`
	EndTime     *LocalTime `json:"end_time"`
	Description string     `json:"description"`
}

// Rising reports whether the trajectory points upwards.
func (t TrendLine) Rising() bool {
	return t.EndPrice > t.StartPrice
}

// ParsedScenario is the structured result of parsing one scenario text.
type ParsedScenario struct {
	Symbol           *string      `json:"symbol"`
	AnalysisDate     *LocalTime   `json:"analysis_date"`
	SupportLevels    []PriceLevel `json:"support_levels"`
	ResistanceLevels []PriceLevel `json:"resistance_levels"`
	SupportZones     []PriceZone  `json:"support_zones"`
	ResistanceZones  []PriceZone  `json:"resistance_zones"`
	TrendLines       []TrendLine  `json:"trend_lines"`
	Notes            []string     `json:"notes"`
	RawText          string       `json:"raw_text"`
}

// NewParsedScenario returns an empty scenario for rawText with every
// sequence allocated.
func NewParsedScenario(rawText string) *ParsedScenario {
	return &ParsedScenario{
		RawText:          rawText,
		SupportLevels:    []PriceLevel{},
		ResistanceLevels: []PriceLevel{},
		SupportZones:     []PriceZone{},
		ResistanceZones:  []PriceZone{},
		TrendLines:       []TrendLine{},
		Notes:            []string{},
	}
}

// UnmarshalJSON decodes an interchange document, keeping sequences non-nil
// even when the document carries null or omits them.
func (s *ParsedScenario) UnmarshalJSON(data []byte) error {
	type document ParsedScenario
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*s = ParsedScenario(doc)
	s.normalize()
	return nil
}

func (s *ParsedScenario) normalize() {
	if s.SupportLevels == nil {
		s.SupportLevels = []PriceLevel{}
	}
	if s.ResistanceLevels == nil {
		s.ResistanceLevels = []PriceLevel{}
	}
	if s.SupportZones == nil {
		s.SupportZones = []PriceZone{}
	}
	if s.ResistanceZones == nil {
		s.ResistanceZones = []PriceZone{}
	}
	if s.TrendLines == nil {
		s.TrendLines = []TrendLine{}
	}
	if s.Notes == nil {
		s.Notes = []string{}
	}
}

// SymbolOrEmpty returns the resolved symbol or "".
func (s *ParsedScenario) SymbolOrEmpty() string {
	if s.Symbol == nil {
		return ""
	}
	return *s.Symbol
}

// IsEmpty reports whether nothing was extracted from the text.
func (s *ParsedScenario) IsEmpty() bool {
	return s.Symbol == nil && s.AnalysisDate == nil &&
		len(s.SupportLevels) == 0 && len(s.ResistanceLevels) == 0 &&
		len(s.SupportZones) == 0 && len(s.ResistanceZones) == 0 &&
		len(s.TrendLines) == 0 && len(s.Notes) == 0
}

// LevelsByTimeframe groups support and resistance levels by timeframe.
func (s *ParsedScenario) LevelsByTimeframe() map[Timeframe][]PriceLevel {
	grouped := make(map[Timeframe][]PriceLevel)
	for _, l := range s.SupportLevels {
		grouped[l.Timeframe] = append(grouped[l.Timeframe], l)
	}
	for _, l := range s.ResistanceLevels {
		grouped[l.Timeframe] = append(grouped[l.Timeframe], l)
	}
	return grouped
}

// Clone returns a deep copy that shares no memory with s.
func (s *ParsedScenario) Clone() *ParsedScenario {
	c := *s
	if s.Symbol != nil {
		sym := *s.Symbol
		c.Symbol = &sym
	}
	if s.AnalysisDate != nil {
		d := *s.AnalysisDate
		c.AnalysisDate = &d
	}
	c.SupportLevels = append([]PriceLevel{}, s.SupportLevels...)
	c.ResistanceLevels = append([]PriceLevel{}, s.ResistanceLevels...)
	c.SupportZones = append([]PriceZone{}, s.SupportZones...)
	c.ResistanceZones = append([]PriceZone{}, s.ResistanceZones...)
	c.TrendLines = make([]TrendLine, len(s.TrendLines))
	for i, tl := range s.TrendLines {
		if tl.StartTime != nil {
			st := *tl.StartTime
			tl.StartTime = &st
		}
		if tl.EndTime != nil {
			et := *tl.EndTime
			tl.EndTime = &et
		}
		c.TrendLines[i] = tl
	}
	c.Notes = append([]string{}, s.Notes...)
	return &c
}

// Validate checks the structural invariants of the record.
func (s *ParsedScenario) Validate() error {
	if err := validateLevels("support_levels", s.SupportLevels, LevelSupport); err != nil {
		return err
	}
	if err := validateLevels("resistance_levels", s.ResistanceLevels, LevelResistance); err != nil {
		return err
	}
	if err := validateZones("support_zones", s.SupportZones, ZoneSupport); err != nil {
		return err
	}
	if err := validateZones("resistance_zones", s.ResistanceZones, ZoneResistance); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(s.Notes))
	for _, n := range s.Notes {
		if _, dup := seen[n]; dup {
			return apperrors.NewValidationError("notes", n, "duplicate note")
		}
		seen[n] = struct{}{}
	}
	return nil
}

func validateLevels(field string, levels []PriceLevel, want LevelType) error {
	for i, l := range levels {
		name := fmt.Sprintf("%s[%d]", field, i)
		if l.LevelType != want {
			return apperrors.NewValidationError(name+".level_type", l.LevelType, "unexpected level type")
		}
		if !l.Timeframe.Valid() {
			return apperrors.NewValidationError(name+".timeframe", l.Timeframe, "unknown timeframe")
		}
		if !(l.Price > 0) || math.IsInf(l.Price, 1) {
			return apperrors.NewValidationError(name+".price", l.Price, "price must be positive and finite")
		}
	}
	return nil
}

func validateZones(field string, zones []PriceZone, want ZoneType) error {
	for i, z := range zones {
		name := fmt.Sprintf("%s[%d]", field, i)
		if z.ZoneType != want {
			return apperrors.NewValidationError(name+".zone_type", z.ZoneType, "unexpected zone type")
		}
		if z.LowerBound > z.UpperBound {
			return apperrors.NewValidationError(name, fmt.Sprintf("%g..%g", z.LowerBound, z.UpperBound), "lower bound above upper bound")
		}
	}
	return nil
}
