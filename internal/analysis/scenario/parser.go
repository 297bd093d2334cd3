// Package scenario extracts price levels, zones, trend lines, the
// instrument and the analysis date from free-form market scenario notes.
//
// Every extractor is an ordered table of patterns applied to the whole
// normalized text on its own. Extractors share no mutable state, so one
// failing or matching nothing leaves the others untouched.
package scenario

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	apperrors "scenario-parser/internal/errors"
	"scenario-parser/internal/models"
)

// Parser turns scenario text into a ParsedScenario. A Parser is immutable
// and safe for concurrent use.
type Parser struct {
	symbols          *SymbolResolver
	defaultTimeframe models.Timeframe // "" rejects levels without a timeframe
	logger           zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for debug traces and extractor failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithAliases adds instrument aliases on top of DefaultAliases. An alias
// already in the table is remapped.
func WithAliases(aliases map[string]string) Option {
	return func(p *Parser) {
		merged := make(map[string]string, len(DefaultAliases)+len(aliases))
		for k, v := range p.symbols.Aliases() {
			merged[k] = v
		}
		for k, v := range aliases {
			merged[k] = v
		}
		p.symbols = NewSymbolResolver(merged)
	}
}

// WithSymbolResolver replaces the alias table entirely.
func WithSymbolResolver(r *SymbolResolver) Option {
	return func(p *Parser) {
		p.symbols = r
	}
}

// WithDefaultTimeframe sets the timeframe given to levels whose clause
// names none. The empty timeframe drops such levels instead.
func WithDefaultTimeframe(tf models.Timeframe) Option {
	return func(p *Parser) {
		p.defaultTimeframe = tf
	}
}

// NewParser creates a parser. Without options it resolves DefaultAliases,
// files untagged levels under the daily timeframe and logs nothing.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		symbols:          NewSymbolResolver(DefaultAliases),
		defaultTimeframe: models.TimeframeDaily,
		logger:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultTimeframe returns the timeframe given to untagged levels, or "".
func (p *Parser) DefaultTimeframe() models.Timeframe {
	return p.defaultTimeframe
}

// Symbols returns the parser's alias table.
func (p *Parser) Symbols() *SymbolResolver {
	return p.symbols
}

// Parse extracts a scenario from text. The only error is one wrapping
// ErrInvalidInput, returned when text is not valid UTF-8.
func (p *Parser) Parse(text string) (*models.ParsedScenario, error) {
	return p.parse(text, nil)
}

// ParseAsOf is Parse with a fallback analysis date, used only when the
// text carries none.
func (p *Parser) ParseAsOf(text string, asOf time.Time) (*models.ParsedScenario, error) {
	return p.parse(text, &asOf)
}

func (p *Parser) parse(text string, asOf *time.Time) (*models.ParsedScenario, error) {
	if !utf8.ValidString(text) {
		return nil, apperrors.NewInputError(invalidOffset(text), "text is not valid UTF-8")
	}

	normalized := normalize(text)
	result := models.NewParsedScenario(text)

	result.Symbol = run(p, "symbol", func() *string { return p.symbols.Resolve(normalized) })
	result.AnalysisDate = run(p, "date", func() *models.LocalTime { return resolveDate(normalized) })
	if result.AnalysisDate == nil && asOf != nil {
		fallback := models.NewLocalTime(*asOf)
		result.AnalysisDate = &fallback
	}

	result.SupportLevels = orEmpty(run(p, "support_levels", func() []models.PriceLevel {
		return p.extractLevels(normalized, models.LevelSupport)
	}))
	result.ResistanceLevels = orEmpty(run(p, "resistance_levels", func() []models.PriceLevel {
		return p.extractLevels(normalized, models.LevelResistance)
	}))
	result.SupportZones = orEmpty(run(p, "support_zones", func() []models.PriceZone {
		return extractZones(normalized, models.ZoneSupport)
	}))
	result.ResistanceZones = orEmpty(run(p, "resistance_zones", func() []models.PriceZone {
		return extractZones(normalized, models.ZoneResistance)
	}))
	result.TrendLines = orEmpty(run(p, "trend_lines", func() []models.TrendLine {
		return extractTrendLines(normalized)
	}))
	result.Notes = orEmpty(run(p, "notes", func() []string {
		return extractNotes(normalized)
	}))

	p.logger.Debug().
		Int("support_levels", len(result.SupportLevels)).
		Int("resistance_levels", len(result.ResistanceLevels)).
		Int("zones", len(result.SupportZones)+len(result.ResistanceZones)).
		Int("trend_lines", len(result.TrendLines)).
		Int("notes", len(result.Notes)).
		Msg("Scenario parsed")

	return result, nil
}

// run evaluates one extractor. A panic is logged and turned into the zero
// value so that the remaining extractors still run.
func run[T any](p *Parser, name string, extract func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out = zero
			err := apperrors.NewExtractorError(name, fmt.Errorf("%v", r))
			p.logger.Error().Err(err).Str("extractor", name).Msg("Extractor failed")
		}
	}()
	return extract()
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// invalidOffset returns the byte offset of the first invalid UTF-8
// sequence in s.
func invalidOffset(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
	}
	return -1
}

var defaultParser = NewParser()

// Parse extracts a scenario from text with the default Parser.
func Parse(text string) (*models.ParsedScenario, error) {
	return defaultParser.Parse(text)
}
