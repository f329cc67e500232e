package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/scout-profile/internal/candidate"
	"github.com/spigell/scout-profile/internal/logger"
	"github.com/spigell/scout-profile/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	defaultCurrency     = "EUR"
)

// Extractor implements ai.Extractor with a Gemini generator.
type Extractor struct {
	generator contentGenerator
	currency  string
	logger    *zap.Logger
	maxLogLen int
}

// NewExtractor reads market values in currency, the club's profile currency.
func NewExtractor(generator contentGenerator, l *zap.Logger, currency string, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = defaultCurrency
	}

	return &Extractor{
		generator: generator,
		currency:  currency,
		logger:    logger.OrNop(l),
		maxLogLen: maxLogLength,
	}
}

func (e *Extractor) Extract(ctx context.Context, notes string) (*candidate.Attributes, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, errors.New("scouting notes are empty")
	}

	system := buildPrompt(e.currency)

	e.logger.Debug("gemini extract request",
		zap.Int("notes_length", utf8.RuneCountInString(notes)),
		zap.String("notes_preview", utils.TruncateForLog(notes, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, system, notes)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini extract response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	attrs, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("extracted candidate", logger.CandidateFields(attrs.Label())...)
	return attrs, nil
}

func buildPrompt(currency string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Extract the player described in the notes as JSON. Market values are in {{CURRENCY}}."
	}
	return strings.ReplaceAll(template, "{{CURRENCY}}", currency)
}

func parseResponse(raw string) (*candidate.Attributes, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	attrs := &candidate.Attributes{
		Name:        coerceString(data["name"]),
		Position:    strings.ToUpper(coerceString(data["position"])),
		DateOfBirth: coerceDate(data["date_of_birth"]),
		Nationality: coerceString(data["nationality"]),
	}

	if value := coerceFloat(data["market_value"]); !math.IsNaN(value) && value >= 0 {
		attrs.MarketValue = &value
	}

	club := coerceString(data["current_club"])
	until := coerceDate(data["contract_until"])
	if club != "" || until != nil {
		attrs.Clubs = []candidate.Affiliation{{Club: club, ContractUntil: until}}
	}

	return attrs, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start > 0 && end > start {
		raw = raw[start : end+1]
	}
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if strings.EqualFold(s, "null") || strings.EqualFold(s, "unknown") {
			return ""
		}
		return s
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		return ""
	}
}

func coerceDate(v any) *candidate.Date {
	s := coerceString(v)
	if s == "" {
		return nil
	}
	d, err := candidate.ParseDate(s)
	if err != nil {
		return nil
	}
	return d
}
