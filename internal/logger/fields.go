package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldClubID is the structured log field key for the club a profile belongs to.
	FieldClubID = "club_id"
	// FieldBackend is the structured log field key for the profile store backend.
	FieldBackend = "store_backend"
	// FieldCandidate is the structured log field key for a candidate label.
	FieldCandidate = "candidate"
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger, falling back to a no-op logger when
// logger is nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	logger = OrNop(logger)
	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ClubFields describes the club and the store backend holding its profile.
func ClubFields(clubID, backend string) []zap.Field {
	return StringFields(
		StringField{Key: FieldClubID, Value: clubID},
		StringField{Key: FieldBackend, Value: backend},
	)
}

// CandidateFields describes a single candidate.
func CandidateFields(label string) []zap.Field {
	return StringFields(StringField{Key: FieldCandidate, Value: label})
}

// AIFields describes the AI provider and model.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithAIFields attaches the AI provider and model to logger.
func WithAIFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, AIFields(provider, model)...)
}
