package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldScorer is the structured log field key for the scorer implementation.
	FieldScorer = "scorer"
	// FieldMeasures is the structured log field key for the blended measures.
	FieldMeasures = "measures"
	// FieldRunID is the structured log field key for an evaluation run.
	FieldRunID = "run_id"
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

// WithFields attaches fields to the logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields describes the scorer in use. Measures are joined with commas.
func CommonFields(scorer string, measures []string) []zap.Field {
	return StringFields(
		StringField{Key: FieldScorer, Value: scorer},
		StringField{Key: FieldMeasures, Value: strings.Join(measures, ",")},
	)
}

func WithCommonFields(logger *zap.Logger, scorer string, measures []string) *zap.Logger {
	return WithFields(logger, CommonFields(scorer, measures)...)
}
