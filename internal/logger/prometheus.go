package logger

import (
	"github.com/maxaizer/hirenearby/internal/metrics"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAppName   = "hirenearby"
	unclassifiedType = "unclassified"
)

// errorsHook feeds marketplace_errors_total. Entries without an error_type field count as unclassified.
type errorsHook struct {
	app string
}

func newErrorsHook(app string) *errorsHook {
	if app == "" {
		app = defaultAppName
	}
	return &errorsHook{app: app}
}

func (h *errorsHook) Fire(entry *log.Entry) error {
	errorType, ok := entry.Data[ErrorTypeField].(string)
	if !ok || errorType == "" {
		errorType = unclassifiedType
	}

	metrics.ErrorsCounter.WithLabelValues(h.app, errorType, entry.Level.String()).Inc()
	return nil
}

func (h *errorsHook) Levels() []log.Level {
	return []log.Level{log.ErrorLevel, log.FatalLevel, log.PanicLevel}
}
