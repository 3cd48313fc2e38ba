package logger

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/doeshing/assist-core/internal/domain"
)

// StdLogger is a lightweight implementation backed by Go's log package.
// Debug and Info lines are only written in verbose mode; Warn and Error are
// always written.
type StdLogger struct {
	verbose        bool
	maxFieldLength int
	out            *log.Logger
}

// NewStd creates a StdLogger writing to stderr.
func NewStd(verbose bool) *StdLogger {
	return New(os.Stderr, verbose, domain.DefaultMaxFieldLength)
}

// New creates a StdLogger writing to w. Field values longer than
// maxFieldLength are truncated; zero or less disables truncation.
func New(w io.Writer, verbose bool, maxFieldLength int) *StdLogger {
	return &StdLogger{
		verbose:        verbose,
		maxFieldLength: maxFieldLength,
		out:            log.New(w, "", log.LstdFlags),
	}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[DEBUG]", msg, l.sanitize(fields))
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[INFO]", msg, l.sanitize(fields))
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.out.Println("[WARN]", msg, l.sanitize(fields))
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.out.Println("[ERROR]", msg, err, l.sanitize(fields))
}

func (l *StdLogger) sanitize(fields map[string]interface{}) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for key, value := range fields {
		out[key] = Sanitize(value, l.maxFieldLength)
	}
	return out
}

// Sanitize renders a log field value, truncating it to maxLength characters.
func Sanitize(value interface{}, maxLength int) string {
	if value == nil {
		return "<nil>"
	}
	text := fmt.Sprint(value)
	runes := []rune(text)
	if maxLength <= 0 || len(runes) <= maxLength {
		return text
	}
	return fmt.Sprintf("%s... [truncated, %d chars total]", string(runes[:maxLength]), len(runes))
}
