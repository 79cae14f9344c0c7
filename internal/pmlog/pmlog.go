// Package pmlog accumulates engine diagnostics into separate buckets for
// errors/warnings/infos, drained in severity order.
package pmlog

import "github.com/proseengine/core/internal/position"

// Severity mirrors loc.DiagnosticSeverity's ordering.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

// Diagnostic is one reported event, optionally anchored to a position
// range (set when the error carries a position.Range, matching
// loc.ErrorWithRange).
type Diagnostic struct {
	Severity Severity
	Text     string
	Range    *position.Range
}

// Logger collects diagnostics across a single engine operation (parsing a
// paste, running a plugin hook, ...).
type Logger struct {
	errors   []error
	warnings []error
	infos    []error
}

// AppendError records a fatal condition for the current operation.
func (l *Logger) AppendError(err error) {
	if err != nil {
		l.errors = append(l.errors, err)
	}
}

// AppendWarning records a recoverable condition.
func (l *Logger) AppendWarning(err error) {
	if err != nil {
		l.warnings = append(l.warnings, err)
	}
}

// AppendInfo records an informational note.
func (l *Logger) AppendInfo(err error) {
	if err != nil {
		l.infos = append(l.infos, err)
	}
}

// HasErrors reports whether any error has been recorded.
func (l *Logger) HasErrors() bool { return len(l.errors) > 0 }

// Errors returns the recorded errors.
func (l *Logger) Errors() []error { return l.errors }

// Diagnostics drains every bucket in severity order, matching
// handler.Handler.Diagnostics.
func (l *Logger) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, len(l.errors)+len(l.warnings)+len(l.infos))
	for _, e := range l.errors {
		out = append(out, toDiagnostic(SeverityError, e))
	}
	for _, e := range l.warnings {
		out = append(out, toDiagnostic(SeverityWarning, e))
	}
	for _, e := range l.infos {
		out = append(out, toDiagnostic(SeverityInfo, e))
	}
	return out
}

// Reset clears every bucket, reusing the Logger for the next operation.
func (l *Logger) Reset() {
	l.errors = l.errors[:0]
	l.warnings = l.warnings[:0]
	l.infos = l.infos[:0]
}

func toDiagnostic(sev Severity, err error) Diagnostic {
	d := Diagnostic{Severity: sev, Text: err.Error()}
	if as, ok := err.(interface{ Range() position.Range }); ok {
		r := as.Range()
		d.Range = &r
	}
	return d
}
