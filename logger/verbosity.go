package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
//
// These map the cobra -v count flag onto zap levels:
//
//	lumen search foo         # results and errors only
//	lumen -v search foo      # + request summaries
//	lumen -vv search foo     # + request/response details, retry decisions
const (
	VerbosityUser  = 0 // No flags: results and errors only
	VerbosityInfo  = 1 // -v: + request summaries, pagination progress
	VerbosityDebug = 2 // -vv: + full request details, retry/backoff decisions
)

// VerbosityToLevel maps verbosity flags (-v, -vv) to zap log levels
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
