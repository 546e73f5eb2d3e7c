package utils

import (
	"fmt"
	"strings"
)

// AddToLogMessage appends one entry to an operation's log buffer
func AddToLogMessage(logMessagesBuilder *strings.Builder, strToAdd string) {
	if logMessagesBuilder == nil {
		return
	}
	logMessagesBuilder.WriteString(strToAdd)
	logMessagesBuilder.WriteString(";\n")
}

// AddToLogMessagef is AddToLogMessage with formatting
func AddToLogMessagef(logMessagesBuilder *strings.Builder, format string, args ...interface{}) {
	AddToLogMessage(logMessagesBuilder, fmt.Sprintf(format, args...))
}

// Truncate shortens s to at most n bytes for log output
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
