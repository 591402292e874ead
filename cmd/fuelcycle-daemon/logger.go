package main

import (
	"fmt"
	"sort"
	"strings"
)

var levelRank = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// consoleLogger writes structured log lines to stdout, filtered by level
type consoleLogger struct {
	minLevel int
}

func newConsoleLogger(level string) *consoleLogger {
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		rank = levelRank["INFO"]
	}
	return &consoleLogger{minLevel: rank}
}

func (l *consoleLogger) Log(level, message string, metadata map[string]interface{}) {
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok || rank < l.minLevel {
		return
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", strings.ToUpper(level), message)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, metadata[k])
	}
	fmt.Println(sb.String())
}
