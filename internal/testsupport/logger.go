// Package testsupport holds small helpers shared by package tests.
package testsupport

import "research-agent/internal/application/port/output"

type nopLogger struct{}

// Logger returns a LoggerPort that discards everything.
func Logger() output.LoggerPort { return nopLogger{} }

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func (l nopLogger) WithField(string, any) output.LoggerPort     { return l }
func (l nopLogger) WithFields(map[string]any) output.LoggerPort { return l }

func (nopLogger) Close() error { return nil }
