// Package log is the logging abstraction used by the compositing pipeline.
//
// The pipeline only sees the Logger interface. The CLI plugs in the zerolog
// adapter; tests and library callers that want silence use the no-op logger:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	quiet := log.NewNoopLogger()
//
// Fields are typed key/value pairs so adapters can map them onto their own
// structured event API without reflection for the common cases.
package log
