package cliconfig

import (
	"io"
	"os"

	"github.com/bft-labs/composite/pkg/log"
)

// Logger returns the console logger used before configuration is loaded.
func Logger() *log.ZerologAdapter {
	return log.NewZerologAdapter()
}

// NewLogger builds a console logger at the configured level, writing to w
// (stderr if nil).
func NewLogger(w io.Writer, level string) (*log.ZerologAdapter, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewConsoleAdapter(w, lvl), nil
}
