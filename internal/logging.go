// Package internal holds process setup shared by the tramline commands.
package internal

import (
	"io"
	"log"
	"os"
)

// InitLogging sends the standard logger to stdout with microsecond timestamps.
func InitLogging() {
	InitLoggingTo(os.Stdout)
}

// InitLoggingTo sends the standard logger to w.
func InitLoggingTo(w io.Writer) {
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
