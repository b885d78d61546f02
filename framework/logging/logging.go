// Package logging builds the application logger from LogConfig.
//
//	// Laravel: config/logging.php → Log::channel('stack')
//	log := logging.New(cfg.Log)
//	log.WithField("abstract", "cache").Debug("built")
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-ioc/framework/config"
)

// New returns a logger writing to stderr.
func New(cfg config.LogConfig) *logrus.Logger {
	return NewWithOutput(cfg, os.Stderr)
}

// NewWithOutput returns a logger writing to out. Unknown levels fall back to
// info, unknown formats to text.
func NewWithOutput(cfg config.LogConfig, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(Level(cfg.Level))

	switch strings.ToLower(cfg.Format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// Level parses a logrus level name.
func Level(name string) logrus.Level {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
