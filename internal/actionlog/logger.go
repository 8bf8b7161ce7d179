package actionlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"timerdash/internal/clock"
	"timerdash/internal/model"
)

const (
	DefaultDirName  = ".timer_cli"
	DefaultFileName = "timer_cli.log"
)

// Logger appends one structured record per state-changing event.
type Logger struct {
	log   *log.Logger
	clock clock.Clock
}

func New(w io.Writer, c clock.Clock) *Logger {
	return &Logger{log: NewLogrus(w, log.InfoLevel), clock: c}
}

// NewLogrus builds a logrus logger sharing the action log line format.
func NewLogrus(w io.Writer, level log.Level) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(Formatter{})
	logger.SetLevel(level)
	return logger
}

// Record writes "[Category] Action - Details".
func (l *Logger) Record(category model.Category, action, details string) {
	l.log.WithTime(l.clock.Now()).Infof("[%s] %s - %s", category, action, details)
}

// DefaultPath returns $HOME/.timer_cli/timer_cli.log.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DefaultDirName, DefaultFileName), nil
}

// Open creates the log directory if needed and opens path for appending.
func Open(fs afero.Fs, path string) (afero.File, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	file, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open action log: %w", err)
	}
	return file, nil
}
