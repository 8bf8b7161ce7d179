package actionlog

import (
	"bytes"
	"strings"

	log "github.com/sirupsen/logrus"
)

const TimestampLayout = "2006-01-02 15:04:05"

// Formatter writes "YYYY-MM-DD HH:MM:SS [LEVEL] message", one line per entry.
// Fields are ignored; the message already carries the category.
type Formatter struct{}

func (Formatter) Format(e *log.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(e.Time.Format(TimestampLayout))
	b.WriteString(" [")
	b.WriteString(strings.ToUpper(e.Level.String()))
	b.WriteString("] ")
	b.WriteString(strings.ReplaceAll(e.Message, "\n", " "))
	b.WriteByte('\n')
	return b.Bytes(), nil
}
