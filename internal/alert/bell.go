package alert

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/panjf2000/ants"
	log "github.com/sirupsen/logrus"
)

const macSound = "/System/Library/Sounds/Glass.aiff"

// Bell plays a completion alert on a small worker pool so the update loop
// never waits on it. Every failure is logged at debug level and dropped.
type Bell struct {
	pool   *ants.Pool
	out    io.Writer
	logger *log.Logger
	ring   func() error
}

func NewBell(workers int, out io.Writer, logger *log.Logger) (*Bell, error) {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create alert pool: %w", err)
	}
	b := &Bell{pool: pool, out: out, logger: logger}
	b.ring = b.platformRing
	return b, nil
}

// Alert returns immediately.
func (b *Bell) Alert() {
	if b.pool.Free() == 0 {
		b.logger.Debug("alert dropped: all workers busy")
		return
	}
	if err := b.pool.Submit(b.run); err != nil {
		b.logger.Debugf("alert dropped: %v", err)
	}
}

func (b *Bell) run() {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Debugf("alert panicked: %v", r)
		}
	}()
	if err := b.ring(); err != nil {
		b.logger.Debugf("alert failed: %v", err)
	}
}

func (b *Bell) platformRing() error {
	if runtime.GOOS == "darwin" {
		return exec.Command("afplay", macSound).Run()
	}
	_, err := io.WriteString(b.out, "\a")
	return err
}

func (b *Bell) Close() {
	b.pool.Release()
}

// Silent satisfies the alerter contract without making a sound.
type Silent struct{}

func (Silent) Alert() {}
