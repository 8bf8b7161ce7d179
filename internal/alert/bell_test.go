package alert

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
)

func quietLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestBellRunsDetached(t *testing.T) {
	bell, err := NewBell(1, io.Discard, quietLogger())
	if err != nil {
		t.Fatalf("new bell: %v", err)
	}
	defer bell.Close()

	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	bell.ring = func() error {
		defer wg.Done()
		<-release
		return nil
	}

	done := make(chan struct{})
	go func() {
		bell.Alert()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Alert blocked on the ringing work")
	}
	close(release)
	wg.Wait()
}

func TestBellSwallowsFailures(t *testing.T) {
	bell, err := NewBell(2, io.Discard, quietLogger())
	if err != nil {
		t.Fatalf("new bell: %v", err)
	}
	defer bell.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	calls := 0
	var mu sync.Mutex
	bell.ring = func() error {
		defer wg.Done()
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			panic("no audio device")
		}
		return errors.New("unsupported backend")
	}

	bell.Alert()
	bell.Alert()
	wg.Wait()
}
