//go:build unix

package main

import (
	"os"
	"os/signal"
	"syscall"
)

// focusSignals reports Ctrl-Z (SIGTSTP) as leaving the quiz. The process is
// not suspended while the quiz runs.
func focusSignals() (<-chan struct{}, func()) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTSTP)

	out := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sig:
				select {
				case out <- struct{}{}:
				default:
				}
			case <-done:
				return
			}
		}
	}()
	return out, func() {
		signal.Stop(sig)
		close(done)
	}
}
