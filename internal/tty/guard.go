// Package tty restores the controlling terminal after an interactive session.
package tty

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"
)

const devTTY = "/dev/tty"

// Guard holds the terminal mode captured before a picker takes over the terminal.
// Release restores it; it is safe to call more than once and from a signal.
type Guard struct {
	once    sync.Once
	restore func()
	stop    func()
}

// Acquire saves the current /dev/tty state and restores it on Release or when
// the process receives SIGINT, SIGTERM, or SIGHUP. Without a terminal the
// guard is a no-op.
func Acquire() *Guard {
	g := newGuard(saveState())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	g.watch(sigs, func() { signal.Stop(sigs) }, reraise)
	return g
}

// watch restores the terminal and then calls onSignal when a signal arrives
// on sigs. Release stops the watch and calls unsubscribe.
func (g *Guard) watch(sigs <-chan os.Signal, unsubscribe func(), onSignal func(os.Signal)) {
	done := make(chan struct{})
	g.stop = func() {
		unsubscribe()
		close(done)
	}

	go func() {
		select {
		case sig := <-sigs:
			g.Release()
			onSignal(sig)
		case <-done:
		}
	}()
}

func newGuard(restore func()) *Guard {
	return &Guard{restore: restore, stop: func() {}}
}

// Release restores the saved terminal state.
func (g *Guard) Release() {
	g.once.Do(func() {
		g.stop()
		g.restore()
	})
}

// saveState returns a func that puts /dev/tty back into its current mode.
func saveState() func() {
	f, err := os.Open(devTTY)
	if err != nil {
		return func() {}
	}
	state, err := term.GetState(int(f.Fd()))
	if err != nil {
		_ = f.Close()
		return func() {}
	}
	return func() {
		_ = term.Restore(int(f.Fd()), state)
		_ = f.Close()
	}
}

// reraise delivers sig again with its default disposition so the exit status
// reflects the signal.
func reraise(sig os.Signal) {
	signal.Reset(sig)
	if p, err := os.FindProcess(os.Getpid()); err == nil {
		_ = p.Signal(sig)
	}
}
