package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Finisher restores the terminal; tcell.Screen satisfies it
type Finisher interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finisher
	crashOut      io.Writer = os.Stderr
	crashExit               = os.Exit
)

// RegisterCrashTerminal sets the screen torn down before a crash report is printed
func RegisterCrashTerminal(t Finisher) {
	crashMu.Lock()
	crashTerminal = t
	crashMu.Unlock()
}

// HandleCrash restores the terminal, prints the panic value with its stack and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	t := crashTerminal
	crashTerminal = nil
	crashMu.Unlock()
	if t != nil {
		t.Fini()
	}

	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())
	crashExit(1)
}

// Go runs fn in a goroutine whose panics go through HandleCrash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
