//go:build !unix

package main

// No SIGTSTP outside unix; focus loss is never reported.
func focusSignals() (<-chan struct{}, func()) {
	return nil, func() {}
}
