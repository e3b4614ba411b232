// Package listener provides a resilient net.Listener wrapper for the relay's HTTP
// server. The submit endpoint is exposed to the public internet, so transient accept
// errors must not bring the server down.
package listener

import (
	"errors"
	"log"
	"net"
)

// RelayListener wraps net.Listener to be resilient, recoverable errors are handled
// gracefully instead of crashing the server loop.
type RelayListener struct {
	net.Listener
	// OnError is called for every recoverable accept error. When nil the error is
	// written to the standard logger. Fatal errors (closed listener) propagate either way.
	OnError func(err error)
}

func NewRelayListener(listenerToWrap net.Listener) *RelayListener {
	return &RelayListener{Listener: listenerToWrap}
}

// Accept will gracefully handle recoverable errors and continue without crashing the server
func (l *RelayListener) Accept() (net.Conn, error) {
	for {
		conn, err := l.Listener.Accept()
		if err != nil {
			// If the listener was closed, this is a fatal error. Propagate it.
			if errors.Is(err, net.ErrClosed) {
				return nil, err
			}

			// For any other error, report it and continue to the next connection attempt.
			if l.OnError != nil {
				l.OnError(err)
			} else {
				log.Printf("Recoverable listener error, connection rejected: %v", err)
			}
			continue
		}
		return conn, nil
	}
}
