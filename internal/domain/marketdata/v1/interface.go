package marketdatav1

import "context"

// CredentialProvider hands out the short-lived realtime approval key.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=marketdatav1_mock
type CredentialProvider interface {
	RealtimeCredential(ctx context.Context) (string, bool)
}

// Listener receives socket events. Calls for one connection are made from a
// single read loop, in order.
type Listener interface {
	OnOpen()
	// OnMessage delivers a message fragment; final marks the last one.
	OnMessage(data []byte, final bool)
	OnError(err error)
	OnClose(code int, reason string)
}

// Conn is a live gateway socket.
type Conn interface {
	WriteMessage(ctx context.Context, data []byte) error
	// Close sends a close frame and releases the socket. The socket is
	// released even when sending the close frame fails.
	Close(ctx context.Context) error
}

// Dialer opens gateway sockets.
type Dialer interface {
	Dial(ctx context.Context, listener Listener) (Conn, error)
}

// TickCache keeps the latest trade per instrument.
type TickCache interface {
	SaveTick(ctx context.Context, tick *Tick) error
	LatestTick(ctx context.Context, instrument string) (*Tick, bool, error)
}

// Publisher fans normalized events out to subscribers.
type Publisher interface {
	PublishTick(ctx context.Context, tick *Tick) error
	PublishDepth(ctx context.Context, depth *Depth) error
}
