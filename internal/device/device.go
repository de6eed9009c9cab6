package device

import (
	"context"
	"errors"
)

// Failure kinds surfaced by a device session. Transport errors are wrapped so
// callers can match them with errors.Is.
var (
	ErrConnection    = errors.New("device connection failed")
	ErrCommunication = errors.New("device communication failed")
)

// Credentials identify one device and the account used to manage it.
type Credentials struct {
	Host     string
	Username string
	Password string
}

// Session executes management commands against a connected device.
type Session interface {
	// Call runs command on the resource at path and returns the reply rows.
	Call(ctx context.Context, path, command string, params map[string]string) ([]map[string]string, error)
	Close() error
}

// Connector establishes authenticated sessions.
type Connector interface {
	Connect(ctx context.Context, creds Credentials) (Session, error)
}

// Opener hands out a fresh session for a single call site. Every session it
// returns must be closed by the caller.
type Opener interface {
	Open(ctx context.Context) (Session, error)
}

type boundOpener struct {
	connector Connector
	creds     Credentials
}

// Bind returns an Opener that connects to creds.Host through connector.
func Bind(connector Connector, creds Credentials) Opener {
	return &boundOpener{connector: connector, creds: creds}
}

func (b *boundOpener) Open(ctx context.Context) (Session, error) {
	return b.connector.Connect(ctx, b.creds)
}
