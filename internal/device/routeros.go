package device

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"

	"github.com/go-routeros/routeros/v3"
)

// DefaultAPIPort is the plaintext RouterOS API port.
const DefaultAPIPort = 8728

// RouterOS connects to MikroTik devices over the RouterOS API.
type RouterOS struct {
	Port int
	TLS  bool
}

// NewRouterOS creates a RouterOS connector. A zero port selects DefaultAPIPort.
func NewRouterOS(port int, useTLS bool) *RouterOS {
	if port == 0 {
		port = DefaultAPIPort
	}
	return &RouterOS{Port: port, TLS: useTLS}
}

// Connect dials and logs in to creds.Host.
func (r *RouterOS) Connect(ctx context.Context, creds Credentials) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	address := net.JoinHostPort(creds.Host, strconv.Itoa(r.Port))

	client, err := r.dial(ctx, address, creds)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnection, address, err)
	}

	return &routerOSSession{
		runner: client,
		close:  func() { client.Close() },
	}, nil
}

type dialResult struct {
	client *routeros.Client
	err    error
}

// dial logs in and gives up as soon as ctx ends. A login that completes after
// that is closed.
func (r *RouterOS) dial(ctx context.Context, address string, creds Credentials) (*routeros.Client, error) {
	done := make(chan dialResult, 1)
	go func() {
		var res dialResult
		if r.TLS {
			res.client, res.err = routeros.DialTLSContext(ctx, address, creds.Username, creds.Password, &tls.Config{ServerName: creds.Host})
		} else {
			res.client, res.err = routeros.DialContext(ctx, address, creds.Username, creds.Password)
		}
		done <- res
	}()

	select {
	case res := <-done:
		if res.err != nil && ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ctx.Err(), res.err)
		}
		return res.client, res.err
	case <-ctx.Done():
		go func() {
			if res := <-done; res.client != nil {
				res.client.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

type commandRunner interface {
	RunArgsContext(ctx context.Context, sentence []string) (*routeros.Reply, error)
}

type routerOSSession struct {
	runner commandRunner
	close  func()
}

func (s *routerOSSession) Call(ctx context.Context, path, command string, params map[string]string) ([]map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommunication, err)
	}

	reply, err := s.runner.RunArgsContext(ctx, sentence(path, command, params))
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrCommunication, path, command, err)
	}

	rows := make([]map[string]string, 0, len(reply.Re))
	for _, re := range reply.Re {
		rows = append(rows, re.Map)
	}
	return rows, nil
}

func (s *routerOSSession) Close() error {
	s.close()
	return nil
}

// sentence builds an API sentence such as
// "/interface/wireless/set =numbers=0 =scan-list=5180,5200".
func sentence(path, command string, params map[string]string) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	words := make([]string, 0, len(params)+1)
	words = append(words, strings.TrimSuffix(path, "/")+"/"+command)
	for _, k := range keys {
		words = append(words, "="+k+"="+params[k])
	}
	return words
}
