package socketiograph

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/specialistvlad/topicprobe/internal/config"
	"github.com/specialistvlad/topicprobe/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// conn is the part of a socket.io connection the client relies on.
type conn interface {
	emit(event string, timeout time.Duration, args ...any) error
	on(event string, listener func(...any))
	connected() bool
	id() string
	close()
}

// socketConn adapts *socket.Socket. Timeout sets a flag on the socket that
// the next Emit consumes, so the pair must not interleave.
type socketConn struct {
	mu sync.Mutex
	s  *socket.Socket
}

func (c *socketConn) emit(event string, timeout time.Duration, args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Timeout(timeout).Emit(event, args...)
}

func (c *socketConn) on(event string, listener func(...any)) {
	c.s.On(types.EventName(event), listener)
}

func (c *socketConn) connected() bool { return c.s.Connected() }
func (c *socketConn) id() string      { return c.s.Id() }
func (c *socketConn) close()          { c.s.Disconnect() }

// connect opens the socket and waits for the namespace handshake.
func connect(ctx context.Context, cfg config.Introspection) (*socketConn, error) {
	logger := ctxlog.FromContext(ctx).With("backend", config.BackendSocketIO, "url", cfg.URL)
	logger.Info("Connecting to introspection bridge...")

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("URL %q must include scheme and host", cfg.URL)
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespaceOrRoot(cfg.Namespace), opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to introspection bridge", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("Connection attempt failed", "error", err)
		select {
		case connectChan <- err:
		default:
		}
	})

	io.Connect()

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &socketConn{s: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-timer.C:
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", timeout)
	}
}

func namespaceOrRoot(ns string) string {
	if ns == "" {
		return "/"
	}
	return ns
}
