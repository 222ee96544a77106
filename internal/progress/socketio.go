package progress

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/burstrank/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	// EventPass is emitted after every pass with {"pass": i, "total": n}.
	EventPass = "pass"
	// EventDone is emitted once with {"passes": n, "elapsed_ms": ms}.
	EventDone = "done"

	connectTimeout = 15 * time.Second
)

// SocketIOOptions configures a SocketIOReporter.
type SocketIOOptions struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
}

// SocketIOReporter emits progress events to a socket.io server, typically a
// dashboard watching long runs.
type SocketIOReporter struct {
	client *socket.Socket
}

// DialSocketIO connects to the server and returns a reporter once the
// connection is established.
func DialSocketIO(ctx context.Context, opts SocketIOOptions) (*SocketIOReporter, error) {
	logger := ctxlog.FromContext(ctx).With("reporter", "socketio", "url", opts.URL)
	logger.Info("Connecting progress reporter...")

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse progress URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("progress URL %q must include scheme and host", opts.URL)
	}

	sopts := socket.DefaultOptions()
	sopts.SetPath(parsedURL.Path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket(opts.Namespace, sopts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Progress reporter connected.", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case connectChan <- err:
		default:
		}
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &SocketIOReporter{client: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(connectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", connectTimeout)
	}
}

// PassCompleted implements Reporter.
func (r *SocketIOReporter) PassCompleted(ctx context.Context, pass, total int) {
	r.emit(ctx, EventPass, map[string]any{"pass": pass, "total": total})
}

// Finished implements Reporter.
func (r *SocketIOReporter) Finished(ctx context.Context, passes int, elapsed time.Duration) {
	r.emit(ctx, EventDone, map[string]any{"passes": passes, "elapsed_ms": elapsed.Milliseconds()})
}

func (r *SocketIOReporter) emit(ctx context.Context, event string, data map[string]any) {
	if !r.client.Connected() {
		ctxlog.FromContext(ctx).Warn("Progress reporter disconnected, dropping event.", "event", event)
		return
	}
	r.client.Emit(event, data)
}

// Close disconnects from the server.
func (r *SocketIOReporter) Close() error {
	r.client.Disconnect()
	return nil
}
