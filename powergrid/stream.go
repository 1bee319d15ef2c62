package powergrid

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/net/websocket"
	"golang.org/x/sync/errgroup"
)

// Handlers are called for each frame the backend pushes down a stream.
// Any of them may be nil. They are called from the stream's reader
// goroutine one at a time.
type Handlers struct {
	// Snapshot is called with each new grid snapshot (the backend pushes
	// one per simulation tick)
	Snapshot func(*Snapshot)

	// Ack is called when a command sent with Send succeeded
	Ack func(action string)

	// Error is called when a command sent with Send was rejected
	Error func(msg string)
}

// frame is the union of everything the backend sends on the websocket
type frame struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Action string `json:"action"`
	Error  string `json:"error"`
}

// Stream is a live websocket connection to one grid
type Stream struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

// Stream dials the websocket for gridID
func (c *Client) Stream(ctx context.Context, gridID string) (*Stream, error) {
	wsURL, err := c.StreamURL(gridID)
	if err != nil {
		return nil, err
	}
	return Dial(ctx, wsURL, c.base)
}

// Dial connects to a grid websocket at wsURL
func Dial(ctx context.Context, wsURL, origin string) (*Stream, error) {
	cfg, err := websocket.NewConfig(wsURL, origin)
	if err != nil {
		return nil, errors.Wrapf(err, "websocket config for %s", wsURL)
	}
	conn, err := cfg.DialContext(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing %s", wsURL)
	}
	return &Stream{conn: conn}, nil
}

// Send a command to the backend. The backend answers on the stream with
// an ack or error frame rather than a snapshot.
func (s *Stream) Send(cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return errors.Wrap(websocket.JSON.Send(s.conn, cmd), "sending command")
}

// Close the underlying connection
func (s *Stream) Close() error {
	return s.conn.Close()
}

// Run reads frames until ctx is done or the backend hangs up, dispatching
// each to h. The connection is closed when Run returns. Cancelling ctx or
// a clean hang up is not an error.
func (s *Stream) Run(ctx context.Context, h Handlers) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// unblocks the reader below
		<-gctx.Done()
		_ = s.conn.Close()
		return nil
	})

	g.Go(func() error {
		defer cancel()
		for {
			var raw []byte
			err := websocket.Message.Receive(s.conn, &raw)
			if err != nil {
				if err == io.EOF || ctx.Err() != nil {
					return nil
				}
				return errors.Wrap(err, "reading frame")
			}
			if err := dispatch(raw, h); err != nil {
				return err
			}
		}
	})

	return g.Wait()
}

// dispatch decodes one frame & calls the matching handler
func dispatch(raw []byte, h Handlers) error {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return errors.Wrap(err, "decoding frame")
	}

	switch {
	case f.ID != "":
		snap := &Snapshot{}
		if err := json.Unmarshal(raw, snap); err != nil {
			return errors.Wrap(err, "decoding snapshot")
		}
		if h.Snapshot != nil {
			h.Snapshot(snap)
		}
	case f.Status != "":
		if h.Ack != nil {
			h.Ack(f.Action)
		}
	case f.Error != "":
		if h.Error != nil {
			h.Error(f.Error)
		}
	}
	return nil
}
