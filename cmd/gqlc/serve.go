package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v2"

	"github.com/shyptr/gqlc/compiler"
)

// serveCommand runs gqlc serve: a whole-program recompile on every
// filesystem poll tick, broadcast to every attached dashboard over a
// websocket connection. It performs no incremental recompilation — every
// tick re-parses and re-resolves both directories from scratch
// (SPEC_FULL.md §A, Non-goals).
func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "recompile on change and push diagnostics to a websocket dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "server-dir", Required: true},
			&cli.StringFlag{Name: "client-dir", Required: true},
			&cli.StringFlag{Name: "addr", Value: ":8765"},
			&cli.DurationFlag{Name: "poll-interval", Value: time.Second},
		},
		Action: func(c *cli.Context) error {
			hub := newDashboardHub()
			go hub.watch(c.Context, c.String("server-dir"), c.String("client-dir"), c.Duration("poll-interval"))

			http.HandleFunc("/dashboard", hub.serveWS)
			log.Printf("gqlc serve: listening on %s, dashboard at ws://%s/dashboard", c.String("addr"), c.String("addr"))
			return http.ListenAndServe(c.String("addr"), nil)
		},
	}
}

// recompileSummary is the payload pushed to every connected dashboard
// after each recompile tick.
type recompileSummary struct {
	OK       bool     `json:"ok"`
	Error    string   `json:"error,omitempty"`
	Queries  int      `json:"queries,omitempty"`
	Mutations int     `json:"mutations,omitempty"`
	Objects  int      `json:"objects,omitempty"`
	Messages []string `json:"messages,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// dashboardHub fans a recompileSummary out to every connected websocket
// client through a mutex-guarded client set, rather than a heavier pub/sub
// dependency. broadcast writes to each connection in turn while holding the
// mutex; each connection's own goroutine only reads, to notice disconnects.
type dashboardHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newDashboardHub() *dashboardHub {
	return &dashboardHub{clients: make(map[*websocket.Conn]bool)}
}

func (h *dashboardHub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("gqlc serve: upgrade failed:", err)
		return
	}
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// Drain and discard anything the dashboard sends; this connection is
	// push-only, but we still need to notice when the peer disconnects.
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *dashboardHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

func (h *dashboardHub) broadcast(summary recompileSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		log.Println("gqlc serve: marshal summary:", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// watch recompiles serverDir/clientDir on every tick and broadcasts the
// result. It never diffs the previous tick's output against the new
// one before recompiling — every tick is a full, independent compile
// (no incremental state is retained between ticks).
func (h *dashboardHub) watch(ctx context.Context, serverDir, clientDir string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.broadcast(recompile(ctx, serverDir, clientDir))
		}
	}
}

func recompile(ctx context.Context, serverDir, clientDir string) recompileSummary {
	serverFiles, err := loadSources(ctx, serverDir)
	if err != nil {
		return recompileSummary{OK: false, Error: err.Error()}
	}
	clientFiles, err := loadSources(ctx, clientDir)
	if err != nil {
		return recompileSummary{OK: false, Error: err.Error()}
	}

	prog, compileErr := compiler.Compile(serverFiles, clientFiles)
	if compileErr != nil {
		return recompileSummary{OK: false, Error: compileErr.Error()}
	}

	return recompileSummary{
		OK:        true,
		Objects:   prog.Server.Objects.Len(),
		Queries:   prog.Server.Queries.Len(),
		Mutations: prog.Server.Mutations.Len(),
	}
}
