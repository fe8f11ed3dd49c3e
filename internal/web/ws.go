package web

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ytget/tunevault/internal/util"
)

var upgrader = websocket.Upgrader{
	// The server only listens locally; the desktop front-end connects from
	// a file:// or localhost origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the connection, sends the current session
// snapshot and then streams download events until the client disconnects
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		util.WarnLog("[ws] upgrade failed: %v", err)
		return
	}

	// The snapshot is written before the conn joins the hub; once registered,
	// only the broadcasting goroutine may write to it.
	if session, ok := h.downloads.ActiveSession(); ok {
		if err := conn.WriteJSON(session.Snapshot()); err != nil {
			util.DebugLog("[ws] initial snapshot write: %v", err)
			conn.Close()
			return
		}
	}

	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	// Read loop only to observe the close; clients never send data
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
