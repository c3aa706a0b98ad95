package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// The bridge is a local dev tool; any origin may connect.
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleOverlay runs one overlay session for the lifetime of the connection.
// Every client message gets exactly one reply.
func (s *Server) handleOverlay(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	sess, err := newSession(*s.cfg, s.scene, log.Default())
	if err != nil {
		log.Printf("Failed to start overlay session: %v", err)
		conn.WriteJSON(serverMessage{Type: msgError, Error: err.Error()})
		return
	}
	defer sess.close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Overlay client disconnected: %v", err)
			}
			return
		}

		var reply serverMessage
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			reply = sess.fail(err)
		} else {
			reply = sess.handle(msg)
		}

		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("Failed to send overlay update: %v", err)
			return
		}
	}
}
