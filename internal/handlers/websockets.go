package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"collageserver/internal/dto"
	"collageserver/internal/logger"
	"collageserver/internal/services"
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ViewWebsocketHandler upgrades a viewer connection, sends the initial-state
// snapshot, then keeps the connection registered with the hub until the
// viewer disconnects.
func ViewWebsocketHandler(manager *services.Manager, hub services.Hub, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		defer connection.Close()

		// Snapshot goes out before registration, so the hub never writes
		// to this connection concurrently with the snapshot write.
		state := manager.InitialState(time.Now())
		if err := connection.WriteJSON(dto.Envelope{Event: dto.EventInitialState, Data: state}); err != nil {
			logger.Error("Failed to send initial state: %v", err)
			return
		}

		hub.Register(connection)
		defer hub.Unregister(connection)

		for {
			_, _, err := connection.ReadMessage()
			if err != nil {
				logger.Info("Viewer disconnected: %v", err)
				break
			}
		}
	}
}
