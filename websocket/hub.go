package websocket

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Bzzmn/Foundry-Raffle/controllers"
	"github.com/Bzzmn/Foundry-Raffle/models"
)

// ServeWs handles WebSocket requests from clients
func ServeWs(h *models.Hub, w http.ResponseWriter, r *http.Request) {
	var upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// Allow all origins for simplicity; adjust in production
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	client := &models.Client{Conn: conn, Send: make(chan models.WSMessage, 256)}
	h.Register <- client

	// Start read and write pumps
	go client.WritePump()
	go client.ReadPump(h)

	// Send the current raffle state to the newly connected client
	go func() {
		raffle := controllers.GetCurrentRaffle()
		if raffle != nil {
			client.Send <- models.WSMessage{
				Event: "current_raffle",
				Data:  raffle,
			}
			return
		}
		client.Send <- models.WSMessage{
			Event: "no_active_raffle",
			Data:  nil,
		}
	}()
}
