package hub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"

	"github.com/yourorg/stationboard/internal/schedule"
)

// Hub maneja las conexiones WebSocket del tablero en vivo: cada snapshot que
// produce el sondeador se empuja a todos los clientes conectados, y un cliente
// recién conectado recibe de entrada el último snapshot de cada terminal para
// no arrancar con el tablero en blanco.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn

	mu     sync.RWMutex
	latest map[string][]byte // código de terminal → último mensaje emitido
}

// New crea el hub y arranca su loop de despacho.
func New() *Hub {
	h := &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		latest:     make(map[string][]byte),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("🔌 [HUB] Cliente conectado. Total: %d", len(h.clients))
			h.mu.RLock()
			for _, msg := range h.latest {
				if err := client.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			h.mu.RUnlock()

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			log.Printf("🔌 [HUB] Cliente desconectado. Total: %d", len(h.clients))

		case message := <-h.broadcast:
			for client := range h.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					log.Printf("Error enviando snapshot al cliente: %v", err)
					client.Close()
					delete(h.clients, client)
				}
			}
		}
	}
}

// boardMessage es el sobre con el que viaja cada snapshot por el socket.
type boardMessage struct {
	Type     string            `json:"type"`
	Station  string            `json:"station"`
	Snapshot schedule.Snapshot `json:"snapshot"`
}

func encodeBoardMessage(snap schedule.Snapshot) ([]byte, error) {
	return json.Marshal(boardMessage{
		Type:     "board",
		Station:  snap.StationCode,
		Snapshot: snap,
	})
}

// BroadcastSnapshot empuja un snapshot a todos los clientes conectados y lo
// recuerda como el último de su terminal. Si el canal está lleno el mensaje
// se salta: el siguiente tick trae uno más fresco.
func (h *Hub) BroadcastSnapshot(snap schedule.Snapshot) {
	data, err := encodeBoardMessage(snap)
	if err != nil {
		log.Printf("Error serializando snapshot para el hub: %v", err)
		return
	}

	h.mu.Lock()
	h.latest[snap.StationCode] = data
	h.mu.Unlock()

	select {
	case h.broadcast <- data:
	default:
	}
}

// Handle atiende una conexión WebSocket de Fiber hasta que el cliente cierra.
func (h *Hub) Handle(conn *websocket.Conn) {
	h.register <- conn
	defer func() {
		h.unregister <- conn
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
