// order_web_socket.go
package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/3laa-812/yes-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsMu guards the client set and, during a broadcast, the writes to
// each connection: a *websocket.Conn allows only one concurrent writer.
var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

func registerClient(conn *websocket.Conn) {
	wsMu.Lock()
	defer wsMu.Unlock()
	wsClients[conn] = true
}

func unregisterClient(conn *websocket.Conn) {
	wsMu.Lock()
	defer wsMu.Unlock()
	delete(wsClients, conn)
}

// OrderWebSocketHandler feeds new orders to connected admin dashboards.
func OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	registerClient(conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			unregisterClient(conn)
			break
		}
	}
}

func broadcastNewOrder(order models.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		return
	}
	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		client.WriteMessage(websocket.TextMessage, data)
	}
}
