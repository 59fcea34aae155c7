package websocket

import (
	"net/http"

	gorillaWS "github.com/gorilla/websocket"

	commonhttp "github.com/givehub/server/internal/common/http"
	"github.com/givehub/server/internal/common/logger"
)

var upgrader = gorillaWS.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func NewHandler(hub *Hub, log *logger.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/feed", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			commonhttp.WriteMethodNotAllowed(w)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warnf("feed upgrade failed: %v", err)
			return
		}

		client := NewClient(hub, conn, log)
		hub.Register(client)
		client.Start()
	})
	return mux
}
