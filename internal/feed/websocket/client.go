package websocket

import (
	"time"

	gorillaWS "github.com/gorilla/websocket"

	"github.com/givehub/server/internal/common/constants"
	"github.com/givehub/server/internal/common/logger"
)

type Client struct {
	hub  *Hub
	conn *gorillaWS.Conn
	send chan []byte
	log  *logger.Logger
}

func NewClient(hub *Hub, conn *gorillaWS.Conn, log *logger.Logger) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, constants.FeedSendBufferSize),
		log:  log,
	}
}

func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// readPump discards inbound frames; its job is pong handling and noticing
// the peer going away.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(constants.FeedPongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(constants.FeedPongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(constants.FeedPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(constants.FeedWriteWait))
			if !ok {
				c.conn.WriteMessage(gorillaWS.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(gorillaWS.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(constants.FeedWriteWait))
			if err := c.conn.WriteMessage(gorillaWS.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
