package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10
const statusPeriod = time.Second

// getTableWS streams table status snapshots to an observer until the game
// ends or the observer hangs up
func (m *Mux) getTableWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		m.webSocketWriteLoop(conn, gone)
		_ = conn.Close()
	}
}

func (m *Mux) webSocketWriteLoop(conn *websocket.Conn, gone chan struct{}) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	status := time.NewTicker(statusPeriod)
	defer status.Stop()

	if err := m.writeStatus(conn); err != nil {
		return
	}

	for {
		select {
		case <-status.C:
			if err := m.writeStatus(conn); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-m.table.GameOver():
			// one final snapshot, then a normal close
			_ = m.writeStatus(conn)
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"))
			return
		case <-gone:
			return
		}
	}
}

func (m *Mux) writeStatus(conn *websocket.Conn) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(m.table.Status())
}
