package mux

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"kierki-server/pkg/room"
)

func TestTableWSHandler(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t)
	ts := httptest.NewServer(NewMux("", tbl))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/table/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	defer conn.Close()

	var status room.Status
	a.NoError(conn.ReadJSON(&status))
	a.Equal(tbl.Status().Name, status.Name)
	a.Equal(1, status.Deals)
}
