package mux

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kierki-server/internal/auditlog"
	"kierki-server/pkg/deck"
	"kierki-server/pkg/game"
	"kierki-server/pkg/room"
)

func testTable(t *testing.T) *room.Table {
	t.Helper()

	d := deck.New()
	rec := game.DealRecord{Number: 1, Leader: game.North}
	seat := 0
	for d.CanDraw(1) {
		card, err := d.Draw()
		if err != nil {
			t.Fatal(err)
		}

		rec.Hands[seat].AddCard(card)
		seat = (seat + 1) % 4
	}

	return room.NewTable([]game.DealRecord{rec}, time.Second, auditlog.New())
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int) {
	t.Helper()

	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Error(err)
		return
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := ioutil.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
		}
	}
}
