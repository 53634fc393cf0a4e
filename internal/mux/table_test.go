package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"kierki-server/pkg/room"
)

func TestTableHandler(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t)
	ts := httptest.NewServer(NewMux("", tbl))
	defer ts.Close()

	var status room.Status
	assertGet(t, ts, "/table", &status, 200)
	a.Equal(tbl.Status().Name, status.Name)
	a.Equal(1, status.Deals)
	a.False(status.Ended)
	a.Empty(status.Occupied)
}
