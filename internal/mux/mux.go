// Package mux serves the read-only status API for a running table.
package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"

	"kierki-server/pkg/room"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	table   *room.Table
}

// NewMux returns a new HTTP mux observing the given table
func NewMux(version string, table *room.Table) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		table:   table,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())
	r.Methods(http.MethodGet).Path("/table/ws").Handler(this.getTableWS())

	return this
}
