package main

import (
	"flag"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"kierki-server/internal/auditlog"
	"kierki-server/internal/config"
	"kierki-server/internal/mux"
	"kierki-server/pkg/game"
	"kierki-server/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var (
	addr       = flag.String("addr", "", "the game listen address (overrides the configuration)")
	dealsFile  = flag.String("deals", "", "the deal schedule file (overrides the configuration)")
	timeout    = flag.Int("timeout", 0, "seconds before an unanswered prompt is sent again (overrides the configuration)")
	statusAddr = flag.String("status-addr", "", "the status API listen address (overrides the configuration)")
)

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dealsFile != "" {
		cfg.DealsFile = *dealsFile
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *statusAddr != "" {
		cfg.Status.Addr = *statusAddr
	}

	schedule := loadSchedule(cfg.DealsFile)

	audit := auditlog.New()
	tbl := room.NewTable(schedule, time.Duration(cfg.Timeout)*time.Second, audit)
	tbl.StartShift()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		logrus.WithError(err).Fatal("could not listen")
	}

	logrus.WithFields(logrus.Fields{
		"addr":  ln.Addr().String(),
		"deals": len(schedule),
	}).Info("accepting players")

	if cfg.Status.Addr != "" {
		go serveStatus(cfg.Status.Addr, tbl)
	}

	go acceptLoop(ln, tbl)

	<-tbl.GameOver()
	_ = ln.Close()
	<-tbl.Done()

	if err := audit.Flush(os.Stdout); err != nil {
		logrus.WithError(err).Error("could not write the audit report")
	}
}

func acceptLoop(ln net.Listener, tbl *room.Table) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}

		go tbl.HandleConnection(conn)
	}
}

func loadSchedule(path string) []game.DealRecord {
	file, err := os.Open(path)
	if err != nil {
		logrus.WithError(err).Fatal("could not open the deals file")
	}
	defer file.Close()

	schedule, err := game.ParseSchedule(file)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse the deals file")
	}

	return schedule
}

func serveStatus(addr string, tbl *room.Table) {
	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, tbl))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("status API listening")
	if err := srv.ListenAndServe(); err != nil {
		logrus.WithError(err).Error("status API stopped")
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
