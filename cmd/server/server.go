package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/conduit/config"
	"github.com/zucenko/conduit/levels"
	"github.com/zucenko/conduit/server"
	"github.com/zucenko/conduit/store"
)

type Server struct {
	router       *way.Router
	VerifyServer *server.VerifyServer
}

func main() {
	cfgPath := flag.String("config", "", "yaml config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.SetupLogging()

	lvls, err := levels.Load(levels.Open(cfg.LevelsDir))
	if err != nil {
		log.Fatalf("levels: %v", err)
	}
	st, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := Server{
		VerifyServer: server.NewVerifyServer(lvls, store.NewProfile(st), cfg.Server.StepInterval, cfg.Server.MaxCycles),
	}
	go s.VerifyServer.Loop(ctx)
	s.routes()

	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.Server.Port), Handler: s.router}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	log.WithFields(log.Fields{"port": cfg.Server.Port, "levels": len(lvls), "store": cfg.Store.Driver}).
		Info("verification server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalln(err)
	}
}
