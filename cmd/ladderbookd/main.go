// Command ladderbookd runs the matching engine behind the demo TCP
// front end. Adapted from the teacher's cmd/main.go: the same
// signal.NotifyContext-based shutdown wiring, now starting
// demosrv.Server over an engine.Engine instead of fenrir's net.Server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ladderbook/internal/demosrv"
	"ladderbook/internal/engine"
)

func main() {
	addr := flag.String("addr", "0.0.0.0:9001", "address to listen on")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	eng := engine.New()
	srv := demosrv.New(*addr, eng)

	go func() {
		if err := srv.Run(ctx); err != nil {
			log.Error().Err(err).Msg("ladderbookd: server exited")
		}
	}()

	log.Info().Str("addr", *addr).Msg("ladderbookd: started")
	<-ctx.Done()
}
