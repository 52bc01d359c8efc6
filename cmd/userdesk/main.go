// Package main starts the userdesk bootstrap process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	userdeskcmd "github.com/louisbranch/userdesk/internal/cmd/userdesk"
)

func main() {
	cfg, err := userdeskcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[USERDESK] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := userdeskcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
}
