package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/seabook/internal/app"
	"github.com/dmitrijs2005/seabook/internal/buildinfo"
	"github.com/dmitrijs2005/seabook/internal/config"

	_ "modernc.org/sqlite"
)

func main() {
	buildinfo.PrintBuildData(os.Stderr)

	ctx := context.Background()
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	a, err := app.NewApp(ctx, cfg, os.Stdin, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
