package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/resumeroast/internal/buildinfo"
	"github.com/dmitrijs2005/resumeroast/internal/client/cli"
	"github.com/dmitrijs2005/resumeroast/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// missing .env is fine, env vars and flags still apply
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
