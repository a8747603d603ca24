package main

import (
	"github.com/cinepedia/scraper/internal/server"
	"github.com/cinepedia/scraper/internal/util"
	"github.com/cinepedia/scraper/pkg/logger"
	"github.com/cinepedia/scraper/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  debug,
		Prefix: "server",
	})
	logger.Init(consoleLogger)

	server.Init()
}
