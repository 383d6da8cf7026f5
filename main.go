package main

import (
	"github.com/moringa/darasa-api/app"
	"github.com/moringa/darasa-api/utils/logger"
)

func main() {
	// setup and run app
	if err := app.SetupAndRunServer(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
