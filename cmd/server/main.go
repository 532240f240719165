package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ledgerflow/ledgerflow/cmd/httpserver"
	"github.com/ledgerflow/ledgerflow/internal/middleware"
	"github.com/ledgerflow/ledgerflow/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	server, err := httpserver.New(logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Str("address", config.ServerAddress).Msg("starting server")

	err = http.ListenAndServe(config.ServerAddress, server)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
