package main

import (
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/EduardoxDev/Digital-Banking-System/cmd/httpserver"
	"github.com/EduardoxDev/Digital-Banking-System/internal/auditservice"
	"github.com/EduardoxDev/Digital-Banking-System/internal/eventpublisher"
	"github.com/EduardoxDev/Digital-Banking-System/internal/middleware"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/configpkg"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	notifier, err := eventpublisher.Connect(config.NATSAddress, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to nats")
	}
	defer notifier.Close()

	audit := auditservice.New(logger)

	sub, err := audit.Subscribe(notifier.Conn())
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot subscribe audit service")
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil {
			logger.Error().Err(err).Msg("cannot unsubscribe audit service")
		}
	}()

	server, err := httpserver.New(conn, notifier, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
