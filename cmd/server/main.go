package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"factureme/impl/auth"
	"factureme/impl/core"
	"factureme/internal/config"
	"factureme/internal/database"
	"factureme/internal/http-server/api"
	"factureme/lib/logger"
	"factureme/lib/sl"
)

func main() {
	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	log := logger.SetupLogger(conf.Env, *logPath)
	log.Info("starting factureme", slog.String("config", *configPath), slog.String("env", conf.Env))

	loc, err := time.LoadLocation(conf.Location)
	if err != nil {
		log.With(
			slog.String("location", conf.Location),
			sl.Err(err),
		).Warn("unknown location, using UTC")
		loc = time.UTC
	}

	ctx := context.Background()
	db, err := database.NewMongoClient(ctx, conf)
	if err != nil {
		log.Error("mongo client", sl.Err(err))
		return
	}
	defer db.Close(ctx)
	log.With(
		slog.String("host", conf.Mongo.Host),
		slog.String("database", conf.Mongo.Database),
	).Info("mongo client connected")

	if err = db.EnsureIndexes(ctx); err != nil {
		log.Error("mongo indexes", sl.Err(err))
		return
	}

	authService := auth.New(db)
	handler := core.New(db, authService, loc, log)

	// blocking
	if err = api.New(conf, log, handler); err != nil {
		log.Error("server start", sl.Err(err))
	}

	log.Error("service stopped")
}
