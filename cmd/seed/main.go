package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/service"
	"github.com/topicosweb/backend/internal/infrastructure/db/mongo"
	"github.com/topicosweb/backend/internal/pkg/config"
	"github.com/topicosweb/backend/internal/seed"
	"github.com/topicosweb/backend/pkg/logger"
)

func main() {
	var (
		users = flag.Bool("users", false, "create the admin, analyst and visitor demo accounts")
		data  = flag.Bool("data", false, "load sample construction projects, vehicles and access records")
		reset = flag.Bool("reset", false, "clear projects, vehicles and access records before loading data")
	)
	flag.Parse()

	cfg := config.MustLoad()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "topicos-seed"})

	if !*users && !*data && !*reset {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "topicos-seed",
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	projectStore := mongo.NewStore[domain.ConsProject](db, domain.ResourceConsProject.Collection())
	vehicleStore := mongo.NewStore[domain.Vehicle](db, domain.ResourceVehicle.Collection())
	userStore := mongo.NewStore[domain.User](db, domain.ResourceUser.Collection())

	seeder := seed.New(
		service.NewUserService(userStore),
		service.NewConsProjectService(projectStore),
		service.NewVehicleService(vehicleStore, projectStore),
		service.NewAccessService(mongo.NewAccessRepository(db), userStore, mongo.NewResolver(db), log),
		log,
	)

	if *reset {
		cols := []string{
			domain.ResourceConsProject.Collection(),
			domain.ResourceVehicle.Collection(),
			mongo.CollectionAccesses,
		}
		if err := mongo.ClearCollections(ctx, db, cols...); err != nil {
			log.Fatal().Err(err).Msg("reset")
		}
		log.Info().Strs("collections", cols).Msg("collections cleared")
	}

	if *users {
		n, err := seeder.Users(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("seed users")
		}
		log.Info().Int("created", n).Msg("users seeded")
	}

	if *data {
		if _, err := seeder.Data(ctx); err != nil {
			log.Fatal().Err(err).Msg("seed data")
		}
	}
}
