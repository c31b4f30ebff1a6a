// Command seed provisions the out-of-band admin account and a starter
// catalog. Safe to run repeatedly: the admin is only created when missing and
// sweets are only inserted into an empty collection.
package main

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mithaighar/sweetshop-api/internal/core/domain"
	"github.com/mithaighar/sweetshop-api/internal/core/ports"
	mongodb "github.com/mithaighar/sweetshop-api/internal/infrastructure/db/mongo"
	"github.com/mithaighar/sweetshop-api/internal/pkg/config"
	"github.com/mithaighar/sweetshop-api/pkg/logger"
)

const (
	adminEmail    = "admin@sweetshop.com"
	adminPassword = "admin123"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := mongodb.NewUserRepository(db)
	sweets := mongodb.NewSweetRepository(db)

	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := sweets.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("sweet index creation failed")
	}

	if _, err := users.FindByEmail(ctx, adminEmail); err == nil {
		log.Info().Str("email", adminEmail).Msg("admin already exists")
	} else if errors.Is(err, domain.ErrUserNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash admin password")
		}
		now := time.Now().UTC()
		if _, err := users.Create(ctx, &domain.User{
			Username:     "admin",
			Email:        adminEmail,
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			log.Fatal().Err(err).Msg("create admin")
		}
		log.Info().Str("email", adminEmail).Msg("admin created")
	} else {
		log.Fatal().Err(err).Msg("admin lookup failed")
	}

	existing, err := sweets.List(ctx, ports.ListSweetsFilter{})
	if err != nil {
		log.Fatal().Err(err).Msg("sweet lookup failed")
	}
	if len(existing) > 0 {
		log.Info().Int("count", len(existing)).Msg("sweets already exist")
		return
	}

	starter := []domain.Sweet{
		{Name: "Motichoor Laddu", Category: domain.CategoryLaddu, Price: 20, Quantity: 150},
		{Name: "Kaju Barfi", Category: domain.CategoryBarfi, Price: 50, Quantity: 100},
		{Name: "Kesar Jalebi", Category: domain.CategoryJalebi, Price: 30, Quantity: 200},
	}
	for i := range starter {
		if _, err := sweets.Create(ctx, &starter[i]); err != nil {
			log.Fatal().Err(err).Str("name", starter[i].Name).Msg("insert sweet")
		}
	}
	log.Info().Int("count", len(starter)).Msg("starter sweets inserted")
}
