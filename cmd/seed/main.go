package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/udconnect/udconnect-api/config"
	"github.com/udconnect/udconnect-api/internal/application"
	"github.com/udconnect/udconnect-api/internal/domain/entity"
	pginfra "github.com/udconnect/udconnect-api/internal/infrastructure/postgres"
	"github.com/udconnect/udconnect-api/pkg/apperror"
	"github.com/udconnect/udconnect-api/pkg/helpers"
)

const demoPassword = "password123"

var demoUsers = []application.RegisterInput{
	{Name: "Ana Torres", Email: "ana.torres@udistrital.edu.co", Major: "Ingeniería de Sistemas", IGUser: "ana.t"},
	{Name: "Luis Gómez", Email: "luis.gomez@udistrital.edu.co", Major: "Ingeniería Electrónica"},
	{Name: "Sofía Rojas", Email: "sofia.rojas@udistrital.edu.co", Major: "Matemáticas"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	store := pginfra.NewStore(pool)
	users := application.NewUserService(store, helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL), nil, nil, nil, logger)
	spaces := application.NewSpaceService(store, logger)
	posts := application.NewPostService(store, logger)

	seeded := make([]*entity.User, 0, len(demoUsers))
	for _, in := range demoUsers {
		in.Password = demoPassword
		s, err := users.Register(ctx, in)
		var appErr *apperror.Error
		if errors.As(err, &appErr) && appErr.Kind == apperror.KindConflict {
			s, err = users.Login(ctx, in.Email, demoPassword)
		}
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", in.Email, err)
		}
		seeded = append(seeded, s.User)
		fmt.Printf("seeded user: id=%s email=%s password=%s\n", s.User.ID, s.User.Email, demoPassword)
	}

	sp, err := spaces.Create(ctx, seeded[0].ID, "Club de Programación", "Retos, hackatones y tutorías entre estudiantes")
	if err != nil {
		log.Fatalf("failed to seed space: %v", err)
	}
	for _, u := range seeded[1:] {
		if _, err := spaces.Join(ctx, u.ID, sp.Space.ID); err != nil {
			log.Fatalf("failed to join space: %v", err)
		}
	}
	if _, err := posts.Create(ctx, seeded[0].ID, sp.Space.ID, "¡Bienvenidos! Este jueves hay reunión en la sede Ingeniería."); err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	fmt.Printf("seeded space: id=%s name=%s members=%d\n", sp.Space.ID, sp.Space.Name, len(seeded))
}
