package main

import (
	"context"
	"log"
	"net/http"

	"github.com/questboard/questboard/internal/auth"
	"github.com/questboard/questboard/internal/build"
	"github.com/questboard/questboard/internal/config"
	"github.com/questboard/questboard/internal/db"
	"github.com/questboard/questboard/internal/handler"
	"github.com/questboard/questboard/internal/store"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			sessionManager := auth.NewSessionManager(database, cfg.DB.Driver, cfg.SessionLifetime, !cfg.InsecureCookies)

			userStore := store.NewUserStore(database)
			questStore := store.NewQuestStore(database)
			tokenStore := auth.NewSQLTokenStore(database)

			// Seed the elevated account so an admin login works out of the box.
			if _, err := userStore.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
				return err
			}

			authMiddleware := auth.NewMiddleware(sessionManager, userStore)

			router := handler.NewRouter(handler.Deps{
				SessionManager: sessionManager,
				AuthMiddleware: authMiddleware,
				UserStore:      userStore,
				QuestStore:     questStore,
				TokenStore:     tokenStore,
			})

			log.Printf("questboard %s listening on %s", build.Version, cfg.HTTP.Addr)
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
