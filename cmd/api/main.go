package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/contact-finder/internal/config"
	"github.com/octobees/contact-finder/internal/database"
	"github.com/octobees/contact-finder/internal/extract"
	"github.com/octobees/contact-finder/internal/handler"
	middlewarepkg "github.com/octobees/contact-finder/internal/middleware"
	"github.com/octobees/contact-finder/internal/repository"
	"github.com/octobees/contact-finder/internal/resolver"
	"github.com/octobees/contact-finder/internal/router"
	"github.com/octobees/contact-finder/internal/search"
	"github.com/octobees/contact-finder/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	contactsRepo := repository.NewPGXContactsRepository(pool)
	historyRepo := repository.NewPGXLookupHistoryRepository(pool)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	searchClient := search.New(httpClient, search.Engine(cfg.SearchEngine), cfg.SearchCacheTTL)
	extractor := extract.NewPatternExtractor()

	githubResolver := resolver.NewGitHubResolver(searchClient, httpClient, extractor)
	linkedinResolver := resolver.NewLinkedInResolver(searchClient, extractor)
	twitterResolver := resolver.NewTwitterResolver(searchClient, extractor)

	enricher := service.NewEnricher(contactsRepo, historyRepo, githubResolver, linkedinResolver, twitterResolver)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, router.Handlers{
		Health: handler.NewHealthHandler(pool),
		Lookup: handler.NewLookupHandler(enricher),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
