package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"golang.org/x/time/rate"
)

func main() {
	_ = godotenv.Load()

	app, err := newApp()
	if err != nil {
		logFatal("Configuration error: %v", err)
	}
	logInfo("Starting 67dle in %s mode", map[bool]string{true: "production", false: "development"}[app.IsProduction])
	logInfo("Loaded %d solution words, %d accepted words, active day index: %d",
		len(app.SolutionWords), len(app.AcceptedWordSet), app.dayIndex(time.Now()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.startSessionCleanupScheduler(ctx)

	startServer(app.newRouter())
}

// newApp loads word data, restores the leaderboard and validates the daily
// puzzle configuration. Any error here is fatal: a misconfigured instance
// must not serve requests.
func newApp() (*App, error) {
	loc, err := time.LoadLocation(TimezoneName)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", TimezoneName, err)
	}
	epoch, err := time.ParseInLocation("2006-01-02", EpochDate, loc)
	if err != nil {
		return nil, fmt.Errorf("parse epoch date %s: %w", EpochDate, err)
	}

	app := &App{
		Epoch:          epoch,
		Location:       loc,
		GameSessions:   make(map[string]*GameState),
		SessionLocks:   make(map[string]*sync.Mutex),
		LimiterMap:     make(map[string]*rate.Limiter),
		SessionDir:     "data/sessions",
		StartTime:      time.Now(),
		IsProduction:   os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 48*time.Hour),
		CookieMaxAge:   getEnvDuration("COOKIE_MAX_AGE", 48*time.Hour),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
	}

	if err := app.loadWords("data/words.json", "data/accepted_words.json"); err != nil {
		return nil, err
	}

	app.Leaderboard = newLeaderboard("data/leaderboard.json")
	if err := app.Leaderboard.load(); err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	if err := app.validateDailyConfig(time.Now()); err != nil {
		return nil, err
	}
	return app, nil
}

// loadWords reads the solution pool and the accepted-guess dictionary. The
// acceptance set is the union of both files; entries of the wrong shape are
// skipped with a warning, an empty solution pool is an error.
func (app *App) loadWords(wordsFile, acceptedFile string) error {
	solutions, err := readWordFile(wordsFile)
	if err != nil {
		return fmt.Errorf("load solution words: %w", err)
	}
	app.SolutionWords = solutions
	if len(app.SolutionWords) == 0 {
		return fmt.Errorf("no usable %d-letter words in %s", WordLength, wordsFile)
	}

	accepted, err := readWordFile(acceptedFile)
	if err != nil {
		return fmt.Errorf("load accepted words: %w", err)
	}

	app.AcceptedWordSet = make(map[string]struct{}, len(accepted)+len(solutions))
	lo.ForEach(append(accepted, solutions...), func(w string, _ int) {
		app.AcceptedWordSet[w] = struct{}{}
	})
	return nil
}

// readWordFile parses a JSON array of words, uppercased and filtered to
// WordLength letters A-Z.
func readWordFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, err
	}
	upper := lo.Map(words, func(w string, _ int) string {
		return strings.ToUpper(strings.TrimSpace(w))
	})
	return lo.Filter(upper, func(w string, _ int) bool {
		if len(w) != WordLength || !isUpperAlpha(w) {
			logWarn("Skipping word %q from %s: not %d letters A-Z", w, path, WordLength)
			return false
		}
		return true
	}), nil
}

// newRouter wires middleware and the JSON API routes.
func (app *App) newRouter() *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))
	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}
	router.Use(corsMiddleware())
	router.Use(requestIDMiddleware())
	// Responses carry per-session game state; never let them be cached.
	router.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))

	router.GET(RouteRoot, app.rootHandler)
	router.GET(RouteDailyCheck, app.dailyWordCheckHandler)
	router.POST(RouteValidate, app.rateLimitMiddleware(), app.validateHandler)
	router.POST(RouteGuess, app.rateLimitMiddleware(), app.guessHandler)
	router.GET(RouteGameState, app.gameStateHandler)
	router.GET(RouteLeaderboard, app.leaderboardGetHandler)
	router.POST(RouteLeaderboard, app.rateLimitMiddleware(), app.leaderboardPostHandler)
	router.GET(RouteHealthz, app.healthzHandler)

	return router
}

func startServer(router *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
