package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	authhandlers "weexpense/internal/api/handlers/auth"
	"weexpense/internal/api/handlers/expenses"
	"weexpense/internal/api/handlers/friends"
	"weexpense/internal/api/handlers/saveditems"
	mw "weexpense/internal/api/middlewares"
	"weexpense/internal/api/routers"
	"weexpense/internal/auth"
	"weexpense/internal/notify"
	"weexpense/internal/repositories/sqlconnect"
	"weexpense/internal/store"
	"weexpense/pkg/cron"
	"weexpense/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Warn("No .env file found, relying on process environment")
	}

	utils.InitLogger()

	db, err := sqlconnect.Connect()
	if err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}
	defer db.Close()

	st := store.New(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := st.Migrate(ctx); err != nil {
		cancel()
		utils.Logger.Fatal("DB migration failed: ", err)
	}
	cancel()

	tokens := auth.NewTokenService(
		os.Getenv("JWT_SECRET"),
		envDurationMinutes("ACCESS_TOKEN_EXP_MINUTES", 30),
		envDurationDays("REFRESH_TOKEN_EXP_DAYS", 7),
		st,
	)
	dispatcher := notify.NewDispatcher()

	authH := &authhandlers.Handler{Store: st, Tokens: tokens}
	expH := &expenses.Handler{Store: st, Dispatcher: dispatcher}
	frH := &friends.Handler{Store: st}
	siH := &saveditems.Handler{Store: st}

	router := routers.MainRouter(st, authH, expH, frH, siH)

	jwtMiddleware := mw.MiddlewaresExcludePaths(mw.JWTMiddleware(tokens), "/", "/register", "/token", "/refresh", "/db-test")
	handler := jwtMiddleware(router)

	c := cron.StartCronJob(db)
	defer c.Stop()

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = ":8080"
	}

	server := &http.Server{
		Addr:         port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	utils.Logger.Info("Server is running on port ", port)

	cert := os.Getenv("CERT_FILE")
	key := os.Getenv("KEY_FILE")
	if cert != "" && key != "" {
		err = server.ListenAndServeTLS(cert, key)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil {
		utils.Logger.Fatal("Error starting the server: ", err)
	}
}

func envDurationMinutes(key string, fallback int) time.Duration {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return time.Duration(v) * time.Minute
	}
	return time.Duration(fallback) * time.Minute
}

func envDurationDays(key string, fallback int) time.Duration {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return time.Duration(v) * 24 * time.Hour
	}
	return time.Duration(fallback) * 24 * time.Hour
}
