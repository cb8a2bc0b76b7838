package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizku_backend/internals/cli"
	"quizku_backend/internals/client"
)

func main() {
	server := flag.String("server", envOr("QUIZ_SERVER", "http://127.0.0.1:3001"), "quiz API base URL")
	username := flag.String("username", os.Getenv("QUIZ_USERNAME"), "account username (required)")
	password := flag.String("password", os.Getenv("QUIZ_PASSWORD"), "account password (or QUIZ_PASSWORD)")
	language := flag.String("language", "", "quiz language; prompts when empty")
	timeout := flag.Duration("timeout", client.DefaultTimeout, "HTTP timeout per request")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "error: --username and --password are required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	focus, release := focusSignals()
	defer release()

	c := client.New(*server, *timeout)
	err := cli.Run(ctx, c, cli.Config{
		Username: *username,
		Password: *password,
		Language: *language,
	}, os.Stdin, os.Stdout, focus)

	logoutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	_ = c.Logout(logoutCtx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
