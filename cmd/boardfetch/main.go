package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/avolkov/footpred/internal/fetch"
)

func main() {
	var (
		url     string
		timeout time.Duration
	)
	flag.StringVar(&url, "url", "", "Odds board page to fetch")
	flag.DurationVar(&timeout, "timeout", 60*time.Second, "Overall fetch timeout")
	flag.Parse()

	if url == "" {
		fmt.Fprintln(os.Stderr, "usage: boardfetch -url <page> [-timeout 60s]")
		os.Exit(2)
	}

	text, err := fetch.BoardText(context.Background(), url, timeout)
	if err != nil {
		slog.Error("Fetch failed", "url", url, "error", err)
		os.Exit(1)
	}
	fmt.Println(text)
}
