package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	xweb "github.com/hiiragi-dev/go-xweb"
)

func main() {
	_ = godotenv.Load()

	user := flag.String("user", "", "screen name or +numeric id")
	posts := flag.Bool("posts", false, "also print the latest posts as JSON lines")
	proxy := flag.String("proxy", os.Getenv("XWEB_PROXY"), "HTTP(S) proxy URL")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "usage: xweb -user <screen_name> [-posts] [-proxy url]")
		os.Exit(2)
	}

	client, err := xweb.NewClient(xweb.ClientConfig{
		AuthToken: os.Getenv("XWEB_AUTH_TOKEN"),
		Proxy:     *proxy,
	})
	if err != nil {
		slog.Error("client init failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()

	count, err := client.FollowerCount(ctx, *user)
	if err != nil {
		slog.Error("follower count fetch failed", slog.String("user", *user), slog.Any("error", err))
		os.Exit(1)
	}
	fmt.Printf("%s\t%d\n", *user, count)

	if *posts {
		list, err := client.GetUserTweets(ctx, *user, nil)
		if err != nil {
			slog.Error("posts fetch failed", slog.String("user", *user), slog.Any("error", err))
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		for _, p := range list {
			_ = enc.Encode(map[string]any{"id": p.ID, "text": p.Text})
		}
	}
}
