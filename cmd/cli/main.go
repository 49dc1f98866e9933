package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterh/liner"
	"github.com/spf13/viper"

	"shelf/internal/cli"
)

func init() {
	viper.SetConfigName("shelf")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetDefault("gateway.url", "http://localhost:50080")
	viper.SetDefault("gateway.timeout", 10*time.Second)
	viper.SetDefault("catalog.per_page", 24)
	viper.SetDefault("cli.history", ".shelf_history")
	viper.SetEnvPrefix("shelf")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// ownerID is stable per machine unless cli.owner is set.
func ownerID() string {
	if o := viper.GetString("cli.owner"); o != "" {
		return o
	}
	host, _ := os.Hostname()
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("shelf-cli://"+host)).String()
}

func main() {
	client := cli.NewClient(strings.TrimRight(viper.GetString("gateway.url"), "/"), ownerID(), viper.GetDuration("gateway.timeout"))
	session := cli.NewSession(client, os.Stdout, viper.GetInt("catalog.per_page"))
	ctx := context.Background()

	if len(os.Args) > 1 {
		if _, err := session.Exec(ctx, strings.Join(os.Args[1:], " ")); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	history := filepath.Clean(viper.GetString("cli.history"))
	if f, err := os.Open(history); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println("📚 shelf interactive shell (type help)")
	for {
		input, err := line.Prompt("shelf> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		start := time.Now()
		quit, err := session.Exec(ctx, input)
		if quit {
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Printf("\n⏱ %v\n\n", time.Since(start).Round(time.Millisecond))
	}
}
