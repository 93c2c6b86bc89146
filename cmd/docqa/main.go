package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docqa/backend/internal/client"
	"github.com/docqa/backend/internal/extract"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	defaultServer := os.Getenv("DOCQA_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8089"
	}
	server := flag.String("server", defaultServer, "document Q&A server URL")
	interval := flag.Duration("progress-interval", client.DefaultProgressInterval, "simulated progress tick")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-server URL] FILE\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*server, *interval, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(server string, interval time.Duration, path string) error {
	ctx := context.Background()

	notifier := client.NotifierFunc(func(n client.Notification) {
		prefix := "*"
		if n.Variant == client.VariantDestructive {
			prefix = "!"
		}
		fmt.Fprintf(os.Stderr, "\n%s %s: %s\n", prefix, n.Title, n.Description)
	})

	api := client.NewAPIClient(server, nil)
	session := client.NewSession()
	uploads := client.NewUploadFlow(api, session, notifier, client.UploadOptions{
		ProgressInterval: interval,
		OnProgress: func(v int) {
			fmt.Fprintf(os.Stderr, "\rUploading [%-10s] %3d%%", strings.Repeat("#", v/10), v)
		},
	})
	chat := client.NewChatFlow(api, session, notifier)

	if err := upload(ctx, uploads, path); err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit":
			return nil
		case line == "/remove":
			if err := uploads.Remove(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
			fmt.Println("Document removed. Use /upload FILE to add another.")
			continue
		case strings.HasPrefix(line, "/upload "):
			if err := upload(ctx, uploads, strings.TrimSpace(strings.TrimPrefix(line, "/upload "))); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue
		}

		reply, err := chat.Ask(ctx, line)
		switch {
		case errors.Is(err, client.ErrEmptyQuestion), errors.Is(err, client.ErrNoDocument):
			continue
		case reply.Text != "":
			fmt.Printf("\n%s\n\n", reply.Text)
		case err != nil:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

func upload(ctx context.Context, flow *client.UploadFlow, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	doc, err := flow.Upload(ctx, client.File{
		Name: filepath.Base(path),
		Type: extract.TypeByExtension(path),
		Size: info.Size(),
		Body: f,
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%d bytes, %d chars extracted)\n", doc.Name, doc.Size, len([]rune(doc.Content)))
	return nil
}
