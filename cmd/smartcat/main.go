package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/sjy-dv/smartstream/config"
	"github.com/sjy-dv/smartstream/smartclient"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: smartcat [-config file] [-verify] path...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*config.ConfigPathFlag)
	if err != nil {
		log.Error().Err(err).Msg("load config failed")
		os.Exit(1)
	}
	cfg.ApplyLogging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, flag.Args()); err != nil {
		log.Error().Err(err).Msg("smartcat failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.ConfigMap, paths []string) error {
	client, err := smartclient.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	for _, path := range paths {
		if err := cat(ctx, client, path, *config.VerifyChecksumFlag); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func cat(ctx context.Context, client *smartclient.Client, path string, verify bool) error {
	s, err := client.Open(ctx, path, verify)
	if err != nil {
		return err
	}
	defer s.Close()
	n, err := io.Copy(os.Stdout, s)
	if err != nil {
		return err
	}
	log.Debug().Str("path", path).Int64("bytes", n).Msg("copied")
	return nil
}
