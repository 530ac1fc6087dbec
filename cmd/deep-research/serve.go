// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/deep-research/internal/archive"
	"github.com/pdiddy/deep-research/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser chat widget",
	Long: `Serve starts an HTTP server hosting the chat widget, the research API,
and a websocket feed of pipeline progress. Each chat message runs one full
research turn; the server keeps no conversation state between messages.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	pipeline, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		log.SetLevel(level)
	}

	var store *archive.Store
	if cfg.Archive.Enabled {
		store, err = archive.Open(cfg.Archive)
		if err != nil {
			fmt.Fprintf(os.Stderr, "archive unavailable: %v\n", err)
		} else {
			defer store.Close()
		}
	}

	srv := server.New(cfg.Server, pipeline, store, log)
	fmt.Fprintf(os.Stderr, "chat widget at http://%s/\n", hostForDisplay(cfg.Server.Addr))
	return srv.ListenAndServe()
}

func hostForDisplay(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
