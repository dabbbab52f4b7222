// Package main is the entry point for rosterctl, the line-oriented
// roster client.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rosterhq/roster/internal/api"
	"github.com/rosterhq/roster/internal/cli"
	"github.com/rosterhq/roster/internal/config"
	"github.com/rosterhq/roster/internal/controller"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override roster config path (optional)")
	serverURL := flag.String("server", "", "override the API server URL (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath, config.EnvCtl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rosterctl: load config: %v\n", err)
		return 1
	}

	apiURL := cfg.APIURL
	if *serverURL != "" {
		apiURL = *serverURL
	}

	client, err := api.NewClient(apiURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rosterctl: init api client: %v\n", err)
		return 1
	}

	ctrl := controller.New(client)
	runner := cli.NewRunner(ctrl, os.Stdout)

	// One-shot mode: the remaining arguments form a single command. The
	// cache is primed first so id-based commands can resolve their target.
	if args := flag.Args(); len(args) > 0 {
		ctrl.Dispatch(ctx, controller.Load{})
		if _, err := runner.Execute(ctx, strings.Join(args, " ")); err != nil {
			fmt.Fprintf(os.Stderr, "rosterctl: %v\n", err)
			return 1
		}
		return 0
	}

	if err := runner.Run(ctx, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "rosterctl: %v\n", err)
		return 1
	}
	return 0
}
