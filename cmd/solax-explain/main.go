// cmd/solax-explain/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tamzrod/solax-explain/internal/config"
	"github.com/tamzrod/solax-explain/internal/decoder"
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: %s [flags] <host> <password>\n\n", os.Args[0])
	fmt.Fprintln(out, "  host      IP address of the device (local API)")
	fmt.Fprintln(out, "  password  serial number used as the local API password")
	fmt.Fprintln(out, "\nHost and password may also come from -config or SOLAX_HOST / SOLAX_PASSWORD.")
	fmt.Fprintln(out, "\nflags:")
	flag.PrintDefaults()
}

func main() {
	cfgPath := flag.String("config", "", "YAML config file")
	envPath := flag.String("env", ".env", "optional .env file")
	model := flag.String("model", "", "device model: wallbox | hybrid")
	tablePath := flag.String("table", "", "custom descriptor table (YAML), overrides -model")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 0 && len(args) != 2 {
		flag.Usage()
		os.Exit(2)
	}

	// --------------------
	// Load + validate config
	// --------------------

	if err := config.LoadDotEnv(*envPath); err != nil {
		log.Fatalf("env load failed (%s): %v", *envPath, err)
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	}

	config.ApplyEnv(cfg)

	if *model != "" {
		cfg.Device.Model = *model
	}
	if *tablePath != "" {
		cfg.Device.Table = *tablePath
	}
	if len(args) == 2 {
		cfg.Source.Host = args[0]
		cfg.Source.Password = args[1]
	}

	if err := config.Validate(cfg); err != nil {
		if len(args) == 0 {
			flag.Usage()
			fmt.Fprintln(flag.CommandLine.Output())
		}
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	// --------------------
	// Build pipeline
	// --------------------

	runner, cleanup, err := InitRunner(cfg)
	if err != nil {
		log.Fatalf("startup failed (model=%s): %v", cfg.Device.Model, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = runner.Run(ctx)
	stop()
	cleanup()

	if err != nil {
		if errors.Is(err, decoder.ErrOutOfRange) {
			log.Fatalf("register table does not match the device firmware: %v", err)
		}
		log.Fatalf("explain failed (host=%s): %v", cfg.Source.Host, err)
	}
}
