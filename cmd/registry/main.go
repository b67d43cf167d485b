// Command registry reads and writes the token registry directly against the configured database.
//
//	registry get wrap.near aurora
//	registry put -id wrap.near -name NEAR -decimals 24
//	registry put-many -file tokens.yaml
//	registry seed -file tokens.yaml
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tropicaldog17/oraclewatch/internal/config"
	"github.com/tropicaldog17/oraclewatch/internal/db"
	"github.com/tropicaldog17/oraclewatch/internal/logger"
	"github.com/tropicaldog17/oraclewatch/internal/models"
	"github.com/tropicaldog17/oraclewatch/internal/repositories"
	"github.com/tropicaldog17/oraclewatch/internal/services"
)

const usage = `usage: registry <command> [flags]

commands:
  get <account_id>...                         print [account_id, config|null] for each id
  put -id <account_id> -name <name> -decimals <n>  store one token config
  put-many -file <seed.yaml>                  store every token of a seed file in one transaction
  seed -file <seed.yaml>                      alias of put-many
`

var errUsage = errors.New("invalid usage")

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to build logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	database, err := db.Connect(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	registry := services.NewRegistryService(repositories.NewTokenConfigRepository(database), log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, registry, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		log.Error("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, registry services.RegistryService, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "get":
		return runGet(ctx, registry, args[1:], out)
	case "put":
		return runPut(ctx, registry, args[1:], out)
	case "put-many", "seed":
		return runPutMany(ctx, registry, args[0], args[1:], out)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func runGet(ctx context.Context, registry services.RegistryService, ids []string, out io.Writer) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: get needs at least one account id", errUsage)
	}
	entries, err := registry.Get(ctx, ids)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func runPut(ctx context.Context, registry services.RegistryService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("put", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	id := fs.String("id", "", "asset account id")
	name := fs.String("name", "", "display name")
	decimals := fs.Uint("decimals", 0, "token decimals")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *id == "" || *name == "" {
		return fmt.Errorf("%w: put needs -id and -name", errUsage)
	}
	if *decimals > 255 {
		return fmt.Errorf("%w: decimals must be at most 255", errUsage)
	}

	if err := registry.Put(ctx, *id, models.TokenConfig{TokenName: *name, Decimals: uint8(*decimals)}); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "stored %s\n", *id)
	return err
}

func runPutMany(ctx context.Context, registry services.RegistryService, cmd string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	file := fs.String("file", "", "YAML seed file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *file == "" {
		return fmt.Errorf("%w: %s needs -file", errUsage, cmd)
	}

	entries, err := services.LoadSeedFile(*file)
	if err != nil {
		return err
	}
	if err := registry.PutMany(ctx, entries); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "stored %d token configs\n", len(entries))
	return err
}
