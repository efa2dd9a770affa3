package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/CTAG07/seedchain/pkg/corpus"
	"github.com/CTAG07/seedchain/pkg/source"
	"github.com/urfave/cli/v2"
)

// runner carries the state shared by subcommands. The database is opened on
// first use so that commands like sources run without one.
type runner struct {
	cfg    *Config
	logger *slog.Logger
	db     *sql.DB
	store  *corpus.Store
}

func newApp() *cli.App {
	r := &runner{}
	return &cli.App{
		Name:    "seedchain",
		Usage:   "train and sample reproducible Markov chains over text",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "./seedchain.json",
				Usage:   "path to the JSON config file, created with defaults if missing",
			},
			&cli.StringFlag{Name: "db", Usage: "override the database path"},
			&cli.StringFlag{Name: "log-level", Usage: "override the log level (debug, info, warn, error)"},
			&cli.StringFlag{Name: "tokenizer", Usage: "override the tokenizer (words, runes)"},
		},
		Before: r.before,
		After:  r.after,
		Commands: []*cli.Command{
			{
				Name:   "sets",
				Usage:  "list corpus sets",
				Action: r.listSets,
			},
			{
				Name:      "create",
				Usage:     "create an empty corpus set",
				ArgsUsage: "NAME",
				Action:    r.createSet,
			},
			{
				Name:      "remove",
				Usage:     "remove a corpus set and its sequences",
				ArgsUsage: "NAME",
				Action:    r.removeSet,
			},
			{
				Name:      "train",
				Usage:     "record the sequences in FILEs (or stdin) in a set",
				ArgsUsage: "NAME [FILE...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "create", Usage: "create the set if it does not exist"},
				},
				Action: r.train,
			},
			{
				Name:      "generate",
				Usage:     "sample sequences from a model trained on a set",
				ArgsUsage: "NAME",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mode", Value: modeExisting, Usage: "length mode: any, fixed or existing"},
					&cli.IntFlag{Name: "length", Aliases: []string{"n"}, Usage: "sequence length for fixed mode"},
					&cli.IntFlag{Name: "count", Usage: "number of sequences to generate (default from config)"},
					&cli.BoolFlag{Name: "strict", Usage: "start only from values that began a training sequence"},
					&cli.StringFlag{Name: "source", Usage: "random source (default from config)"},
					&cli.Uint64Flag{Name: "seed", Usage: "seed for the random source (default from config, else the clock)"},
					&cli.StringFlag{Name: "format", Usage: "text/template for each sample (fields: Index, Text, Tokens, Length)"},
				},
				Action: r.generate,
			},
			{
				Name:   "stats",
				Usage:  "show corpus statistics",
				Action: r.stats,
			},
			{
				Name:      "export",
				Usage:     "write a set as JSON to FILE (or stdout)",
				ArgsUsage: "NAME [FILE]",
				Action:    r.exportSet,
			},
			{
				Name:      "import",
				Usage:     "merge a JSON set from FILE (or stdin)",
				ArgsUsage: "[FILE]",
				Action:    r.importSet,
			},
			{
				Name:      "prune",
				Usage:     "remove rare sequences from a set, or rare tokens from every set",
				ArgsUsage: "[NAME]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "min", Value: 1, Usage: "frequency threshold"},
					&cli.BoolFlag{Name: "vocabulary", Usage: "prune tokens used fewer than --min times across all sets"},
				},
				Action: r.prune,
			},
			{
				Name:   "sources",
				Usage:  "list available random sources",
				Action: r.listSources,
			},
		},
	}
}

func (r *runner) before(c *cli.Context) error {
	path := c.String("config")
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	if c.IsSet("db") {
		cfg.DatabasePath = c.String("db")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("tokenizer") {
		cfg.Tokenizer = c.String("tokenizer")
	}
	if err = cfg.validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	r.cfg = cfg
	r.logger = slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	return nil
}

func (r *runner) after(*cli.Context) error {
	if r.store != nil {
		r.store.Close()
		r.store = nil
	}
	if r.db != nil {
		err := r.db.Close()
		r.db = nil
		return err
	}
	return nil
}

// open connects to the database and prepares the corpus store.
func (r *runner) open(ctx context.Context) (*corpus.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	db, err := initDB(r.cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set up corpus schema: %w", err)
	}

	tokenizer, err := newTokenizer(r.cfg.Tokenizer)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := corpus.NewStore(db, tokenizer)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create corpus store: %w", err)
	}
	store.SetLogger(r.logger)

	r.db, r.store = db, store
	r.logger.Debug("Database opened", slog.String("path", r.cfg.DatabasePath))
	return store, nil
}

// setArg returns the set name given as the first argument.
func setArg(c *cli.Context) (string, error) {
	name := c.Args().First()
	if name == "" {
		return "", fmt.Errorf("%s: missing set name", c.Command.Name)
	}
	return name, nil
}

func (r *runner) listSources(c *cli.Context) error {
	for _, name := range source.Names() {
		fmt.Fprintln(c.App.Writer, name)
	}
	return nil
}
