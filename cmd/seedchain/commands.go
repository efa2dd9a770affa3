package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/CTAG07/seedchain/pkg/corpus"
	"github.com/CTAG07/seedchain/pkg/markov"
	"github.com/CTAG07/seedchain/pkg/rng"
	"github.com/CTAG07/seedchain/pkg/source"
	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
	"github.com/urfave/cli/v2"
)

const (
	modeAny      = "any"
	modeFixed    = "fixed"
	modeExisting = "existing"
)

func (r *runner) listSets(c *cli.Context) error {
	store, err := r.open(c.Context)
	if err != nil {
		return err
	}
	sets, err := store.GetSetInfos(c.Context)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(c.App.Writer, "%d\t%s\n", sets[name].Id, name)
	}
	return nil
}

func (r *runner) createSet(c *cli.Context) error {
	name, err := setArg(c)
	if err != nil {
		return err
	}
	store, err := r.open(c.Context)
	if err != nil {
		return err
	}
	set, err := store.InsertSet(c.Context, name)
	if err != nil {
		return err
	}
	r.logger.Info("Set created", slog.String("set_name", set.Name), slog.Int("set_id", set.Id))
	return nil
}

func (r *runner) removeSet(c *cli.Context) error {
	name, err := setArg(c)
	if err != nil {
		return err
	}
	store, err := r.open(c.Context)
	if err != nil {
		return err
	}
	set, err := store.GetSetInfo(c.Context, name)
	if err != nil {
		return err
	}
	return store.RemoveSet(c.Context, set)
}

func (r *runner) train(c *cli.Context) error {
	name, err := setArg(c)
	if err != nil {
		return err
	}
	store, err := r.open(c.Context)
	if err != nil {
		return err
	}

	set, err := store.GetSetInfo(c.Context, name)
	if err != nil {
		if !errors.Is(err, corpus.ErrSetNotFound) || !c.Bool("create") {
			return err
		}
		if set, err = store.InsertSet(c.Context, name); err != nil {
			return err
		}
	}

	files := c.Args().Tail()
	if len(files) == 0 {
		_, err = store.Train(c.Context, set, c.App.Reader)
		return err
	}
	for _, path := range files {
		if err = trainFile(c, store, set, path); err != nil {
			return err
		}
	}
	return nil
}

func trainFile(c *cli.Context, store *corpus.Store, set corpus.SetInfo, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	if _, err = store.Train(c.Context, set, f); err != nil {
		return fmt.Errorf("training from %s: %w", path, err)
	}
	return nil
}

func (r *runner) generate(c *cli.Context) error {
	name, err := setArg(c)
	if err != nil {
		return err
	}

	mode := c.String("mode")
	switch mode {
	case modeAny, modeExisting:
	case modeFixed:
		if !c.IsSet("length") {
			return fmt.Errorf("generate: --length is required in %s mode", modeFixed)
		}
	default:
		return fmt.Errorf("generate: unknown mode %q (want %s, %s or %s)", mode, modeAny, modeFixed, modeExisting)
	}

	count := r.cfg.Count
	if c.IsSet("count") {
		count = c.Int("count")
	}
	if count < 1 {
		return fmt.Errorf("generate: count must be at least 1, got %d", count)
	}
	srcName := r.cfg.Source
	if c.IsSet("source") {
		srcName = c.String("source")
	}
	var seed uint64
	switch {
	case c.IsSet("seed"):
		seed = c.Uint64("seed")
	case r.cfg.Seed != nil:
		seed = *r.cfg.Seed
	default:
		seed = rng.DefaultSeed()
	}
	src, err := source.New(srcName, seed)
	if err != nil {
		return err
	}
	format, err := newFormatter(c.String("format"))
	if err != nil {
		return err
	}

	store, err := r.open(c.Context)
	if err != nil {
		return err
	}
	set, err := store.GetSetInfo(c.Context, name)
	if err != nil {
		return err
	}
	model := markov.New[string]()
	model.SetLogger(r.logger)
	if _, err = store.Load(c.Context, set, model); err != nil {
		return err
	}
	if !model.Trained() {
		return fmt.Errorf("generate: set %q has no sequences", name)
	}

	strict := c.Bool("strict")
	length := c.Int("length")
	for i := 0; i < count; i++ {
		var out []string
		switch mode {
		case modeAny:
			out, err = model.GenerateAnyLength(src, strict)
		case modeFixed:
			out, err = model.GenerateFixedLength(src, length, strict)
		case modeExisting:
			out, err = model.GenerateExistingLength(src, strict)
		}
		if err != nil {
			return err
		}
		sample := Sample{Index: i, Text: corpus.Join(store.Tokenizer(), out), Tokens: out, Length: len(out)}
		if err = format.write(c.App.Writer, sample); err != nil {
			return err
		}
	}

	r.logger.Info("Generation completed",
		slog.String("set_name", set.Name),
		slog.String("source", srcName),
		slog.Uint64("seed", seed),
		slog.String("mode", mode),
		slog.Int("count", count),
	)
	return nil
}

func (r *runner) stats(c *cli.Context) error {
	store, err := r.open(c.Context)
	if err != nil {
		return err
	}
	stats, err := store.GetStats(c.Context)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "vocabulary: %s tokens\n", humanize.Comma(int64(stats.VocabSize)))
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSET\tDISTINCT\tSEQUENCES\tTOKENS")
	for _, set := range stats.Sets {
		st := stats.Stats[set.Id]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", set.Id, set.Name,
			humanize.Comma(int64(st.DistinctSequences)),
			humanize.Comma(int64(st.TotalSequences)),
			humanize.Comma(int64(st.TotalTokens)),
		)
	}
	return tw.Flush()
}

func (r *runner) exportSet(c *cli.Context) error {
	name, err := setArg(c)
	if err != nil {
		return err
	}
	store, err := r.open(c.Context)
	if err != nil {
		return err
	}
	set, err := store.GetSetInfo(c.Context, name)
	if err != nil {
		return err
	}

	path := c.Args().Get(1)
	if path == "" {
		return store.Export(c.Context, set, c.App.Writer)
	}
	var buf bytes.Buffer
	if err = store.Export(c.Context, set, &buf); err != nil {
		return err
	}
	if err = atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

func (r *runner) importSet(c *cli.Context) error {
	store, err := r.open(c.Context)
	if err != nil {
		return err
	}

	var in io.Reader = c.App.Reader
	if path := c.Args().First(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func(f *os.File) {
			_ = f.Close()
		}(f)
		in = f
	}

	set, err := store.Import(c.Context, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, set.Name)
	return nil
}

func (r *runner) prune(c *cli.Context) error {
	store, err := r.open(c.Context)
	if err != nil {
		return err
	}
	minFreq := c.Int("min")
	if c.Bool("vocabulary") {
		return store.VocabularyPrune(c.Context, minFreq)
	}

	name, err := setArg(c)
	if err != nil {
		return err
	}
	set, err := store.GetSetInfo(c.Context, name)
	if err != nil {
		return err
	}
	removed, err := store.PruneSet(c.Context, set, minFreq)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "removed %s sequences\n", humanize.Comma(removed))
	return nil
}
