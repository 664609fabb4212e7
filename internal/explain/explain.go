// internal/explain/explain.go
package explain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/tamzrod/solax-explain/internal/decoder"
	"github.com/tamzrod/solax-explain/internal/publish"
	"github.com/tamzrod/solax-explain/internal/render"
	"github.com/tamzrod/solax-explain/internal/source"
	"github.com/tamzrod/solax-explain/internal/table"
)

// Options carries the values echoed in the report header.
type Options struct {
	Host     string
	Password string
}

// Runner performs one fetch, decode, render and publish pass.
type Runner struct {
	fetcher   source.Fetcher
	table     *table.Table
	publisher publish.Publisher
	out       io.Writer
	opts      Options
}

func New(f source.Fetcher, t *table.Table, p publish.Publisher, out io.Writer, opts Options) *Runner {
	return &Runner{
		fetcher:   f,
		table:     t,
		publisher: p,
		out:       out,
		opts:      opts,
	}
}

// Run executes exactly one pass.
// Nothing is written to out unless the whole snapshot decodes.
func (r *Runner) Run(ctx context.Context) error {
	snap, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("explain: fetch: %w", err)
	}

	if n := len(snap.Registers); n > r.table.Length {
		log.Printf("device returned %d registers, table expects %d (model=%s); extra registers ignored",
			n, r.table.Length, r.table.Model)
	}

	rows, err := decoder.Decode(snap.Registers, r.table)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render.WriteHeader(&buf, render.Header{
		Title:       r.table.Title,
		SerialLabel: r.table.SerialLabel,
		At:          snap.At,
		Host:        r.opts.Host,
		Password:    r.opts.Password,
		Info:        snap.Info,
	}); err != nil {
		return fmt.Errorf("explain: render: %w", err)
	}
	if err := render.WriteRows(&buf, rows); err != nil {
		return fmt.Errorf("explain: render: %w", err)
	}
	if _, err := buf.WriteTo(r.out); err != nil {
		return fmt.Errorf("explain: write: %w", err)
	}

	if err := r.publisher.Publish(ctx, publish.Report{
		Model: r.table.Model,
		Title: r.table.Title,
		Host:  r.opts.Host,
		Info:  snap.Info,
		At:    snap.At,
		Rows:  rows,
	}); err != nil {
		return fmt.Errorf("explain: publish: %w", err)
	}

	return nil
}
