package cli

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/filmvault/internal/client/suggest"
)

// settleTimeout сколько ждать незавершенный поиск после конца ввода
const settleTimeout = 5 * time.Second

func (c *Cli) newSuggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Interactive movie search with live suggestions",
		Long: "Each input line replaces the search text. Suggestions appear after a short pause.\n" +
			"An empty line hides suggestions; Ctrl-D exits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ctrl := suggest.New(c.catalog, c.logger, c.suggestOpts...)
			defer ctrl.Close()

			printer := &suggestPrinter{cli: c, state: suggest.StateIdle}
			ctrl.Subscribe(printer.observe)

			c.io.Println("Type to search, empty line hides suggestions, Ctrl-D to quit.")

			for {
				line, err := c.io.ReadInput("search> ")
				if err != nil {
					if errors.Is(err, io.EOF) {
						printer.waitSettled(ctx)
						c.io.Println()
						return nil
					}
					return err
				}

				if line == "" {
					ctrl.Dismiss()
					continue
				}
				ctrl.Update(line)
			}
		},
	}
}

// suggestPrinter печатает подсказки и запоминает последнее показанное состояние
type suggestPrinter struct {
	cli   *Cli
	state suggest.State
	mu    sync.Mutex
}

func (p *suggestPrinter) observe(snap suggest.Snapshot) {
	c := p.cli

	switch snap.State {
	case suggest.StateDisplaying:
		c.io.Println()
		for i, m := range snap.Suggestions {
			c.io.Printf("  %d. %s (%s)  [%d]\n", i+1, m.Title, year(m.ReleaseDate), m.ID)
		}
	case suggest.StateEmpty:
		c.io.Printf("\n  No movies match %q\n", snap.Query)
	case suggest.StateError:
		c.io.Println("\n  ⚠️  Suggestions are unavailable right now")
	}

	p.mu.Lock()
	p.state = snap.State
	p.mu.Unlock()
}

func (p *suggestPrinter) pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == suggest.StateDebouncing || p.state == suggest.StateFetching
}

// waitSettled ждет, пока отложенный или текущий поиск будет показан
func (p *suggestPrinter) waitSettled(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, settleTimeout)
	defer cancel()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for p.pending() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
