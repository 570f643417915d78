// Command poincare trains, stores and inspects Poincaré disk embeddings of
// taxonomies.
//
//	poincare extract --root mammal.n.01 hypernyms.tsv targets.txt > mammal_closure.tsv
//	poincare train --epochs 200 --plot mammal.png mammal_closure.tsv
//	poincare nearest -k 5 dog.n.01
//	poincare evaluate mammal_closure.tsv
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/poincare/embedding"
	"github.com/katalvlaran/poincare/store"
)

const defaultDB = "poincare.sqlite"

func main() {
	log.SetFlags(log.LstdFlags)
	log.SetPrefix("poincare: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app holds flags shared by every subcommand.
type app struct {
	dbPath string
	runID  string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "poincare",
		Short:         "Poincaré disk embeddings of taxonomies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.dbPath, "db", defaultDB, "SQLite database holding trained runs")

	root.AddCommand(newTrainCmd(a))
	root.AddCommand(newExtractCmd())
	root.AddCommand(newPlotCmd(a))
	root.AddCommand(newNearestCmd(a))
	root.AddCommand(newEvaluateCmd(a))
	root.AddCommand(newRunsCmd(a))

	return root
}

func (a *app) open(ctx context.Context) (*sql.DB, error) {
	db, err := store.Open(ctx, a.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", a.dbPath, err)
	}

	return db, nil
}

// addRunFlag registers --run on commands that read a stored run.
func (a *app) addRunFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.runID, "run", "", "run id (default: latest run)")
}

// load returns the selected run, or the latest one when --run is empty.
func (a *app) load(ctx context.Context) (store.Run, *embedding.View, error) {
	db, err := a.open(ctx)
	if err != nil {
		return store.Run{}, nil, err
	}
	defer db.Close()

	if a.runID == "" {
		return store.Latest(ctx, db)
	}

	return store.Load(ctx, db, a.runID)
}
