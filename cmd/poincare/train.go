package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/poincare/edgelist"
	"github.com/katalvlaran/poincare/embedding"
	"github.com/katalvlaran/poincare/geometry"
	"github.com/katalvlaran/poincare/plot"
	"github.com/katalvlaran/poincare/store"
	"github.com/katalvlaran/poincare/trainer"
	"github.com/katalvlaran/poincare/vocab"
)

type trainFlags struct {
	epochs    int
	negatives int
	lr        float64
	finalLR   float64
	eps       float64
	seed      int64
	tsvPath   string
	plotPath  string
	noSave    bool
}

func newTrainCmd(a *app) *cobra.Command {
	f := trainFlags{}
	cmd := &cobra.Command{
		Use:   "train <edges.tsv>",
		Short: "Train an embedding from a tab-separated edge file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(cmd, a, f, args[0])
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.epochs, "epochs", trainer.DefaultEpochs, "passes over the edge list")
	fl.IntVar(&f.negatives, "negatives", trainer.DefaultNegatives, "negative pairs per positive edge")
	fl.Float64Var(&f.lr, "lr", trainer.DefaultLearningRate, "initial learning rate")
	fl.Float64Var(&f.finalLR, "final-lr", trainer.DefaultFinalLearningRate, "learning rate reached at the last epoch")
	fl.Float64Var(&f.eps, "eps", geometry.DefaultEpsilon, "numerical stability epsilon")
	fl.Int64Var(&f.seed, "seed", 0, "random seed (0 selects the fixed default)")
	fl.StringVar(&f.tsvPath, "tsv", "", "also write term<TAB>x<TAB>y to this file")
	fl.StringVar(&f.plotPath, "plot", "", "also render the disk to this .png or .svg file")
	fl.BoolVar(&f.noSave, "no-save", false, "do not store the run in the database")

	return cmd
}

func runTrain(cmd *cobra.Command, a *app, f trainFlags, edgePath string) error {
	ctx := cmd.Context()
	pairs, err := edgelist.ReadFile(edgePath)
	if err != nil {
		return err
	}
	vs, err := vocab.FromPairs(pairs)
	if err != nil {
		return fmt.Errorf("%s: %w", edgePath, err)
	}
	log.Printf("loaded %d terms, %d edges from %s", vs.Len(), vs.EdgeCount(), edgePath)

	start := time.Now()
	tr, err := trainer.New(vs,
		trainer.WithEpochs(f.epochs),
		trainer.WithNegatives(f.negatives),
		trainer.WithLearningRate(f.lr, f.finalLR),
		trainer.WithEpsilon(f.eps),
		trainer.WithSeed(f.seed),
		trainer.WithOnEpoch(func(st trainer.EpochStats) error {
			log.Printf("epoch %d/%d lr=%.5f loss=%.5f elapsed=%s",
				st.Epoch+1, f.epochs, st.LearningRate, st.Loss, time.Since(start).Round(time.Millisecond))
			return ctx.Err()
		}),
	)
	if err != nil {
		return err
	}
	view, err := tr.Train()
	if err != nil {
		return err
	}

	if f.tsvPath != "" {
		if err := writeTSV(f.tsvPath, view); err != nil {
			return err
		}
		log.Printf("wrote %s", f.tsvPath)
	}
	if f.plotPath != "" {
		if err := plot.SaveFile(f.plotPath, view, plot.DefaultOptions()); err != nil {
			return err
		}
		log.Printf("wrote %s", f.plotPath)
	}
	if f.noSave {
		return nil
	}

	db, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	history := tr.History()
	o := tr.Options()
	id, err := store.Save(ctx, db, store.Run{
		Source:            edgePath,
		Epochs:            o.Epochs,
		Negatives:         o.Negatives,
		LearningRate:      o.LearningRate,
		FinalLearningRate: o.FinalLearningRate,
		Epsilon:           o.Epsilon,
		Seed:              o.Seed,
		Loss:              history[len(history)-1].Loss,
	}, view)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)

	return nil
}

func writeTSV(path string, view *embedding.View) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	return view.WriteTSV(out)
}
