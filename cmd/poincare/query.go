package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/poincare/edgelist"
	"github.com/katalvlaran/poincare/evaluate"
	"github.com/katalvlaran/poincare/plot"
	"github.com/katalvlaran/poincare/store"
	"github.com/katalvlaran/poincare/vocab"
)

func newPlotCmd(a *app) *cobra.Command {
	opts := plot.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "plot <out.png|out.svg>",
		Short: "Render a stored run inside the unit disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, view, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			return plot.SaveFile(args[0], view, opts)
		},
	}
	a.addRunFlag(cmd)
	cmd.Flags().IntVar(&opts.Size, "size", opts.Size, "image edge in pixels")
	cmd.Flags().Float64Var(&opts.Margin, "margin", opts.Margin, "half-width of the visible square")

	return cmd
}

func newNearestCmd(a *app) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "nearest <term>",
		Short: "List the terms closest to a term in a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, view, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			nbrs, err := view.Nearest(args[0], k)
			if err != nil {
				return err
			}
			for _, n := range nbrs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.6f\n", n.Term, n.Distance)
			}

			return nil
		},
	}
	a.addRunFlag(cmd)
	cmd.Flags().IntVarP(&k, "top", "k", 10, "number of neighbors")

	return cmd
}

func newEvaluateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate <edges.tsv>",
		Short: "Report mean rank and MAP of a stored run against an edge file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := edgelist.ReadFile(args[0])
			if err != nil {
				return err
			}
			vs, err := vocab.FromPairs(pairs)
			if err != nil {
				return err
			}
			_, view, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			rep, err := evaluate.Reconstruction(vs, view)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rep)

			return nil
		},
	}
	a.addRunFlag(cmd)

	return cmd
}

func newRunsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := store.Runs(cmd.Context(), db)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tTERMS\tEPOCHS\tLOSS")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%.5f\n",
					r.ID, r.CreatedAt.Format(time.RFC3339), r.Source, r.Terms, r.Epochs, r.Loss)
			}

			return tw.Flush()
		},
	}
}
