package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/poincare/edgelist"
	"github.com/katalvlaran/poincare/extract"
)

func newExtractCmd() *cobra.Command {
	var root, out string
	cmd := &cobra.Command{
		Use:   "extract <hypernyms.tsv> <targets.txt>",
		Short: "Build a transitive-closure edge file below a root term",
		Long: "Reads direct child<TAB>parent hypernym links and a list of allowed terms,\n" +
			"and links every allowed term below --root to each allowed ancestor on its paths from --root.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tax, err := extract.ReadTaxonomyFile(args[0])
			if err != nil {
				return err
			}
			targets, err := extract.ReadTargetsFile(args[1])
			if err != nil {
				return err
			}
			net, err := extract.Extract(tax, root, targets)
			if err != nil {
				return err
			}
			pairs := net.Pairs()
			if len(pairs) == 0 {
				return fmt.Errorf("no edges below %q", root)
			}
			log.Printf("extracted %d edges below %q", len(pairs), root)
			if out == "" {
				return edgelist.Write(cmd.OutOrStdout(), pairs)
			}

			return edgelist.WriteFile(out, pairs)
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "root term of the subtree")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output edge file (default stdout)")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}
