package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/cstpack/source"
)

func newPackCmd(a *app) *cobra.Command {
	var grammarPath, root string
	cmd := &cobra.Command{
		Use:   "pack DUMP",
		Short: "Pack a syntax tree dump of any grammar and print its outline",
		Long: `pack loads a JSON or YAML dump as written by "tsh dump", optionally replacing
its grammar with a grammar file, and packs the single top-level node.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := source.ReadFile(args[0])
			if err != nil {
				return err
			}
			if grammarPath != "" {
				g, err := source.LoadGrammar(grammarPath)
				if err != nil {
					return err
				}
				d.Grammar = g
			}
			if root == "" {
				if len(d.Nodes) == 0 {
					return fmt.Errorf("dump %s has no nodes", args[0])
				}
				root = d.Nodes[0].Rule
			}
			tree, err := d.Pack(root)
			if err != nil {
				a.log.Error("pack failed", "dump", args[0], "root", root, "error", err)
				return err
			}
			return tree.Outline(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&grammarPath, "grammar", "", "YAML grammar file overriding the dump's grammar")
	cmd.Flags().StringVar(&root, "root", "", "rule of the top-level node (default: the first node's rule)")
	return cmd
}
