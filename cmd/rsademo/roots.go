package main

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/textbook-rsa/pkg/numtheory"
)

var rootsCmd = &cobra.Command{
	Use:   "roots <prime>",
	Short: "list the primitive roots of a small prime",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoots,
}

func init() {
	rootsCmd.Flags().Bool("table", false, "also print the full power table b^k mod p")
}

func runRoots(cmd *cobra.Command, args []string) error {
	prime, ok := new(big.Int).SetString(args[0], 0)
	if !ok {
		return errors.Errorf("invalid prime %q", args[0])
	}

	table, err := numtheory.PrimitiveRootTable(prime)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if full, _ := cmd.Flags().GetBool("table"); full {
		header := []string{"b"}
		for k := 1; k <= len(table); k++ {
			header = append(header, fmt.Sprintf("b^%d", k))
		}
		tw := newTable(out, header...)
		for row, residues := range table {
			line := []string{fmt.Sprint(row + 1)}
			for _, r := range residues {
				line = append(line, fmt.Sprint(r))
			}
			tw.Append(line)
		}
		tw.Render()
	}

	roots := table.Roots()
	tw := newTable(out, "b", "primitive root")
	count := 0
	for i, r := range roots {
		mark := ""
		if r.Cmp(numtheory.NotPrimitiveRoot) != 0 {
			mark = "yes"
			count++
		}
		tw.Append([]string{fmt.Sprint(i + 1), mark})
	}
	tw.SetFooter([]string{"total", fmt.Sprint(count)})
	tw.Render()
	return nil
}
