package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/textbook-rsa/pkg/numtheory"
)

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms [name] [args...]",
	Short: "list the algorithms, or run one with integer arguments",
	RunE:  runAlgorithms,
}

func runAlgorithms(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		tw := newTable(out, "name", "arguments", "description")
		for _, a := range numtheory.Algorithms() {
			tw.Append([]string{a.Name, strings.Join(a.Args, " "), a.Description})
		}
		tw.Render()
		return nil
	}

	alg, err := numtheory.Lookup(args[0])
	if err != nil {
		return err
	}
	values, err := parseIntegers(args[1:])
	if err != nil {
		return err
	}
	result, err := alg.Call(values)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatResult(result))
	return nil
}

func parseIntegers(args []string) ([]*big.Int, error) {
	values := make([]*big.Int, len(args))
	for i, s := range args {
		v, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
		if !ok {
			return nil, errors.Errorf("argument %d: invalid integer %q", i+1, s)
		}
		values[i] = v
	}
	return values, nil
}

func formatResult(v interface{}) string {
	switch r := v.(type) {
	case []*big.Int:
		parts := make([]string, len(r))
		for i, x := range r {
			parts[i] = x.String()
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(r)
	}
}
