package main

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/mahdiidarabi/textbook-rsa/pkg/textbookrsa"
)

// palette colours actor names and highlights; every func is a plain
// Sprint when colour is off.
type palette struct {
	actors    map[string]func(a ...interface{}) string
	highlight func(a ...interface{}) string
	muted     func(a ...interface{}) string
	key       func(a ...interface{}) string
}

func newPalette(actors textbookrsa.Actors, enabled bool) *palette {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if !enabled {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
		return c.SprintFunc()
	}
	return &palette{
		actors: map[string]func(a ...interface{}) string{
			actors.Receiver:     mk(color.FgMagenta, color.Bold),
			actors.Sender:       mk(color.FgGreen, color.Bold),
			actors.Eavesdropper: mk(color.FgRed, color.Bold),
		},
		highlight: mk(color.FgYellow, color.Bold),
		muted:     mk(color.FgHiBlack),
		key:       mk(color.BgCyan, color.FgBlack, color.Bold),
	}
}

// label colours every actor name found in s.
func (p *palette) label(s string) string {
	for name, paint := range p.actors {
		if name != "" {
			s = strings.ReplaceAll(s, name, paint(name))
		}
	}
	return s
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func renderNamedValues(w io.Writer, names []string, values []*big.Int) {
	table := newTable(w, "name", "value")
	for i, name := range names {
		table.Append([]string{name, values[i].String()})
	}
	table.Render()
}

func renderKeys(w io.Writer, k *textbookrsa.KeyMaterial) {
	renderNamedValues(w, []string{"P", "Q", "n", "r", "e", "d"}, []*big.Int{k.P, k.Q, k.N, k.R, k.E, k.D})
}

func renderCandidates(w io.Writer, tried []textbookrsa.Candidate) {
	table := newTable(w, "#", "candidate", "split")
	for i, c := range tried {
		split := "no usable factors"
		if c.E != nil {
			split = fmt.Sprintf("%v * %v", c.E, c.D)
		}
		table.Append([]string{fmt.Sprint(i + 1), c.Value.String(), split})
	}
	table.Render()
}

func joinCodes(codes []*big.Int) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

func renderStep(w io.Writer, p *palette, step textbookrsa.Step) {
	fmt.Fprintf(w, "\n%s\n", p.highlight("» ")+p.label(step.Label))

	switch v := step.Value.(type) {
	case textbookrsa.PrimeSelection:
		renderNamedValues(w, []string{"P", "Q", "n", "r"}, []*big.Int{v.P, v.Q, v.N, v.R})
	case []textbookrsa.Candidate:
		renderCandidates(w, v)
	case textbookrsa.ExponentSplit:
		fmt.Fprintf(w, "\t%v has factors: e=%v, d=%v\n", v.Candidate, v.E, v.D)
	case *textbookrsa.KeyMaterial:
		renderKeys(w, v)
		fmt.Fprintf(w, "\tpublic key %s = (%v, %v)\n", p.key("(e, n)"), v.E, v.N)
	case *textbookrsa.Transcript:
		fmt.Fprintf(w, "\tEncrypted message: %s\n", p.muted(joinCodes(v.Codes)))
	case string:
		fmt.Fprintf(w, "\tDecrypted message: %s\n", p.muted(v))
	case *textbookrsa.RecoveryResult:
		renderRecovery(w, p, v)
	default:
		fmt.Fprintf(w, "\t%v\n", v)
	}
}

func renderRecovery(w io.Writer, p *palette, r *textbookrsa.RecoveryResult) {
	fmt.Fprintf(w, "\tStrategy: %s\n", r.Strategy)
	if len(r.Orders) > 0 {
		orders := make([]string, len(r.Orders))
		for i, o := range r.Orders {
			orders[i] = o.String()
		}
		fmt.Fprintf(w, "\tCode orders: %s\n", strings.Join(orders, ","))
	}
	fmt.Fprintf(w, "\tPrivate key %s: %s\n", p.key("(d, n)"), p.muted(fmt.Sprintf("(%v, %v)", r.PrivateExponent, r.Modulus)))
	fmt.Fprintf(w, "\tDecrypted message: %s\n", p.muted(string(r.Plaintext)))
	if r.Verified {
		fmt.Fprintln(w, "\t✓ Re-encrypts to the observed codes")
	}
}
