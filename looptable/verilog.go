package looptable

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/Thiagojm/rngbench/nearest"
)

// Sentinel is the don't-care value assigned by both default entries.
const Sentinel = "'X"

// Format controls signal names and literal widths of the rendered table.
type Format struct {
	FastSelect      string `mapstructure:"fast_select" toml:"fast_select"`
	SlowSelect      string `mapstructure:"slow_select" toml:"slow_select"`
	FastOutput      string `mapstructure:"fast_output" toml:"fast_output"`
	SlowOutput      string `mapstructure:"slow_output" toml:"slow_output"`
	FastSelectWidth int    `mapstructure:"fast_select_width" toml:"fast_select_width"`
	SlowSelectWidth int    `mapstructure:"slow_select_width" toml:"slow_select_width"`
	FastWidth       int    `mapstructure:"fast_width" toml:"fast_width"`
	SlowWidth       int    `mapstructure:"slow_width" toml:"slow_width"`
	// EndModule appends an endmodule line so the output can close a module
	// body whose header precedes it.
	EndModule bool `mapstructure:"end_module" toml:"end_module"`
}

// DefaultFormat returns the signal names and widths of the bench FPGA.
func DefaultFormat() Format {
	return Format{
		FastSelect:      "fast_conf",
		SlowSelect:      "slow_conf",
		FastOutput:      "fast_loop_len",
		SlowOutput:      "slow_loop_len",
		FastSelectWidth: 5,
		SlowSelectWidth: 4,
		FastWidth:       7,
		SlowWidth:       13,
		EndModule:       true,
	}
}

func (f Format) validate() error {
	var result *multierror.Error
	for _, n := range []struct{ field, v string }{
		{"fast select", f.FastSelect},
		{"slow select", f.SlowSelect},
		{"fast output", f.FastOutput},
		{"slow output", f.SlowOutput},
	} {
		if n.v == "" {
			result = multierror.Append(result, fmt.Errorf("%s signal name is empty", n.field))
		}
	}
	for _, w := range []struct {
		field string
		v     int
	}{
		{"fast select", f.FastSelectWidth},
		{"slow select", f.SlowSelectWidth},
		{"fast", f.FastWidth},
		{"slow", f.SlowWidth},
	} {
		if w.v < 0 || w.v > 32 {
			result = multierror.Append(result, fmt.Errorf("%s width %d outside 0..32", w.field, w.v))
		}
	}
	return result.ErrorOrNil()
}

func literal(v, width int) string {
	if width == 0 {
		return strconv.Itoa(v)
	}
	return fmt.Sprintf("%d'd%d", width, v)
}

// WriteVerilog renders t as an always_comb block of nested case statements.
func (t Table) WriteVerilog(w io.Writer, f Format) error {
	if len(t.Entries) == 0 {
		return errors.New("empty table")
	}
	if err := f.validate(); err != nil {
		return err
	}
	if err := t.checkWidths(f); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\talways_comb case (%s)\n", f.FastSelect)
	for _, e := range t.Entries {
		fmt.Fprintf(bw, "\t\t%s: begin\n", literal(e.Index, f.FastSelectWidth))
		fmt.Fprintf(bw, "\t\t\t%s = %s;\n", f.FastOutput, literal(e.Fast, f.FastWidth))
		fmt.Fprintf(bw, "\t\t\tcase(%s)\n", f.SlowSelect)
		for _, s := range e.Slow {
			fmt.Fprintf(bw, "\t\t\t\t%s: %s = %s;\n", literal(s.Index, f.SlowSelectWidth), f.SlowOutput, literal(s.Value, f.SlowWidth))
		}
		fmt.Fprintf(bw, "\t\t\t\tdefault: %s = %s;\n", f.SlowOutput, Sentinel)
		fmt.Fprint(bw, "\t\t\tendcase\n\t\tend\n")
	}
	fmt.Fprint(bw, "\t\tdefault: begin\n")
	fmt.Fprintf(bw, "\t\t\t%s = %s;\n", f.FastOutput, Sentinel)
	fmt.Fprintf(bw, "\t\t\t%s = %s;\n", f.SlowOutput, Sentinel)
	fmt.Fprint(bw, "\t\tend\n\tendcase\n")
	if f.EndModule {
		fmt.Fprint(bw, "endmodule\n")
	}
	return bw.Flush()
}

// Generate builds the table for spec over base and writes it to w. The text
// is rendered in memory first so a failure never leaves a partial table in w.
func Generate(w io.Writer, base *nearest.Sequence, spec Spec) error {
	t, err := Build(base, spec)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := t.WriteVerilog(&buf, spec.Format); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}
