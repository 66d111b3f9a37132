// Command ampinfo prints the amplifier's parameter layout and the
// frequency and distortion behavior of its stages.
//
// Usage:
//
//	ampinfo [flags] [section ...]
//
// Sections are params, cabinets, tonestack and drive. Without arguments
// every section is printed.
//
// Examples:
//
//	ampinfo params
//	ampinfo -rate 44100 cabinets
//	ampinfo -bass 6 -treble -3 tonestack
//	ampinfo -measure cabinets tonestack
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-amp/amp/cabinet"
	"github.com/cwbudde/algo-amp/amp/distortion"
	"github.com/cwbudde/algo-amp/amp/param"
	"github.com/cwbudde/algo-amp/amp/tonestack"
	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
	"github.com/cwbudde/algo-amp/measure/response"
)

var sections = []string{"params", "cabinets", "tonestack", "drive"}

type options struct {
	rate    float64
	freqs   []float64
	bass    float64
	mid     float64
	treble  float64
	measure bool
}

func main() {
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	freqList := flag.String("freqs", "50,100,200,500,1000,2000,3000,5000,8000,12000", "comma-separated response frequencies in Hz")
	bass := flag.Float64("bass", 0, "tone stack bass gain in dB")
	mid := flag.Float64("mid", 0, "tone stack mid gain in dB")
	treble := flag.Float64("treble", 0, "tone stack treble gain in dB")
	measure := flag.Bool("measure", false, "measure responses from impulse responses instead of evaluating coefficients")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ampinfo [flags] [section ...]\n\n")
		fmt.Fprintf(os.Stderr, "Sections: %s\n\n", strings.Join(sections, ", "))
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	freqs, err := parseFreqs(*freqList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	opts := options{rate: *rate, freqs: freqs, bass: *bass, mid: *mid, treble: *treble, measure: *measure}

	names := flag.Args()
	if len(names) == 0 {
		names = sections
	}

	for i, name := range names {
		if i > 0 {
			fmt.Println()
		}

		if err := run(os.Stdout, strings.ToLower(strings.TrimSpace(name)), opts); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func run(w io.Writer, section string, opts options) error {
	switch section {
	case "params":
		return printParams(w)
	case "cabinets":
		return printCabinets(w, opts)
	case "tonestack":
		return printToneStack(w, opts)
	case "drive":
		return printDrive(w, opts)
	default:
		return fmt.Errorf("unknown section %q (want one of %s)", section, strings.Join(sections, ", "))
	}
}

func parseFreqs(list string) ([]float64, error) {
	var out []float64

	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		f, err := strconv.ParseFloat(field, 64)
		if err != nil || !(f > 0) {
			return nil, fmt.Errorf("invalid frequency %q", field)
		}

		out = append(out, f)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no frequencies given")
	}

	return out, nil
}

func printParams(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Key\tLabel\tMin\tMax\tDefault\tMapping\tSmoothing\n")
	fmt.Fprintf(tw, "---\t-----\t---\t---\t-------\t-------\t---------\n")

	for _, d := range param.Layout() {
		smoothing := "-"
		if d.Smoothing > 0 {
			smoothing = d.Smoothing.String()
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.Key, d.Label, d.Format(0), d.Format(1), d.Format(d.DefaultNormalized()), d.Mapping, smoothing)
	}

	return tw.Flush()
}

func header(tw io.Writer, first string, freqs []float64) {
	fmt.Fprint(tw, first)

	for _, f := range freqs {
		fmt.Fprintf(tw, "\t%s", hz(f))
	}

	fmt.Fprintln(tw)
	fmt.Fprint(tw, strings.Repeat("-", len(first)))

	for range freqs {
		fmt.Fprint(tw, "\t----")
	}

	fmt.Fprintln(tw)
}

func hz(f float64) string {
	if f >= 1000 {
		return strconv.FormatFloat(f/1000, 'f', -1, 64) + "k"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// irLength is the impulse response length used by -measure.
const irLength = 1 << 15

// magnitudes returns a response in dB at freqs, either from the analytic
// transfer function or from an FFT of the measured impulse response.
func magnitudes(opts options, analytic func(freqHz float64) float64, impulse func() []float64) ([]float64, error) {
	out := make([]float64, len(opts.freqs))

	if !opts.measure {
		for i, f := range opts.freqs {
			out[i] = analytic(f)
		}

		return out, nil
	}

	spec, err := response.Analyze(impulse(), opts.rate, 0)
	if err != nil {
		return nil, err
	}

	for i, f := range opts.freqs {
		out[i] = spec.DB(f)
	}

	return out, nil
}

func printCabinets(w io.Writer, opts options) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header(tw, "Cabinet [dB]", opts.freqs)

	for _, p := range cabinet.Profiles() {
		coeffs := cabinet.Design(p, opts.rate)
		chain := biquad.NewChain(coeffs[:]...)

		mags, err := magnitudes(opts,
			func(f float64) float64 { return chain.MagnitudeDB(f, opts.rate) },
			func() []float64 {
				ir := make([]float64, irLength)
				chain.ImpulseResponse(ir)

				return ir
			})
		if err != nil {
			return err
		}

		fmt.Fprint(tw, p.Key())

		for _, m := range mags {
			fmt.Fprintf(tw, "\t%.2f", m)
		}

		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

func printToneStack(w io.Writer, opts options) error {
	ts, err := tonestack.New(opts.rate)
	if err != nil {
		return err
	}

	ts.SetGains(opts.bass, opts.mid, opts.treble)

	mags, err := magnitudes(opts, ts.MagnitudeDB, func() []float64 {
		return response.Capture(irLength, ts.ProcessSample)
	})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header(tw, "Tone stack [dB]", opts.freqs)
	fmt.Fprintf(tw, "%+.1f/%+.1f/%+.1f", ts.Gain(tonestack.Bass), ts.Gain(tonestack.Mid), ts.Gain(tonestack.Treble))

	for _, m := range mags {
		fmt.Fprintf(tw, "\t%.2f", m)
	}

	fmt.Fprintln(tw)

	return tw.Flush()
}

// The drive test tone sits exactly on an FFT bin at any sample rate.
const (
	driveBins  = 40
	driveSize  = 8192
	driveLevel = 0.5
)

func printDrive(w io.Writer, opts options) error {
	st, err := distortion.NewStage(opts.rate)
	if err != nil {
		return err
	}

	freq := driveBins * opts.rate / driveSize
	src := make([]float64, driveSize)
	for i := range src {
		src[i] = driveLevel * math.Sin(2*math.Pi*freq*float64(i)/opts.rate)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Drive\tAmount\tTHD [%%]\tTHD [dB]\tEven [%%]\tOdd [%%]\t\n")
	fmt.Fprintf(tw, "-----\t------\t-------\t--------\t--------\t-------\t\n")

	out := make([]float64, len(src))

	for _, drive := range []float64{1, 1.5, 2, 4, 8, 12, 20} {
		st.Reset()

		for i, x := range src {
			out[i] = st.ProcessSample(x, drive)
		}

		d, err := response.Harmonics(out, opts.rate, freq, 10)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%.1f\t%.2f\t%.3f\t%.1f\t%.3f\t%.3f\t\n",
			drive, st.Amount(drive), 100*d.THD, d.THDDB(), 100*d.Even, 100*d.Odd)
	}

	return tw.Flush()
}
