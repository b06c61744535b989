package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/exp/slices"

	"chess-core/board"
)

func main() {
	fen := flag.String("fen", board.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	prof := flag.String("profile", "", "Write a profile during the run: cpu or mem")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		fmt.Fprintf(os.Stderr, "unknown -profile mode %q (want cpu or mem)\n", *prof)
		os.Exit(2)
	}

	if *divide {
		div := board.PerftDivide(b, *depth)
		type kv struct {
			m board.Move
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m, n})
			sum += n
		}
		// Sort moves for stable output
		slices.SortFunc(arr, func(a, b kv) int {
			return strings.Compare(a.m.String(), b.m.String())
		})
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.m.String(), x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	var total uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		total += board.Perft(b, *depth)
	}
	elapsed := time.Since(start)

	nodes := total / uint64(*repeat)
	nps := float64(total) / elapsed.Seconds()
	prefix := ""
	if *label != "" {
		prefix = *label + " "
	}
	fmt.Printf("%sdepth=%d nodes=%d elapsed=%s nps=%.0f\n", prefix, *depth, nodes, elapsed, nps)
}
