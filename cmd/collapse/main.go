package main

import (
	stderrors "errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	wfc "github.com/shaggyfox/WaveFunctionCollapse"
	"github.com/shaggyfox/WaveFunctionCollapse/internal/imageio"
)

// VERSION is injected by buildflags.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "collapse"
	myApp.Usage = "overlapping-patch Wave Function Collapse image generator"
	myApp.Version = VERSION
	myApp.UsageText = "collapse <image-path> <patch-size N> <out-W> <out-H> [FLAG ...]\n   " +
		"FLAGs (case-insensitive, any order): ROTATE MIRROR_V MIRROR_H NO_H_WRAP NO_V_WRAP SEAMLESS"
	myApp.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "seed",
			Value: 1,
			Usage: "seed for the deterministic random source",
		},
		cli.IntFlag{
			Name:  "max-restarts",
			Value: wfc.DefaultMaxRestarts,
			Usage: "restart budget before giving up on a contradiction",
		},
		cli.StringFlag{
			Name:  "out",
			Value: "out.png",
			Usage: "output image path; codec chosen from the extension",
		},
		cli.BoolFlag{
			Name:  "debug-index",
			Usage: "log every patch's id, weight and per-direction allowed counts",
		},
		cli.StringFlag{
			Name:  "dump-patches",
			Usage: "write every distinct patch as a mosaic image to this path",
		},
	}
	myApp.Action = run
	if err := myApp.Run(os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		log.Printf("%+v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	args := c.Args()
	if len(args) < 4 {
		cli.ShowAppHelp(c)
		return cli.NewExitError("missing positional arguments", 1)
	}

	path := args[0]
	n, err := strconv.Atoi(args[1])
	if err != nil || n <= 0 {
		return cli.NewExitError(fmt.Sprintf("invalid patch size %q", args[1]), 1)
	}
	outW, err := strconv.Atoi(args[2])
	if err != nil || outW <= 0 {
		return cli.NewExitError(fmt.Sprintf("invalid output width %q", args[2]), 1)
	}
	outH, err := strconv.Atoi(args[3])
	if err != nil || outH <= 0 {
		return cli.NewExitError(fmt.Sprintf("invalid output height %q", args[3]), 1)
	}

	flags, seamless, err := parseFlags(args[4:])
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	src, err := imageio.Load(path)
	if err != nil {
		return cli.NewExitError(errors.Wrap(err, "load input").Error(), 1)
	}

	idx, err := wfc.BuildPatchIndex(src, n, flags)
	if err != nil {
		return argumentExit(err)
	}
	log.Printf("patch index: %d distinct patches from a %dx%d input", len(idx.Patches), src.Width(), src.Height())

	if c.Bool("debug-index") {
		debugIndex(idx)
	}
	if dump := c.String("dump-patches"); dump != "" {
		if err := dumpPatches(idx, dump); err != nil {
			return cli.NewExitError(errors.Wrap(err, "dump patches").Error(), 1)
		}
	}

	sc := &wfc.SolverContext{
		Index:    idx,
		W:        outW,
		H:        outH,
		Seamless: seamless,
		RNG:      wfc.NewDeterministicSource(uint32(c.Int("seed"))),
		Options:  wfc.SolverOptions{MaxRestarts: c.Int("max-restarts")},
	}

	result, err := sc.Solve()
	if err != nil {
		var budget *wfc.RestartBudgetExceededError
		if stderrors.As(err, &budget) {
			log.Printf("gave up: %v", err)
			return cli.NewExitError(err.Error(), 2)
		}
		return argumentExit(err)
	}
	log.Printf("solved after %d restart(s)", result.Restarts)

	out, err := wfc.FinalImage(result.Grid)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	if err := imageio.Save(c.String("out"), out); err != nil {
		return cli.NewExitError(errors.Wrap(err, "save output").Error(), 1)
	}
	log.Printf("wrote %s", c.String("out"))
	return nil
}

// argumentExit maps a core error that isn't a restart-budget failure to
// exit code 1, matching spec.md §6's "1 on argument errors" contract —
// InputTooSmall and PatchCapacityExceeded are reported the same way an
// ArgumentError is.
func argumentExit(err error) error {
	return cli.NewExitError(err.Error(), 1)
}

// parseFlags tokenizes the bare-word flag list trailing the four
// positional arguments. Unknown tokens are an ArgumentError-equivalent
// failure, matching spec.md §6's "unknown flags exit non-zero".
func parseFlags(tokens []string) (flags wfc.SymmetryFlags, seamless bool, err error) {
	flags = wfc.SymmetryFlags{WrapX: true, WrapY: true}
	for _, tok := range tokens {
		switch strings.ToUpper(tok) {
		case "ROTATE":
			flags.Rotate = true
		case "MIRROR_V":
			flags.MirrorV = true
		case "MIRROR_H":
			flags.MirrorH = true
		case "NO_H_WRAP":
			flags.WrapX = false
		case "NO_V_WRAP":
			flags.WrapY = false
		case "SEAMLESS":
			seamless = true
		default:
			return flags, false, errors.Errorf("unknown flag %q", tok)
		}
	}
	return flags, seamless, nil
}

func debugIndex(idx *wfc.PatchIndex) {
	for id, p := range idx.Patches {
		log.Printf("patch %d: weight=%d top=%d left=%d bottom=%d right=%d",
			id, p.Weight,
			p.Allowed[wfc.TOP].Count(), p.Allowed[wfc.LEFT].Count(),
			p.Allowed[wfc.BOTTOM].Count(), p.Allowed[wfc.RIGHT].Count())
	}
}

// dumpPatches writes every distinct patch as a roughly square mosaic image,
// recovered from the C prototype's on-screen tile atlas debug view.
func dumpPatches(idx *wfc.PatchIndex, path string) error {
	mosaic := wfc.NewPatchMosaic(idx)
	return imageio.Save(path, mosaic)
}
