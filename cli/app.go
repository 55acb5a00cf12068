// Package cli contains the trispace command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	generalFlagConfig     = "config"
	generalFlagDebug      = "debug"
	generalFlagWorkers    = "workers"
	generalFlagLeafSize   = "leaf-size"
	generalFlagMaxDepth   = "max-depth"
	generalFlagBruteForce = "brute-force"
)

// commonFlags returns fresh flags on each call since urfave flags record whether they were set.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    generalFlagConfig,
			Aliases: []string{"c"},
			Usage:   "load configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
		&cli.IntFlag{
			Name:  generalFlagWorkers,
			Usage: "number of leaves verified concurrently (0 uses every CPU)",
		},
		&cli.IntFlag{
			Name:  generalFlagLeafSize,
			Usage: "largest number of triangles a leaf holds before it is split",
		},
		&cli.IntFlag{
			Name:  generalFlagMaxDepth,
			Usage: "deepest level the octree is split to",
		},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "trispace",
		Usage:           "find which triangles in 3D space intersect another",
		UsageText:       "trispace [options] [FILE]",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		// errors go back to the caller of Run instead of exiting the process
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  generalFlagBruteForce,
				Usage: "compare every pair of triangles instead of building an octree",
			},
		}, commonFlags()...),
		ArgsUsage: "[FILE]",
		Action:    IntersectAction,
		Commands: []*cli.Command{
			{
				Name:      "stats",
				Usage:     "print how the octree partitions the input",
				ArgsUsage: "[FILE]",
				Flags:     commonFlags(),
				Action:    StatsAction,
			},
		},
	}
}
