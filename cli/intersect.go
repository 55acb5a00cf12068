package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/trispace/config"
	"go.viam.com/trispace/input"
	"go.viam.com/trispace/logging"
	"go.viam.com/trispace/octree"
	"go.viam.com/trispace/spatialmath"
)

// IntersectAction prints the 1-based number of every triangle that intersects at least one other,
// in ascending order and one per line.
func IntersectAction(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(c, conf)
	defer func() {
		//nolint:errcheck
		logger.Sync()
	}()

	triangles, err := readTriangles(c)
	if err != nil {
		return err
	}

	var indices []int
	if conf.BruteForce {
		logger.Debugw("comparing every pair", "triangles", len(triangles))
		indices = octree.BruteForce(triangles)
	} else {
		tree, err := octree.New(c.Context, triangles, conf.OctreeConfig(), logger.Sublogger("octree"))
		if err != nil {
			return err
		}
		if indices, err = tree.IntersectingIndices(c.Context); err != nil {
			return err
		}
	}
	return printIndices(c.App.Writer, indices)
}

func printIndices(w io.Writer, indices []int) error {
	if len(indices) == 0 {
		return nil
	}
	lines := lo.Map(indices, func(idx, _ int) string {
		return strconv.Itoa(idx + 1)
	})
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// loadConfig reads the config file if one is given and applies command line overrides on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	conf := config.Default()
	if path := c.String(generalFlagConfig); path != "" {
		var err error
		if conf, err = config.Read(path); err != nil {
			return nil, err
		}
	}

	if c.IsSet(generalFlagWorkers) {
		conf.Workers = c.Int(generalFlagWorkers)
	}
	if c.IsSet(generalFlagLeafSize) {
		conf.OctreeLeafSize = c.Int(generalFlagLeafSize)
	}
	if c.IsSet(generalFlagMaxDepth) {
		conf.OctreeMaxDepth = c.Int(generalFlagMaxDepth)
	}
	if c.IsSet(generalFlagBruteForce) {
		conf.BruteForce = c.Bool(generalFlagBruteForce)
	}
	if c.Bool(generalFlagDebug) {
		conf.LogLevel = logging.DEBUG.String()
	}

	source := conf.ConfigFilePath
	if source == "" {
		source = "flags"
	}
	if err := conf.Validate(source); err != nil {
		return nil, err
	}
	return conf, nil
}

func newLogger(c *cli.Context, conf *config.Config) logging.Logger {
	logger := logging.NewBlankLogger("trispace")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logger.SetLevel(conf.Level())
	return logger
}

// readTriangles reads from the file named by the first argument, or from stdin when there is none.
func readTriangles(c *cli.Context) ([]*spatialmath.Triangle, error) {
	switch c.NArg() {
	case 0:
		return input.ReadTriangles(c.App.Reader)
	case 1:
		return input.ReadFile(c.Args().First())
	default:
		return nil, errors.Errorf("expected at most one input file, got %d", c.NArg())
	}
}
