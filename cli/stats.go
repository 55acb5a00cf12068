package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"go.viam.com/trispace/octree"
)

// StatsAction builds the octree over the input and prints a table describing its shape.
func StatsAction(c *cli.Context) error {
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
	tree, err := octree.New(c.Context, triangles, conf.OctreeConfig(), logger.Sublogger("octree"))
	if err != nil {
		return err
	}
	stats, err := tree.Stats()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, statsTable(stats, tree.HalfSide()))
	return err
}

func statsTable(stats octree.Stats, halfSide float64) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Statistic", "Value"})
	t.AppendRows([]table.Row{
		{"Triangles", stats.Triangles},
		{"Root half side", fmt.Sprintf("%g", halfSide)},
		{"Nodes", stats.Nodes},
		{"Leaves", stats.Leaves},
		{"Empty leaves", stats.EmptyLeaves},
		{"Max depth", stats.MaxDepth},
		{"Index entries", stats.IndexEntries},
		{"Replication factor", fmt.Sprintf("%.2f", stats.ReplicationFactor())},
		{"Leaf size mean", fmt.Sprintf("%.2f", stats.LeafSizeMean)},
		{"Leaf size median", fmt.Sprintf("%.2f", stats.LeafSizeMedian)},
		{"Leaf size max", fmt.Sprintf("%.0f", stats.LeafSizeMax)},
	})
	return t.Render()
}
