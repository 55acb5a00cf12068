package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/trispace/logging"
	"go.viam.com/trispace/octree"
)

func TestFromReaderValidate(t *testing.T) {
	_, err := FromReader("somepath", strings.NewReader(""))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "EOF")

	_, err = FromReader("somepath", strings.NewReader(`{"workers": "four"}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "workers")

	_, err = FromReader("somepath", strings.NewReader(`{"workers": 2.5}`))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = FromReader("somepath", strings.NewReader(`{"leaf_size": 3}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "leaf_size")

	conf, err := FromReader("somepath", strings.NewReader(`{}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf, test.ShouldResemble, &Config{
		ConfigFilePath: "somepath",
		OctreeLeafSize: octree.OptimalLeafSize,
		OctreeMaxDepth: octree.MaxDepth,
		LogLevel:       "info",
	})

	conf, err = FromReader("somepath", strings.NewReader(
		`{"octree_leaf_size": 4, "octree_max_depth": 9, "workers": 3, "brute_force": true, "log_level": "DEBUG"}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf, test.ShouldResemble, &Config{
		ConfigFilePath: "somepath",
		OctreeLeafSize: 4,
		OctreeMaxDepth: 9,
		Workers:        3,
		BruteForce:     true,
		LogLevel:       "DEBUG",
	})
	test.That(t, conf.Level(), test.ShouldEqual, logging.DEBUG)
	test.That(t, conf.OctreeConfig(), test.ShouldResemble, &octree.Config{LeafSize: 4, MaxDepth: 9, Workers: 3})
	test.That(t, conf.OctreeConfig().Validate(), test.ShouldBeNil)

	_, err = FromReader("somepath", strings.NewReader(`{"octree_leaf_size": 0, "workers": -1}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "somepath")
	test.That(t, err.Error(), test.ShouldContainSubstring, "octree_leaf_size must be at least 1")
	test.That(t, err.Error(), test.ShouldContainSubstring, "workers cannot be negative")

	_, err = FromReader("somepath", strings.NewReader(`{"log_level": ""}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"log_level" is required`)

	_, err = FromReader("somepath", strings.NewReader(`{"log_level": "loud"}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown log level")
}

func TestDefaultIsValid(t *testing.T) {
	conf := Default()
	test.That(t, conf.Validate("default"), test.ShouldBeNil)
	test.That(t, conf.Level(), test.ShouldEqual, logging.INFO)
	test.That(t, conf.OctreeConfig(), test.ShouldResemble, octree.DefaultConfig())
}

func TestRead(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)

	path := filepath.Join(dir, "trispace.json")
	t.Setenv("TRISPACE_TEST_WORKERS", "6")
	err = os.WriteFile(path, []byte(`{"workers": ${TRISPACE_TEST_WORKERS}, "octree_max_depth": 2}`), 0o600)
	test.That(t, err, test.ShouldBeNil)

	conf, err := Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.ConfigFilePath, test.ShouldEqual, path)
	test.That(t, conf.Workers, test.ShouldEqual, 6)
	test.That(t, conf.OctreeMaxDepth, test.ShouldEqual, 2)
	test.That(t, conf.OctreeLeafSize, test.ShouldEqual, octree.OptimalLeafSize)
}
