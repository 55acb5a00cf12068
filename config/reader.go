package config

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// Read reads a config from the given file. Environment variables written as $VAR or ${VAR} are
// substituted before parsing.
func Read(filePath string) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(filePath, bytes.NewReader(buf))
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
// Keys missing from the input keep their default values and unknown keys are rejected.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	attrs := map[string]interface{}{}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&attrs); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}

	conf := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		Result:      conf,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error creating decoder")
	}
	if err := decoder.Decode(attrs); err != nil {
		return nil, errors.Wrapf(err, "failed to process Config")
	}
	conf.ConfigFilePath = originalPath

	if err := conf.Validate(originalPath); err != nil {
		return nil, err
	}
	return conf, nil
}
