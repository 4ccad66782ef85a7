// Package onet holds the helpers shared by the simulation binaries.
package onet

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cltScale/SamplingDist/onet/log"
	"golang.org/x/xerrors"
)

func tomlPath(filename string, dirOpt []string) string {
	if len(dirOpt) > 0 && dirOpt[0] != "" {
		return filepath.Join(dirOpt[0], filename)
	}
	return filename
}

// ReadTomlConfig decodes the toml-file filename into conf. If dirOpt is given,
// filename is taken relative to that directory.
func ReadTomlConfig(conf interface{}, filename string, dirOpt ...string) error {
	buf, err := os.ReadFile(tomlPath(filename, dirOpt))
	if err != nil {
		return xerrors.Errorf("reading config: %w", err)
	}
	md, err := toml.Decode(string(buf), conf)
	if err != nil {
		return xerrors.Errorf("decoding toml: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Warn("Unknown key in", filename, ":", key.String())
	}
	return nil
}

// WriteTomlConfig encodes conf into the toml-file filename, optionally inside
// the directory dirOpt.
func WriteTomlConfig(conf interface{}, filename string, dirOpt ...string) error {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(conf); err != nil {
		return xerrors.Errorf("encoding toml: %w", err)
	}
	path := tomlPath(filename, dirOpt)
	if err := os.WriteFile(path, buf.Bytes(), 0660); err != nil {
		return xerrors.Errorf("writing %s: %w", path, err)
	}
	log.Lvl3("Wrote config to", path)
	return nil
}
