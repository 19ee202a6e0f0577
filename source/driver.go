package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Driver reads and writes dumps in one encoding.
type Driver interface {
	Name() string
	Decode(r io.Reader) (*Dump, error)
	Encode(w io.Writer, d *Dump) error
}

// JSON returns the go-json backed driver.
func JSON() Driver { return jsonDriver{} }

// YAML returns the yaml.v3 backed driver.
func YAML() Driver { return yamlDriver{} }

// DriverFor picks a driver by format name ("json", "yaml", "yml").
func DriverFor(format string) (Driver, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		return JSON(), nil
	case "yaml", "yml":
		return YAML(), nil
	}
	return nil, fmt.Errorf("unsupported dump format %q", format)
}

type jsonDriver struct{}

func (jsonDriver) Name() string { return "go-json" }

func (jsonDriver) Decode(r io.Reader) (*Dump, error) {
	var d Dump
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode json dump: %w", err)
	}
	return &d, nil
}

func (jsonDriver) Encode(w io.Writer, d *Dump) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

type yamlDriver struct{}

func (yamlDriver) Name() string { return "yaml.v3" }

func (yamlDriver) Decode(r io.Reader) (*Dump, error) {
	var d Dump
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode yaml dump: %w", err)
	}
	return &d, nil
}

func (yamlDriver) Encode(w io.Writer, d *Dump) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

// ReadFile loads a dump, choosing the driver from the file extension.
func ReadFile(path string) (*Dump, error) {
	drv, err := DriverFor(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return drv.Decode(f)
}
