// Package nbtest runs golden wire cases defined in YAML: annotated
// hex input, decode options, and either the expected tree rendering
// or a pattern the decode error must match.
package nbtest

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/opennbt/nbt/nbtio/binio"
	"github.com/opennbt/nbt/nbtio/textio"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Case is one wire test.  Input is hex with #-comments.  Exactly one
// of Output and ErrorRE must be set: Output is the rendering of each
// decoded tag followed by a newline, ErrorRE a regexp the decode
// error must match.  Document runs the one-document read path
// instead of the stream loop.
type Case struct {
	Name     string `yaml:"name,omitempty"`
	Input    string `yaml:"input"`
	Order    string `yaml:"order,omitempty"`
	Document bool   `yaml:"document,omitempty"`
	Output   string `yaml:"output,omitempty"`
	ErrorRE  string `yaml:"errorRE,omitempty"`
}

var hexComments = regexp.MustCompile("#[^\n]*")

// ParseHex decodes annotated hex, stripping #-comments and
// whitespace first.
func ParseHex(s string) ([]byte, error) {
	s = hexComments.ReplaceAllString(s, "")
	return hex.DecodeString(strings.Join(strings.Fields(s), ""))
}

func Load(path string) (*Case, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Case{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), ".yaml")
	}
	if (c.Output == "") == (c.ErrorRE == "") {
		return nil, fmt.Errorf("%s: exactly one of output and errorRE required", path)
	}
	return c, nil
}

// RunDir runs every .yaml case under dir as a subtest of t.
func RunDir(t *testing.T, dir string) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no cases under %s", dir)
	for _, path := range paths {
		c, err := Load(path)
		require.NoError(t, err)
		t.Run(c.Name, c.Run)
	}
}

func (c *Case) Run(t *testing.T) {
	input, err := ParseHex(c.Input)
	require.NoError(t, err)
	var order binary.ByteOrder = binary.BigEndian
	switch c.Order {
	case "", "big":
	case "little":
		order = binary.LittleEndian
	default:
		t.Fatalf("bad order %q", c.Order)
	}
	actual, runErr := c.decode(input, binio.ReaderOpts{Order: order})
	if c.ErrorRE != "" {
		if runErr == nil {
			t.Fatalf("expected error matching %q, got none", c.ErrorRE)
		}
		require.Regexp(t, c.ErrorRE, runErr.Error())
		return
	}
	require.NoError(t, runErr)
	if actual != c.Output {
		t.Errorf("expected and actual output differ:\n%s", diff(c.Output, actual))
	}
}

func (c *Case) decode(input []byte, opts binio.ReaderOpts) (string, error) {
	reader := binio.NewReaderWithOpts(bytes.NewReader(input), opts)
	var out strings.Builder
	if c.Document {
		root, err := reader.ReadDocument()
		if err != nil {
			return "", err
		}
		out.WriteString(textio.String(root))
		out.WriteByte('\n')
		return out.String(), nil
	}
	for {
		tag, err := reader.Read()
		if err != nil {
			return "", err
		}
		if tag == nil {
			return out.String(), nil
		}
		out.WriteString(textio.String(tag))
		out.WriteByte('\n')
	}
}

func diff(expected, actual string) string {
	s, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  5,
	})
	return s
}
