package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/confjson/internal/conferr"
	"github.com/specialistvlad/confjson/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestRun_NormalisesDocument(t *testing.T) {
	t.Parallel()

	root := testutil.WriteFiles(t, map[string]string{
		"types/server.hcl": testutil.ServerManifest,
		"doc.json": `{
  "type": "maia.example.Server",
  "body": {
    "port": {"type": "Int", "value": 80},
    "host": {"type": "String", "value": "example.org"}
  }
}`,
	})

	out := &bytes.Buffer{}
	args := []string{"-m", filepath.Join(root, "types"), "-check-types", filepath.Join(root, "doc.json")}
	require.NoError(t, run(strings.NewReader(""), out, &bytes.Buffer{}, args))
	require.Equal(t,
		`{"type":"maia.example.Server","body":{"port":{"type":"Int","value":80},"host":{"type":"String","value":"example.org"}}}`+"\n",
		out.String())
}

func TestRun_ReadsStdin(t *testing.T) {
	t.Parallel()

	root := testutil.WriteFiles(t, map[string]string{"server.hcl": testutil.ServerManifest})
	in := strings.NewReader(`{"type":"maia.example.TLS","body":{"cert":{"type":"String","value":"c.pem"}}}`)

	out := &bytes.Buffer{}
	require.NoError(t, run(in, out, &bytes.Buffer{}, []string{"-m", root, "-"}))
	require.Contains(t, out.String(), `"cert":{"type":"String","value":"c.pem"}`)
}

func TestRun_TypeCheckFailure(t *testing.T) {
	t.Parallel()

	root := testutil.WriteFiles(t, map[string]string{"server.hcl": testutil.ServerManifest})
	in := strings.NewReader(`{"type":"maia.example.Server","body":{"debug":{"type":"String","value":"yes please"}}}`)

	err := run(in, &bytes.Buffer{}, &bytes.Buffer{}, []string{"-m", root, "-check-types", "-"})
	require.ErrorIs(t, err, conferr.ErrTypeMismatch)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(strings.NewReader(""), out, &bytes.Buffer{}, []string{"-h"}))
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_BadManifest(t *testing.T) {
	t.Parallel()

	root := testutil.WriteFiles(t, map[string]string{"main.hcl": `configuration "A" {`})
	err := run(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, []string{"-m", root, "-"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse")
}

func TestRun_StrictNamesRejectsRepeatedKeys(t *testing.T) {
	t.Parallel()

	root := testutil.WriteFiles(t, map[string]string{"server.hcl": testutil.ServerManifest})
	doc := `{"type":"maia.example.TLS","body":{"cert":{"type":"String","value":"a"},"cert":{"type":"String","value":"b"}}}`

	out := &bytes.Buffer{}
	require.NoError(t, run(strings.NewReader(doc), out, &bytes.Buffer{}, []string{"-m", root, "-"}))
	require.Equal(t, `{"type":"maia.example.TLS","body":{"cert":{"type":"String","value":"b"}}}`+"\n", out.String())

	out.Reset()
	err := run(strings.NewReader(doc), out, &bytes.Buffer{}, []string{"-m", root, "-strict-names", "-"})
	require.ErrorIs(t, err, conferr.ErrDuplicateElement)
	require.Empty(t, out.String())
}

func TestRun_PreservesLongPrecision(t *testing.T) {
	t.Parallel()

	root := testutil.WriteFiles(t, map[string]string{"a.hcl": `
configuration "Counter" {
  property "n" { type = number }
}`})
	doc := `{"type":"Counter","body":{"n":{"type":"Long","value":9223372036854775807}}}`

	out := &bytes.Buffer{}
	require.NoError(t, run(strings.NewReader(doc), out, &bytes.Buffer{}, []string{"-m", root, "-check-types", "-"}))
	require.Equal(t, doc+"\n", out.String())
}
