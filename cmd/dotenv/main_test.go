// FILE: lixenwraith/dotenv/cmd/dotenv/main_test.go
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, environ []string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, environ, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestUsage(t *testing.T) {
	r := runCLI(t, "", nil)
	assert.Equal(t, exitUsage, r.code)
	assert.Contains(t, r.stderr, "Usage:")

	r = runCLI(t, "", nil, "--help")
	assert.Equal(t, exitOK, r.code)
	assert.Contains(t, r.stdout, "Commands:")

	r = runCLI(t, "", nil, "frobnicate")
	assert.Equal(t, exitUsage, r.code)
	assert.Contains(t, r.stderr, `unknown command "frobnicate"`)

	r = runCLI(t, "", nil, "--bogus")
	assert.Equal(t, exitUsage, r.code)

	r = runCLI(t, "", nil, "parse", "--bogus")
	assert.Equal(t, exitUsage, r.code)
}

func TestParseCommand(t *testing.T) {
	input := "# db\n\nHOST=localhost\nHOST=\"db host\"\n"

	t.Run("Tokens", func(t *testing.T) {
		r := runCLI(t, input, nil, "parse")
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.Equal(t, "comment \" db\"\nblank\nitem HOST=\"localhost\"\nitem HOST=\"db host\"\n", r.stdout)
	})

	t.Run("JSON", func(t *testing.T) {
		r := runCLI(t, input, nil, "parse", "--json", "-")
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.JSONEq(t, `{"HOST": "db host"}`, r.stdout)
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("A=1"), 0644))

		r := runCLI(t, "", nil, "parse", path)
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.Equal(t, "item A=\"1\"\n", r.stdout)
	})

	t.Run("MissingFile", func(t *testing.T) {
		r := runCLI(t, "", nil, "parse", filepath.Join(t.TempDir(), "nope.env"))
		assert.Equal(t, exitFailure, r.code)
		assert.Contains(t, r.stderr, "command failed")
	})

	t.Run("ParseError", func(t *testing.T) {
		r := runCLI(t, "A=1\n1BAD=2", nil, "parse")
		assert.Equal(t, exitFailure, r.code)
		assert.Contains(t, r.stderr, "on line 2")
	})
}

func TestFmtCommand(t *testing.T) {
	t.Run("Canonical", func(t *testing.T) {
		r := runCLI(t, "# c\nA = 1\nB=\"it's\"\n", nil, "fmt")
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.Equal(t, "# c\nA='1'\nB=\"it's\"\n", r.stdout)
	})

	t.Run("CRLF", func(t *testing.T) {
		r := runCLI(t, "A=1\nB=2", nil, "fmt", "--crlf")
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.Equal(t, "A='1'\r\nB='2'\n", r.stdout)
	})

	t.Run("Diff", func(t *testing.T) {
		r := runCLI(t, "A='1'\nB=2\n", nil, "fmt", "--diff")
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.Equal(t, " A='1'\n-B=2\n+B='2'\n", r.stdout)
	})

	t.Run("DiffUnchanged", func(t *testing.T) {
		r := runCLI(t, "A='1'\n", nil, "fmt", "--diff")
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.Equal(t, " A='1'\n", r.stdout)
	})
}

func TestGetCommand(t *testing.T) {
	r := runCLI(t, "A=1\nA=2\n", nil, "get", "A")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "2\n", r.stdout)

	r = runCLI(t, "A=1\n", nil, "get", "B")
	assert.Equal(t, exitFailure, r.code)
	assert.Contains(t, r.stderr, "key not found")

	r = runCLI(t, "", nil, "get")
	assert.Equal(t, exitUsage, r.code)
}

func TestExpandCommand(t *testing.T) {
	env := []string{"USER=alice", "HOME=/home/alice"}

	t.Run("Environment", func(t *testing.T) {
		r := runCLI(t, "", env, "expand", "${USER} lives in $HOME, shell ${SHELL:-sh}")
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.Equal(t, "alice lives in /home/alice, shell sh\n", r.stdout)
	})

	t.Run("FileValues", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("GREETING=hello\nUSER=file-user"), 0644))

		r := runCLI(t, "", env, "expand", "--file", path, "$GREETING $USER")
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.Equal(t, "hello alice\n", r.stdout)
	})

	t.Run("Windows", func(t *testing.T) {
		r := runCLI(t, "", env, "expand", "--windows", "--no-unix", "%USER% $USER")
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.Equal(t, "alice $USER\n", r.stdout)
	})

	t.Run("Args", func(t *testing.T) {
		r := runCLI(t, "", nil, "expand", "--args", "$0-$1", "zero", "one")
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.Equal(t, "zero-one\n", r.stdout)
	})

	t.Run("Failure", func(t *testing.T) {
		r := runCLI(t, "", nil, "expand", "${TOKEN:?TOKEN is required}")
		assert.Equal(t, exitFailure, r.code)
		assert.Contains(t, r.stderr, "TOKEN is required")
	})

	t.Run("MissingTemplate", func(t *testing.T) {
		r := runCLI(t, "", nil, "expand")
		assert.Equal(t, exitUsage, r.code)
	})
}

func TestConvertCommand(t *testing.T) {
	t.Run("TOMLToEnv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 8080\nhost = \"x\"\n"), 0644))

		r := runCLI(t, "", nil, "convert", "--to", "env", "--prefix", "APP_", path)
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.Equal(t, "APP_SERVER_HOST='x'\nAPP_SERVER_PORT='8080'\n", r.stdout)
	})

	t.Run("EnvToJSON", func(t *testing.T) {
		r := runCLI(t, "B=2\nA=hello world\n", nil, "convert", "--from", "env", "--to", "json")
		assert.Equal(t, exitFailure, r.code)

		r = runCLI(t, "B=2\nA='hello world'\n", nil, "convert", "--from", "env", "--to", "json")
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.JSONEq(t, `{"A": "hello world", "B": "2"}`, r.stdout)
	})

	t.Run("DetectFromStdin", func(t *testing.T) {
		r := runCLI(t, "server:\n  port: 1\n", nil, "convert", "--to", "yaml")
		require.Equal(t, exitOK, r.code, r.stderr)
		assert.Equal(t, "SERVER_PORT: \"1\"\n", r.stdout)
	})

	t.Run("UsageErrors", func(t *testing.T) {
		assert.Equal(t, exitUsage, runCLI(t, "", nil, "convert").code)
		assert.Equal(t, exitUsage, runCLI(t, "", nil, "convert", "--to", "ini").code)
		assert.Equal(t, exitUsage, runCLI(t, "", nil, "convert", "--to", "env", "--from", "ini").code)
	})
}

func TestVerbose(t *testing.T) {
	r := runCLI(t, "A=1", nil, "--verbose", "parse")
	require.Equal(t, exitOK, r.code)
	assert.Contains(t, r.stderr, "parsed document")

	r = runCLI(t, "A=1", nil, "parse")
	assert.Empty(t, r.stderr)
}
