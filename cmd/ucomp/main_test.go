package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var echoSource = []string{
	".data",
	"n:       .word 0",
	".text",
	"         in n",
	"         out n",
	"         halt SIGNAL_OTHER",
}

func writeFile(t *testing.T, name string, lines ...string) (path string) {
	path = filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
	require.NoError(t, err)
	return
}

func TestRunCompileAndSave(t *testing.T) {
	assert := assert.New(t)

	source := writeFile(t, "echo.uc", echoSource...)
	image := filepath.Join(t.TempDir(), "echo.img")

	code, err := run(&Options{Compile: source, Save: image, Input: "-", Output: "-"})
	assert.NoError(err)
	assert.Equal(0, code)

	saved, err := os.ReadFile(image)
	require.NoError(t, err)
	assert.Contains(string(saved), "1000 ; 001: in 0")

	// Run the saved image.
	input := writeFile(t, "input.txt", "42")
	output := filepath.Join(t.TempDir(), "output.txt")

	code, err = run(&Options{Program: image, Input: input, Output: output})
	assert.NoError(err)
	assert.Equal(4, code)

	printed, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal("42\n", string(printed))
}

func TestRunFault(t *testing.T) {
	assert := assert.New(t)

	// Console input is exhausted.
	source := writeFile(t, "echo.uc", echoSource...)
	input := writeFile(t, "input.txt")
	output := filepath.Join(t.TempDir(), "output.txt")

	code, err := run(&Options{Compile: source, Input: input, Output: output})
	assert.NoError(err)
	assert.Equal(4, code)
}

func TestRunOptions(t *testing.T) {
	table := [...]Options{
		{},
		{Compile: "a.uc", Program: "a.img"},
		{Program: "a.img", Save: "b.img"},
		{Program: "-", Input: "-"},
	}

	for _, opts := range table {
		_, err := run(&opts)
		assert.Error(t, err, "%+v", opts)
	}
}
