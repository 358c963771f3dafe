package main

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petuhovskiy/qsampler/internal/loader"
	"github.com/petuhovskiy/qsampler/internal/wpool"
)

func TestDescribe(t *testing.T) {
	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, describe(err), "File not found:")
	assert.Contains(t, describe(err), "nope.json")

	missing := fmt.Errorf("load: %w", &loader.MissingFieldError{Record: 2, Field: "answer"})
	assert.Equal(t, `Column "answer" is missing in record 2 of the question file`, describe(missing))

	format := &loader.FormatError{Record: -1, Reason: "expected a list of questions, got map[string]interface {}"}
	assert.Equal(t, format.Error(), describe(format))

	assert.Equal(t, "The question file has no questions", describe(wpool.ErrEmptyPool))
}

func TestRootCmd_Flags(t *testing.T) {
	err := rootCmd.ParseFlags([]string{"-r", "--equal-weights"})
	require.NoError(t, err)
	assert.True(t, opts.WithReplacement)
	assert.True(t, opts.EqualWeights)

	assert.Error(t, rootCmd.Args(rootCmd, nil))
	assert.NoError(t, rootCmd.Args(rootCmd, []string{"questions.json"}))
}
