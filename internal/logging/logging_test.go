package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogger struct {
	lines  []string
	closed bool
}

func (f *fakeLogger) Debug(msg string, _ ...interface{}) { f.lines = append(f.lines, "debug "+msg) }
func (f *fakeLogger) Info(msg string, _ ...interface{})  { f.lines = append(f.lines, "info "+msg) }
func (f *fakeLogger) Warn(msg string, _ ...interface{})  { f.lines = append(f.lines, "warn "+msg) }
func (f *fakeLogger) Error(msg string, _ ...interface{}) { f.lines = append(f.lines, "error "+msg) }
func (f *fakeLogger) Close() error                       { f.closed = true; return nil }

func TestDebugNeedsVerbose(t *testing.T) {
	quiet := &fakeLogger{}
	lg := Wrap(quiet, false)
	lg.Debug("column scored", "column", 0)
	lg.Warn("estimators disagree")
	require.NoError(t, lg.Close())
	assert.Equal(t, []string{"warn estimators disagree"}, quiet.lines)
	assert.True(t, quiet.closed)

	loud := &fakeLogger{}
	lg = Wrap(loud, true)
	lg.Debug("column scored")
	lg.Info("history saved")
	lg.Error("boom")
	assert.Equal(t, []string{"debug column scored", "info history saved", "error boom"}, loud.lines)
}

func TestNewWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	lg, err := New(Config{Output: &buf, JSON: true})
	require.NoError(t, err)
	lg.Info("history saved", "id", 7)
	require.NoError(t, lg.Close())
	assert.True(t, strings.Contains(buf.String(), "history saved"), buf.String())
}

func TestNewVerboseWritesDebug(t *testing.T) {
	var buf bytes.Buffer
	lg, err := New(Config{Output: &buf, Verbose: true})
	require.NoError(t, err)
	lg.Debug("column scored", "column", 0)
	lg.Warn("estimators disagree")
	require.NoError(t, lg.Close())
	out := buf.String()
	assert.Contains(t, out, "column scored")
	assert.Contains(t, out, "estimators disagree")
}

func TestNewQuietDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	lg, err := New(Config{Output: &buf})
	require.NoError(t, err)
	lg.Debug("column scored", "column", 0)
	lg.Warn("estimators disagree")
	require.NoError(t, lg.Close())
	out := buf.String()
	assert.NotContains(t, out, "column scored")
	assert.Contains(t, out, "estimators disagree")
}

func TestNewOpensLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chiffre.log")
	lg, err := New(Config{File: path})
	require.NoError(t, err)
	lg.Warn("text too short")
	require.NoError(t, lg.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestNewBadLogFile(t *testing.T) {
	_, err := New(Config{File: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}
