package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/xmljson/internal/config"
)

func TestRun_SimpleXML(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	xmlData := `<person><name>John</name><age>30</age></person>`

	// Create temp file
	tmpFile, err := os.CreateTemp("", "test_input_*.xml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(xmlData)
	require.NoError(t, err)
	_ = tmpFile.Close()

	CLI.Input = tmpFile.Name()
	CLI.Output = ""

	err = run(config.NewConfig())
	require.NoError(t, err)
}

func TestRun_WithOutputFile(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	xmlData := `<user><id>1</id><email>test@example.com</email></user>`

	tmpInput, err := os.CreateTemp("", "test_input_*.xml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpInput.Name()) }()

	_, err = tmpInput.WriteString(xmlData)
	require.NoError(t, err)
	_ = tmpInput.Close()

	tmpOutput, err := os.CreateTemp("", "test_output_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpOutput.Name()) }()
	_ = tmpOutput.Close()

	CLI.Input = tmpInput.Name()
	CLI.Output = tmpOutput.Name()

	err = run(config.NewConfig())
	require.NoError(t, err)

	// Verify output file was created and contains the JSON document
	outputContent, err := os.ReadFile(tmpOutput.Name())
	require.NoError(t, err)
	assert.Equal(t, `{"user":{"id":"1","email":"test@example.com"}}`+"\n", string(outputContent))
}

func TestRun_WithDecorators(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	xmlData := `<items><item>a</item><item>b</item></items>`

	tmpInput, err := os.CreateTemp("", "test_input_*.xml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpInput.Name()) }()

	_, err = tmpInput.WriteString(xmlData)
	require.NoError(t, err)
	_ = tmpInput.Close()

	tmpOutput, err := os.CreateTemp("", "test_output_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpOutput.Name()) }()
	_ = tmpOutput.Close()

	CLI.Input = tmpInput.Name()
	CLI.Output = tmpOutput.Name()

	cfg := config.NewConfig()
	cfg.AutoArray = true
	cfg.VirtualRoot = "items"

	err = run(cfg)
	require.NoError(t, err)

	outputContent, err := os.ReadFile(tmpOutput.Name())
	require.NoError(t, err)
	assert.Equal(t, `{"item":["a","b"]}`+"\n", string(outputContent))
}

func TestRun_FailedDocumentWritesNothing(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tmpInput, err := os.CreateTemp("", "test_input_*.xml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpInput.Name()) }()

	_, err = tmpInput.WriteString(`<alice><bob></alice>`)
	require.NoError(t, err)
	_ = tmpInput.Close()

	outputPath := filepath.Join(t.TempDir(), "out.json")
	CLI.Input = tmpInput.Name()
	CLI.Output = outputPath

	err = run(config.NewConfig())
	require.Error(t, err)

	// a document that fails partway must not leave partial output
	_, err = os.Stat(outputPath)
	assert.True(t, os.IsNotExist(err))
}

func TestConvertInput_FromStdin(t *testing.T) {
	// Save original CLI state and stdin
	originalCLI := CLI
	originalStdin := os.Stdin
	defer func() {
		CLI = originalCLI
		os.Stdin = originalStdin
	}()

	// Clear input file to force stdin reading
	CLI.Input = ""
	CLI.Output = ""

	xmlData := `<alice>bob</alice>`
	r, w, err := os.Pipe()
	require.NoError(t, err)

	// Write test data to pipe
	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString(xmlData)
	}()

	// Replace stdin
	os.Stdin = r
	defer func() { _ = r.Close() }()

	err = run(config.NewConfig())
	require.NoError(t, err)
}

func TestConvertInput_EmptyFile(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tmpFile, err := os.CreateTemp("", "test_empty_*.xml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()
	_ = tmpFile.Close()

	CLI.Input = tmpFile.Name()

	err = run(config.NewConfig())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestConvertInput_InvalidXML(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tmpFile, err := os.CreateTemp("", "test_invalid_*.xml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(`<alice><bob></alice>`)
	require.NoError(t, err)
	_ = tmpFile.Close()

	CLI.Input = tmpFile.Name()

	err = run(config.NewConfig())
	assert.Error(t, err)
}

func TestConvertInput_NonExistentFile(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = "/non/existent/file.xml"

	err := run(config.NewConfig())
	assert.Error(t, err)
}

func TestWriteOutput_ToFile(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tmpFile, err := os.CreateTemp("", "test_write_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()
	_ = tmpFile.Close()

	CLI.Output = tmpFile.Name()

	doc := `{"alice":"bob"}`
	err = writeOutput(doc)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile.Name())
	require.NoError(t, err)
	assert.Equal(t, doc+"\n", string(content))
}

func TestWriteOutput_FileError(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	// Try to write to a directory that doesn't exist
	CLI.Output = "/non/existent/dir/output.json"

	err := writeOutput(`{}`)
	assert.Error(t, err)
}

// parseFlags runs the real kong parser over args so resolveConfig sees
// exactly what main would
func parseFlags(t *testing.T, args ...string) *kong.Context {
	t.Helper()
	parser, err := kong.New(&CLI, kong.Name("xmljson"))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return ctx
}

func TestResolveConfig_Defaults(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	// an explicit config path prevents picking up a stray .xmljson.yml
	empty := filepath.Join(t.TempDir(), "cfg.yml")
	require.NoError(t, os.WriteFile(empty, []byte("{}\n"), 0644))

	ctx := parseFlags(t, "--config", empty)
	cfg, err := resolveConfig(ctx)
	require.NoError(t, err)

	assert.False(t, cfg.AutoArray)
	assert.True(t, cfg.MultiplePI)
	assert.Empty(t, cfg.VirtualRoot)
	assert.False(t, cfg.PrettyPrint)
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	path := filepath.Join(t.TempDir(), "cfg.yml")
	content := "auto_array: true\nvirtual_root: alice\nmultiple_pi: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	ctx := parseFlags(t, "--config", path, "--virtual-root", "bob", "--pretty")
	cfg, err := resolveConfig(ctx)
	require.NoError(t, err)

	// typed flags win
	assert.Equal(t, "bob", cfg.VirtualRoot)
	assert.True(t, cfg.PrettyPrint)
	// untouched flags keep the file's values
	assert.True(t, cfg.AutoArray)
	assert.False(t, cfg.MultiplePI)
}

func TestResolveConfig_NegatedFlag(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	empty := filepath.Join(t.TempDir(), "cfg.yml")
	require.NoError(t, os.WriteFile(empty, []byte("{}\n"), 0644))

	ctx := parseFlags(t, "--config", empty, "--no-multiple-pi")
	cfg, err := resolveConfig(ctx)
	require.NoError(t, err)
	assert.False(t, cfg.MultiplePI)
}

func TestResolveConfig_InvalidKeyStyle(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	ctx := parseFlags(t, "--key-style", "shouty")
	_, err := resolveConfig(ctx)
	assert.Error(t, err)
}
