package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/xmljson/internal/config"
	"github.com/mcncl/xmljson/internal/decode"
	"github.com/mcncl/xmljson/internal/errors"
	"github.com/mcncl/xmljson/internal/writer"
)

// CLI defines the command-line interface
var CLI struct {
	Input         string `help:"Path to input XML file. If not specified, reads from stdin." short:"i" type:"path"`
	Output        string `help:"Path to output JSON file. If not specified, writes to stdout." short:"o" type:"path"`
	AutoArray     bool   `help:"Group repeated sibling elements into JSON arrays."`
	VirtualRoot   string `help:"Root element name whose wrapper is stripped from the output." placeholder:"NAME"`
	MultiplePI    bool   `help:"Honor <?xml-multiple?> array processing instructions." default:"true" negatable:""`
	AutoPrimitive bool   `help:"Convert number and boolean text values to JSON primitives."`
	Pretty        bool   `help:"Indent the JSON output."`
	KeyStyle      string `help:"Field naming style: none, snake, camel or kebab." placeholder:"STYLE"`
	Config        string `help:"Path to a config file. Defaults to the nearest .xmljson.yml." type:"path"`
	Version       bool   `help:"Show version information." short:"v"`
	Interactive   bool   `help:"Run in interactive mode, allowing direct XML input with Ctrl+D to process." short:"I"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("xmljson"),
		kong.Description("A tool to convert XML documents to JSON"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("xmljson version %s\n", Version)
		return
	}

	cfg, err := resolveConfig(ctx)
	if err == nil {
		err = run(cfg)
	}
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: xmljson --help\n")

		os.Exit(1)
	}
}

// run executes the main program logic
func run(cfg *config.Config) error {
	// 1. Build the writer pipeline over an in-memory buffer, so a
	// document that fails partway leaves the output untouched
	var buf bytes.Buffer
	w, err := writer.NewFromConfig(&buf, cfg)
	if err != nil {
		return err
	}

	// 2. Convert the input
	if err := convertInput(w); err != nil {
		return err
	}

	// 3. Output the result
	return writeOutput(buf.String())
}

// resolveConfig loads the config file (explicit or discovered) and
// applies any flags set on the command line over it
func resolveConfig(ctx *kong.Context) (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg := config.NewConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// a flag the user typed beats the file; untouched flags keep the
	// file's value
	for _, flag := range ctx.Flags() {
		if !flag.Set {
			continue
		}
		switch flag.Name {
		case "auto-array":
			cfg.AutoArray = CLI.AutoArray
		case "multiple-pi":
			cfg.MultiplePI = CLI.MultiplePI
		case "virtual-root":
			cfg.VirtualRoot = CLI.VirtualRoot
		case "auto-primitive":
			cfg.AutoPrimitive = CLI.AutoPrimitive
		case "pretty":
			cfg.PrettyPrint = CLI.Pretty
		case "key-style":
			cfg.KeyStyle = CLI.KeyStyle
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// convertInput reads XML from file or stdin and drives the writer
func convertInput(w *writer.Writer) error {
	if CLI.Input != "" {
		// Convert from file
		return decode.ConvertFile(CLI.Input, w)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput(w)
		}
		// No data provided on stdin and not in interactive mode
		return errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	xmlData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return errors.NewInputError("failed to read from stdin", err)
	}

	if len(xmlData) == 0 {
		return errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return decode.ConvertString(string(xmlData), w)
}

// writeOutput writes the JSON document to file or stdout
func writeOutput(doc string) error {
	if CLI.Output != "" {
		// Write to file
		err := os.WriteFile(CLI.Output, []byte(doc+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "JSON document written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := fmt.Println(doc)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste
// XML and signal completion with Ctrl+D (EOF)
func readInteractiveInput(w *writer.Writer) error {
	fmt.Fprintln(os.Stderr, "xmljson Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your XML below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var xmlBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			xmlBuilder.WriteString(line)
			break
		}
		if err != nil {
			return errors.NewInputError("error reading input", err)
		}
		xmlBuilder.WriteString(line)
	}

	xmlData := xmlBuilder.String()
	if len(xmlData) == 0 {
		return errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing XML...")
	return decode.ConvertString(xmlData, w)
}
