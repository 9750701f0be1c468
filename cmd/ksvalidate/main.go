// Command ksvalidate validates one or more JSON instance documents
// against a JSON Schema document from the command line.
package main

import (
	"fmt"
	"log"
	"os"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	jsonschema "github.com/arenaschema/jsonschema"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	schemaPath    string
	instancePaths []string
	maxErrors     int
	locale        string
	output        string
	format        bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ksvalidate",
		Short: "Validate JSON instance documents against a JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.schemaPath, "schema", "", "path to the schema document (JSON or YAML)")
	flags.StringArrayVar(&opts.instancePaths, "instance", nil, "path to an instance document (JSON or YAML); repeatable")
	flags.IntVar(&opts.maxErrors, "max-errors", jsonschema.DefaultMaxErrors, "maximum number of errors to report per instance")
	flags.StringVar(&opts.locale, "locale", "", "locale for error messages, e.g. \"es\" (default: untranslated)")
	flags.StringVar(&opts.output, "output", "text", "result output format: \"text\" or \"json\"")
	flags.BoolVar(&opts.format, "format", true, "apply the default format checker to \"format\" keywords")
	cmd.MarkFlagRequired("schema")
	cmd.MarkFlagRequired("instance")

	return cmd
}

// instanceResult is one instance document's outcome, shaped for --output json.
type instanceResult struct {
	Path   string   `json:"path"`
	Status string   `json:"status"`
	Errors []string `json:"errors,omitempty"`
}

func run(cmd *cobra.Command, opts *options) error {
	if opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("unknown --output %q: want \"text\" or \"json\"", opts.output)
	}

	schemaText, err := readDocument(opts.schemaPath)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}

	validator, status, compileErr := jsonschema.Create(schemaText)
	if compileErr != nil {
		return fmt.Errorf("compiling schema (%s): %w", status, compileErr)
	}
	defer validator.Destroy()

	validator.MaxErrors = opts.maxErrors
	if !opts.format {
		validator.SetFormatChecker(func(string, string) bool { return true })
	}
	if opts.locale != "" {
		localizer, err := jsonschema.NewLocalizer(opts.locale)
		if err != nil {
			return fmt.Errorf("loading locale %q: %w", opts.locale, err)
		}
		validator.Localizer = localizer
	}

	results := make([]instanceResult, 0, len(opts.instancePaths))
	anyFailed := false
	for _, path := range opts.instancePaths {
		result, err := validateOne(validator, path)
		if err != nil {
			return err
		}
		if result.Status != jsonschema.StatusSuccess.String() {
			anyFailed = true
		}
		results = append(results, result)
	}

	out := cmd.OutOrStdout()
	if opts.output == "json" {
		if err := writeJSONResults(out, results); err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
	} else {
		writeTextResults(out, results)
	}

	if anyFailed {
		os.Exit(1)
	}
	return nil
}

func validateOne(validator *jsonschema.Validator, path string) (instanceResult, error) {
	instanceText, err := readDocument(path)
	if err != nil {
		return instanceResult{}, fmt.Errorf("reading instance %s: %w", path, err)
	}

	status, validationErr := validator.ValidateText(instanceText)
	result := instanceResult{Path: path, Status: status.String()}
	switch status {
	case jsonschema.StatusSuccess:
		return result, nil
	case jsonschema.StatusValidationFailed:
		for e := validationErr; e != nil; e = e.Next {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", pathOrRoot(e.Path), e.Message))
		}
		return result, nil
	default:
		return instanceResult{}, fmt.Errorf("validating instance %s (%s): %w", path, status, validationErr)
	}
}

func writeTextResults(out interface{ Write([]byte) (int, error) }, results []instanceResult) {
	for _, r := range results {
		if r.Status == jsonschema.StatusSuccess.String() {
			fmt.Fprintf(out, "%s: ok\n", r.Path)
			continue
		}
		for _, msg := range r.Errors {
			fmt.Fprintf(out, "%s: %s\n", r.Path, msg)
		}
	}
}

func writeJSONResults(out interface{ Write([]byte) (int, error) }, results []instanceResult) error {
	encoded, err := gojson.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	_, err = out.Write(append(encoded, '\n'))
	return err
}

func pathOrRoot(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}

// readDocument reads a schema or instance file from disk. YAML input
// (".yaml"/".yml") is transcoded to JSON first via goccy/go-yaml so the
// rest of the pipeline only ever deals with jsonschema.ParseValue's JSON
// grammar; everything else is read as-is and assumed to already be JSON.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isYAMLPath(path) {
		return yamlToJSON(data)
	}
	return data, nil
}
