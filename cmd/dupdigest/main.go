package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	dupdigest "github.com/mattkeenan/dupdigest/pkg"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func defineOptions() *ParsedOptions {
	options := NewParsedOptions()
	options.DefineOption("help", "h", OptionTypeBool, "false", "Show help message")
	options.DefineOption("version", "", OptionTypeBool, "false", "Show version information")
	options.DefineOption("config", "c", OptionTypeString, "", "Read settings from an ini file")
	options.DefineOption("override", "o", OptionTypeList, "", "Override a setting (key:value, repeatable)")
	options.DefineOption("algorithm", "a", OptionTypeString, "", "Digest algorithm ("+strings.Join(dupdigest.SupportedHashAlgorithms(), "|")+")")
	options.DefineOption("format", "f", OptionTypeString, "", "Output format (text|fdupes|json|yaml)")
	options.DefineOption("symlinks", "", OptionTypeString, "", "Directory symlinks to follow (all|contained|none)")
	options.DefineOption("buffer", "", OptionTypeString, "", "Hash read buffer size (e.g. 1MiB)")
	options.DefineOption("relative", "r", OptionTypeBool, "false", "Print paths relative to the scanned directory")
	options.DefineOption("ignore-file", "", OptionTypeString, "", "File of regex patterns for paths to skip")
	options.DefineOption("verbose", "v", OptionTypeInt, "0", "Verbose output on stderr (repeat for more)")
	options.DefineOption("debug", "", OptionTypeString, "", "Comma-separated debug flags (scan,hash,table,report)")
	return options
}

// run executes the command and returns the process exit code
func run(argv []string, stdout, stderr io.Writer) int {
	programName := "dupdigest"
	if len(argv) > 0 {
		programName = argv[0]
	}

	options := defineOptions()
	if err := options.Parse(argv[1:]); err != nil {
		fmt.Fprintf(stderr, "dupdigest: %v\n", err)
		fmt.Fprintf(stderr, "Try 'dupdigest --help' for more information.\n")
		return exitUsage
	}

	if options.GetBool("version") {
		fmt.Fprintf(stdout, "dupdigest %s\n", version)
		return exitOK
	}

	if options.GetBool("help") {
		showHelp(stdout, programName, options)
		return exitOK
	}

	args := options.GetArgs()
	if len(args) == 0 {
		fmt.Fprintf(stdout, "Usage: %s <path>\n", programName)
		return exitOK
	}
	rootPath := args[0]

	config, err := buildConfig(options)
	if err != nil {
		fmt.Fprintf(stderr, "dupdigest: %v\n", err)
		return exitUsage
	}

	findOpts, err := config.Options()
	if err != nil {
		fmt.Fprintf(stderr, "dupdigest: %v\n", err)
		return exitUsage
	}

	dupdigest.ConfigureLogging(config.GetVerboseConfig())
	defer dupdigest.ConfigureLogging(&dupdigest.VerboseConfig{})

	finder, err := dupdigest.NewFinder(findOpts)
	if err != nil {
		fmt.Fprintf(stderr, "dupdigest: %v\n", err)
		return exitUsage
	}

	reporter, err := dupdigest.NewReporter(config.GetOutputConfig().Format)
	if err != nil {
		fmt.Fprintf(stderr, "dupdigest: %v\n", err)
		return exitUsage
	}

	// An unreadable or missing root is not an error: it has no duplicates
	table, _ := finder.Scan(rootPath)

	if err := reporter.Write(stdout, table); err != nil {
		fmt.Fprintf(stderr, "dupdigest: %v\n", err)
		return exitError
	}

	return exitOK
}

// buildConfig layers settings: defaults, then the config file, then -o
// overrides, then dedicated flags
func buildConfig(options *ParsedOptions) (*dupdigest.Config, error) {
	config := dupdigest.NewConfig()
	if path := options.GetString("config"); path != "" {
		loaded, err := dupdigest.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if err := config.ApplyOverrides(options.GetList("override")); err != nil {
		return nil, err
	}

	flagSettings := []struct {
		option, section, key string
	}{
		{"algorithm", "filehash", "default"},
		{"format", "output", "format"},
		{"symlinks", "symlink", "mode"},
		{"buffer", "performance", "hash_buffer"},
		{"ignore-file", "scan", "ignore_file"},
		{"debug", "verbose", "debug"},
	}
	for _, fs := range flagSettings {
		if options.IsSet(fs.option) {
			config.Set(fs.section, fs.key, options.GetString(fs.option))
		}
	}
	if options.IsSet("relative") {
		config.Set("output", "relative", strconv.FormatBool(options.GetBool("relative")))
	}
	if options.IsSet("verbose") {
		config.Set("verbose", "level", strconv.Itoa(options.GetInt("verbose")))
	}

	return config, nil
}

func showHelp(w io.Writer, programName string, options *ParsedOptions) {
	fmt.Fprintf(w, "dupdigest - find duplicate files by content digest\n\n")
	fmt.Fprintf(w, "Usage: %s [options] <path>\n\n", programName)
	fmt.Fprintf(w, "Prints one line per group of identical files: the file size followed by\n")
	fmt.Fprintf(w, "every path in the group. Backslashes and spaces in paths are escaped\n")
	fmt.Fprintf(w, "with a backslash. Unreadable files and directories are skipped.\n\n")
	fmt.Fprintf(w, "OPTIONS:\n")
	options.WriteOptionHelp(w)
	fmt.Fprintf(w, "\nOVERRIDE KEYS:\n")
	fmt.Fprintf(w, "  default, format, relative, level, debug, mode, hash_buffer, ignore_file\n\n")
	fmt.Fprintf(w, "EXAMPLES:\n")
	fmt.Fprintf(w, "  %s ~/Pictures                      # md5, text output\n", programName)
	fmt.Fprintf(w, "  %s -a blake3 -f json /srv/data     # blake3 digests, json output\n", programName)
	fmt.Fprintf(w, "  %s -r -o mode:none .               # relative paths, no dir symlinks\n", programName)
}
