package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dave/dst/decorator"
	"github.com/sensorsdata/sensorsgen/internal/comment"
	"github.com/sensorsdata/sensorsgen/internal/config"
	"github.com/sensorsdata/sensorsgen/parser"
	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"
)

const (
	defaultPackageName    = "./..."
	defaultPackagePath    = ""
	defaultOutputFilePath = ""
	defaultConfigFile     = ""
	defaultSDKImportPath  = ""
	defaultWrite          = false
	defaultDebug          = false
)

var (
	debug       bool
	write       bool
	packagePath string
	diffFile    string
	configFile  string
	sdkPath     string
)

var instrumentCmd = &cobra.Command{
	Use:   "instrument",
	Short: "add tracking calls",
	Long:  "add sensors analytics tracking calls to the functions carrying //sensors: directives",
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		Instrument()
	},
}

// validateOutputFile checks that the custom output path is valid
func validateOutputFile(path string) error {
	if filepath.Ext(path) != ".diff" {
		return errors.New("output file must have a .diff extension")
	}

	_, err := os.Stat(filepath.Dir(path))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("output file directory does not exist: %v", err)
	}

	return nil
}

// setOutputFilePath returns a complete output file path based on the provided
// diffFile flag value. If the flag is empty, the configured diff file name is
// placed in the applicationPath.
//
// This will fail if the packagePath is not valid, and must be run after
// validating it.
func setOutputFilePath(outputFilePath, configured, applicationPath string) (string, error) {
	if outputFilePath == "" {
		outputFilePath = configured
		if !filepath.IsAbs(outputFilePath) {
			outputFilePath = filepath.Join(applicationPath, outputFilePath)
		}
	}

	err := validateOutputFile(outputFilePath)
	if err != nil {
		return "", err
	}

	return outputFilePath, nil
}

// loadConfig reads the configuration file given with --config, or the
// optional sensorsgen.toml of the application, and applies flag overrides.
func loadConfig(configFile, sdkPath, applicationPath string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.LoadFile(configFile, false)
	} else {
		cfg, err = config.Load(applicationPath)
	}
	if err != nil {
		return nil, err
	}

	if sdkPath != "" {
		cfg.SDK.ImportPath = sdkPath
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func Instrument() {
	if packagePath == "" {
		log.Fatal("--path is required")
	}

	if _, err := os.Stat(packagePath); err != nil {
		cobra.CheckErr(fmt.Errorf("--path \"%s\" is invalid: %v", packagePath, err))
	}

	cfg, err := loadConfig(configFile, sdkPath, packagePath)
	if err != nil {
		cobra.CheckErr(err)
	}
	if cfg.Path != "" {
		log.Printf("using configuration from %s", cfg.Path)
	}

	outputFile, err := setOutputFilePath(diffFile, cfg.Output.Diff, packagePath)
	if err != nil {
		cobra.CheckErr(err)
	}

	pkgs, err := decorator.Load(&packages.Config{Dir: packagePath, Mode: packages.LoadSyntax}, defaultPackageName)
	if err != nil {
		log.Fatal(err)
	}

	telemetry := startTelemetry()

	manager := parser.NewInstrumentationManager(pkgs, cfg, outputFile, packagePath)
	manager.SetDebug(debug)
	err = manager.CreateDiffFile()
	if err != nil {
		telemetry.end()
		log.Fatal(err)
	}

	result := manager.Process()
	telemetry.record(result)
	if result.Err != nil {
		comment.WriteAll()
		telemetry.end()
		if debug {
			log.Fatalf("%+v", result.Err)
		}
		log.Fatal(result.Err)
	}

	err = manager.WriteDiff()
	if err != nil {
		telemetry.end()
		log.Fatal(err)
	}

	if write {
		err = manager.WriteFiles()
		if err != nil {
			telemetry.end()
			log.Fatal(err)
		}
	}

	comment.WriteAll()
	telemetry.end()
	log.Printf("instrumented %d functions, skipped %d already instrumented", result.Instrumented, result.Skipped)
}

func init() {
	instrumentCmd.Flags().BoolVar(&debug, "debug", defaultDebug, "enable debugging output")
	instrumentCmd.Flags().BoolVar(&write, "write", defaultWrite, "also rewrite the instrumented files in place")
	instrumentCmd.Flags().StringVar(&packagePath, "path", defaultPackagePath, "specify package path")
	instrumentCmd.Flags().StringVar(&diffFile, "diff", defaultOutputFilePath, "specify diff output file path")
	instrumentCmd.Flags().StringVar(&configFile, "config", defaultConfigFile, "specify a sensorsgen.toml configuration file")
	instrumentCmd.Flags().StringVar(&sdkPath, "sdk", defaultSDKImportPath, "override the import path of the analytics SDK")
	cobra.MarkFlagFilename(instrumentCmd.Flags(), "diff", ".diff")   // for file completion
	cobra.MarkFlagFilename(instrumentCmd.Flags(), "config", ".toml") // for file completion

	rootCmd.AddCommand(instrumentCmd)
}
