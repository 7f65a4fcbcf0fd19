// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/sqtree/internal/config"
	"github.com/temirov/sqtree/internal/entry"
	"github.com/temirov/sqtree/internal/output"
	"github.com/temirov/sqtree/internal/services/clipboard"
	"github.com/temirov/sqtree/internal/utils"
	"github.com/temirov/sqtree/internal/walker"
)

const (
	depthFlagName       = "depth"
	depthFlagShorthand  = "d"
	termFlagName        = "term"
	termFlagShorthand   = "t"
	extensionFlagName   = "ext"
	extensionShorthand  = "x"
	rootFlagName        = "root"
	rootFlagShorthand   = "r"
	colorFlagName       = "color"
	copyFlagName        = "copy"
	verboseFlagName     = "verbose"
	configFlagName      = "config"
	versionFlagName     = "version"
	forceFlagName       = "force"
	defaultPath         = "."
	defaultMaximumDepth = 3
	versionTemplate     = "sqtree version: %s\n"
	initializedTemplate = "wrote %s\n"

	rootUse              = "sqtree [path]"
	rootShortDescription = "display an icon-annotated directory tree"
	rootLongDescription  = `sqtree prints the directory tree below path, one entry per line.
Entries whose name starts with "." or "@", or that are listed in the .sqignore file
of the traversal root, are skipped. Icons come from the config.json of the
traversal root. Use --term and --ext to highlight names matching a regular
expression (case-insensitive, anchored at the start of the name).`
	rootUsageExample = `  # Show three levels of the current directory
  sqtree

  # Highlight Go sources in ./internal, two levels deep
  sqtree -d 2 -x '.*\.go$' ./internal

  # Use icons and ignore list from another directory
  sqtree --root ~/.config/sqtree ./project`

	initUse              = "init [directory]"
	initShortDescription = "write a default config.json and .sqignore"
	initLongDescription  = `Scaffold the resources a traversal root needs: config.json with a default
icon registry and .sqignore with common build directories.`

	depthFlagDescription   = "maximum depth to descend"
	termFlagDescription    = "highlight names matching this expression"
	extFlagDescription     = "highlight extensions of names matching this expression"
	rootFlagDescription    = "directory holding config.json and .sqignore (defaults to path)"
	colorFlagDescription   = "color output: auto, always or never"
	copyFlagDescription    = "copy the uncolored tree to the clipboard"
	verboseFlagDescription = "log skipped entries and descents to stderr"
	configFlagDescription  = "application configuration file (defaults to ./" + utils.LocalConfigFileName + ")"
	versionFlagDescription = "display application version"
	forceFlagDescription   = "overwrite existing files"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorPathMissingFormat      = "path '%s' does not exist"
	errorStatFormat             = "stat failed for '%s': %w"
	errorNotDirectoryFormat     = "path '%s' is not a directory"
	errorLoggerFormat           = "building verbose logger: %w"
	errorConfigColorFormat      = "configuration color: %w"
)

// commandEnvironment carries the collaborators that tests replace.
type commandEnvironment struct {
	copier clipboard.Copier
}

// treeOptions holds the resolved flag values of the tree command.
type treeOptions struct {
	maxDepth          int
	termPattern       string
	extensionPattern  string
	traversalRoot     string
	colorMode         output.ColorMode
	copyToClipboard   bool
	verbose           bool
	configurationFile string
}

// Execute runs the sqtree application.
func Execute() error {
	rootCommand := createRootCommand(commandEnvironment{copier: clipboard.NewService()})
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command, which renders the tree.
func createRootCommand(environment commandEnvironment) *cobra.Command {
	var options treeOptions
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			startPath := defaultPath
			if len(arguments) > 0 {
				startPath = arguments[0]
			}
			if applyError := applyConfiguration(command, &options); applyError != nil {
				return applyError
			}
			return runTree(command, environment, startPath, options)
		},
	}

	flags := rootCommand.Flags()
	flags.IntVarP(&options.maxDepth, depthFlagName, depthFlagShorthand, defaultMaximumDepth, depthFlagDescription)
	flags.StringVarP(&options.termPattern, termFlagName, termFlagShorthand, "", termFlagDescription)
	flags.StringVarP(&options.extensionPattern, extensionFlagName, extensionShorthand, "", extFlagDescription)
	flags.StringVarP(&options.traversalRoot, rootFlagName, rootFlagShorthand, "", rootFlagDescription)
	flags.Var(newColorFlagValue(&options.colorMode, output.ColorAuto), colorFlagName, colorFlagDescription)
	flags.BoolVar(&options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	flags.BoolVar(&options.verbose, verboseFlagName, false, verboseFlagDescription)
	flags.StringVar(&options.configurationFile, configFlagName, "", configFlagDescription)
	flags.BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var force bool

	initCommand := &cobra.Command{
		Use:          initUse,
		Short:        initShortDescription,
		Long:         initLongDescription,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			directory := ""
			if len(arguments) > 0 {
				directory = arguments[0]
			}
			writtenPaths, initError := config.InitializeTraversalRoot(config.InitOptions{Directory: directory, Force: force})
			if initError != nil {
				return initError
			}
			for _, writtenPath := range writtenPaths {
				fmt.Fprintf(command.OutOrStdout(), initializedTemplate, writtenPath)
			}
			return nil
		},
	}
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// applyConfiguration fills options from the application configuration files
// for every flag the user did not set explicitly.
func applyConfiguration(command *cobra.Command, options *treeOptions) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configurationFile,
	})
	if loadError != nil {
		return loadError
	}

	flags := command.Flags()
	if configuration.Depth != nil && !flags.Changed(depthFlagName) {
		options.maxDepth = *configuration.Depth
	}
	if configuration.Term != "" && !flags.Changed(termFlagName) {
		options.termPattern = configuration.Term
	}
	if configuration.Extension != "" && !flags.Changed(extensionFlagName) {
		options.extensionPattern = configuration.Extension
	}
	if configuration.Root != "" && !flags.Changed(rootFlagName) {
		options.traversalRoot = configuration.Root
	}
	if configuration.Color != "" && !flags.Changed(colorFlagName) {
		mode, parseError := output.ParseColorMode(configuration.Color)
		if parseError != nil {
			return fmt.Errorf(errorConfigColorFormat, parseError)
		}
		options.colorMode = mode
	}
	if configuration.Copy != nil && !flags.Changed(copyFlagName) {
		options.copyToClipboard = *configuration.Copy
	}
	return nil
}

// runTree validates its inputs, loads the traversal root and streams the tree.
// Every configuration problem is reported before the first line is written.
func runTree(command *cobra.Command, environment commandEnvironment, startPath string, options treeOptions) error {
	absoluteStartPath, validationError := resolveDirectory(startPath)
	if validationError != nil {
		return validationError
	}

	traversalRoot := absoluteStartPath
	if options.traversalRoot != "" {
		resolvedRoot, rootError := resolveDirectory(options.traversalRoot)
		if rootError != nil {
			return rootError
		}
		traversalRoot = resolvedRoot
	}

	patterns, patternError := entry.CompilePatterns(options.termPattern, options.extensionPattern)
	if patternError != nil {
		return patternError
	}

	logger := zap.NewNop()
	if options.verbose {
		verboseLogger, loggerError := utils.NewVerboseLogger()
		if loggerError != nil {
			return fmt.Errorf(errorLoggerFormat, loggerError)
		}
		defer func() { _ = verboseLogger.Sync() }()
		logger = verboseLogger
	}

	treeWalker, walkerError := walker.New(walker.Options{
		Root:     traversalRoot,
		MaxDepth: options.maxDepth,
		Patterns: patterns,
		Logger:   logger,
	})
	if walkerError != nil {
		return walkerError
	}

	stdout := command.OutOrStdout()
	renderer := output.NewLineRenderer(stdout, output.NewHighlighter(stdout, options.colorMode))
	if options.copyToClipboard {
		renderer = output.Combine(renderer, output.NewClipboardRenderer(environment.copier))
	}

	return output.Render(treeWalker.Walk(absoluteStartPath, 0), renderer)
}

// resolveDirectory converts a path to absolute form and checks that it is a directory.
func resolveDirectory(inputPath string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(inputPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	info, fileStatusError := os.Stat(absolutePath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return "", fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return "", fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !info.IsDir() {
		return "", fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	return absolutePath, nil
}
