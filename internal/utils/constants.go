package utils

const (
	// ApplicationName is the command name and the prefix of the application configuration files.
	ApplicationName = "sqtree"
	// IconConfigFileName is the icon registry resource expected at the traversal root.
	IconConfigFileName = "config.json"
	// IgnoreFileName lists literal entry names excluded from traversal.
	IgnoreFileName = ".sqignore"
	// LocalConfigFileName is the per-directory application configuration file.
	LocalConfigFileName = ".sqtree.yaml"
	// GlobalConfigDirectoryName holds the user-wide application configuration.
	GlobalConfigDirectoryName = ".sqtree"
	// GlobalConfigFileName is the file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"

	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "sqtree failed"
)
