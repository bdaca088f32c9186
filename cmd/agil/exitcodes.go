package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure, input closed)
	ExitConfigError = 2 // Configuration error (bad config file, invalid paths)
	ExitDataError   = 3 // Data error (corrupt products file, validation failure)
	ExitNotFound    = 4 // Product not found
)
