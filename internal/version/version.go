package version

// Version is the current application version
var Version = "0.4.1"
