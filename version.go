package graft

// Version is the release of the module, overridden at link time by release builds.
var Version = "0.1.0-dev"
