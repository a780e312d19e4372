package stator

// Version is the release version of the library. Overridden at build time.
var Version = "0.1.0"
