// Package app contains the core application logic. It resolves the layered
// configuration, owns the logger and drives a run through its phases (load,
// compute, write), decoupled from any specific entrypoint like a CLI.
package app
