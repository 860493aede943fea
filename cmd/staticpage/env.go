package main

import (
	"context"
	"io"
	"net"
	"os"

	"github.com/alnah/go-staticpage/internal/stylesheet"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// DotEnvPath is an optional KEY=VALUE file read before the environment.
	// Variables already set in the process win.
	DotEnvPath string

	ReadFile      func(name string) ([]byte, error)
	Listen        func(network, address string) (net.Listener, error)
	NotifyContext func(parent context.Context) (context.Context, context.CancelFunc)

	// SassStart launches the Sass transpiler; nil runs the configured
	// dart-sass binary.
	SassStart stylesheet.StartFunc
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Getenv:        os.Getenv,
		Environ:       os.Environ,
		DotEnvPath:    ".env",
		ReadFile:      os.ReadFile,
		Listen:        net.Listen,
		NotifyContext: notifyContext,
	}
}
