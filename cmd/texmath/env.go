package main

import (
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the process environment.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
	}
}

// Status labels. color disables itself for NO_COLOR and non-terminal output.
var (
	errorLabel = color.New(color.FgRed, color.Bold)
	failLabel  = color.New(color.FgRed)
	warnLabel  = color.New(color.FgYellow)
	mathLabel  = color.New(color.FgGreen)
)
