// Package logging provides the structured diagnostic logger used across
// the engine: backend selection, rescale events, and numerical faults.
// It wraps github.com/rs/zerolog the way a host application configures
// it once, at startup, and passes a *Logger down through every
// component that needs to report something.
package logging
