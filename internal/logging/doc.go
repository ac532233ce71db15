// Package logging provides leveled logging for photo-mapper.
//
// The level is read from the DEBUG and LOG_LEVEL environment variables at
// startup and can be overridden at runtime with SetLevel. Output defaults to
// stderr and can be redirected with SetOutput, which is how long-running
// operations stream their progress into an embedding console.
package logging
