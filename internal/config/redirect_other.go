//go:build !linux

package config

import "errors"

// RedirectStderr is not supported on this platform.
func RedirectStderr(_ string) (func() error, error) {
	return nil, errors.New("log file redirection is not supported on this platform")
}
