//go:build !unix

package input

import "errors"

// Start is not supported on this platform.
func (t *Terminal) Start() error {
	return errors.New("terminal input is not supported on this platform")
}
