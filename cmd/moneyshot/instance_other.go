//go:build !windows

package main

// acquireSingleInstance is a no-op outside Windows.
func acquireSingleInstance() (func(), error) {
	return func() {}, nil
}
