//go:build windows

package main

import (
	"errors"

	"golang.org/x/sys/windows"
)

const instanceMutex = "MoneyShot_SingleInstance_Mutex_3E6F8A2D"

var errAlreadyRunning = errors.New("already running")

// acquireSingleInstance takes the named mutex held for the life of the
// process.
func acquireSingleInstance() (func(), error) {
	name, err := windows.UTF16PtrFromString(instanceMutex)
	if err != nil {
		return nil, err
	}
	h, err := windows.CreateMutex(nil, false, name)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if h != 0 {
			windows.CloseHandle(h)
		}
		return nil, errAlreadyRunning
	}
	if err != nil {
		return nil, err
	}
	return func() {
		windows.ReleaseMutex(h)
		windows.CloseHandle(h)
	}, nil
}
