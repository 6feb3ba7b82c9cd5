//go:build windows

package native

import (
	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"
)

type platformLoader struct{}

func (platformLoader) Open(path string) (uintptr, error) {
	lib, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, err
	}
	return uintptr(lib), nil
}

func (platformLoader) Lookup(lib uintptr, symbol string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(lib), symbol)
}

func (platformLoader) Close(lib uintptr) error {
	if lib == 0 {
		return nil
	}
	return windows.FreeLibrary(windows.Handle(lib))
}

func (platformLoader) Register(fptr interface{}, addr uintptr) {
	purego.RegisterFunc(fptr, addr)
}
