//go:build darwin || linux || freebsd

package native

import (
	"fmt"

	"github.com/ebitengine/purego"
)

type platformLoader struct{}

func (platformLoader) Open(path string) (uintptr, error) {
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, err
	}
	if lib == 0 {
		return 0, fmt.Errorf("nil handle after loading %s", path)
	}
	return lib, nil
}

func (platformLoader) Lookup(lib uintptr, symbol string) (uintptr, error) {
	return purego.Dlsym(lib, symbol)
}

func (platformLoader) Close(lib uintptr) error {
	if lib == 0 {
		return nil
	}
	return purego.Dlclose(lib)
}

func (platformLoader) Register(fptr interface{}, addr uintptr) {
	purego.RegisterFunc(fptr, addr)
}
