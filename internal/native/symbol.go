package native

// Bind resolves name in the loaded library and returns it as a function
// of the caller-declared type T. The declared signature must match the
// native export exactly; see abi.go.
//
// Bindings are valid only while the Lib they came from is, which in
// practice means inside the With call that produced it. Binding per
// dispatch trades a cheap lookup for immunity to stale pointers across
// unload/reload cycles.
func Bind[T any](lib Lib, name string) (T, error) {
	var fn T
	addr, err := lib.loader.Lookup(lib.handle, name)
	if err != nil {
		return fn, &SymbolError{Name: name, Err: err}
	}
	if addr == 0 {
		return fn, &SymbolError{Name: name}
	}
	lib.loader.Register(&fn, addr)
	return fn, nil
}
