// Package providers and its subpackages implement the services exposed
// through the registry. Each provider declares its tools via Definition
// and dispatches them in Execute.
package providers
