// Package service provides the registry that routes tool executions to
// their providers.
//
// A Provider publishes its metadata through Definition and handles the
// tools it declared through Execute. Tool ids are namespaced as
// "<service>.<tool>"; the registry routes on the prefix.
package service
