// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the auth ports. Hand-written doubles for the same interfaces live in
// internal/mocks/auth; the generated mocks are preferred where tests need
// call-expectation assertions.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

// Generate mock for TokenStore from internal/ports.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=token_store_mock.go github.com/roktoseba/ui-gateway/internal/ports TokenStore

// Generate mock for RoleReader from internal/ports.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=role_reader_mock.go github.com/roktoseba/ui-gateway/internal/ports RoleReader
