// Package mock provides test doubles for the ai package interfaces,
// letting policies and pipelines be exercised without network access.
package mock
