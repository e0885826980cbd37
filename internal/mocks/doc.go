// Package mocks provides testify-based mock implementations of the store
// interfaces for service-level tests.
//
// Every mock's WithTx returns the mock itself, so expectations registered on
// it apply both inside and outside a transaction:
//
//	decorations := new(mocks.MockPostDecorationStore)
//	decorations.On("NextZIndex", mock.Anything, imageID).Return(2, nil)
package mocks
