// Package mocks provides test doubles for the google client.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// Authorize provides a mock function with given fields: ctx
func (_m *MockClient) Authorize(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Authorize")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// AppendRow provides a mock function with given fields: ctx, sheet, row
func (_m *MockClient) AppendRow(ctx context.Context, sheet string, row []any) error {
	ret := _m.Called(ctx, sheet, row)

	if len(ret) == 0 {
		panic("no return value specified for AppendRow")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, []any) error); ok {
		r0 = rf(ctx, sheet, row)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetRows provides a mock function with given fields: ctx, sheet, first, last
func (_m *MockClient) GetRows(ctx context.Context, sheet string, first int, last int) ([][]string, error) {
	ret := _m.Called(ctx, sheet, first, last)

	if len(ret) == 0 {
		panic("no return value specified for GetRows")
	}

	var r0 [][]string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, int, int) ([][]string, error)); ok {
		return rf(ctx, sheet, first, last)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, int, int) [][]string); ok {
		r0 = rf(ctx, sheet, first, last)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([][]string)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, int, int) error); ok {
		r1 = rf(ctx, sheet, first, last)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
