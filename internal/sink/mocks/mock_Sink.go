// Package mocks provides test doubles for the lead sink.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	model "github.com/sells-group/leadflow/internal/model"
)

// MockSink is a mock type for the Sink interface.
type MockSink struct {
	mock.Mock
}

// Append provides a mock function with given fields: ctx, lead
func (_m *MockSink) Append(ctx context.Context, lead model.Lead) error {
	ret := _m.Called(ctx, lead)

	if len(ret) == 0 {
		panic("no return value specified for Append")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, model.Lead) error); ok {
		r0 = rf(ctx, lead)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Statuses provides a mock function with given fields: ctx, n
func (_m *MockSink) Statuses(ctx context.Context, n int) ([]string, error) {
	ret := _m.Called(ctx, n)

	if len(ret) == 0 {
		panic("no return value specified for Statuses")
	}

	var r0 []string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) ([]string, error)); ok {
		return rf(ctx, n)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) []string); ok {
		r0 = rf(ctx, n)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]string)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, n)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockSink creates a new instance of MockSink. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewMockSink(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSink {
	m := &MockSink{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
