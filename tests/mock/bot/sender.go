// Package botmock provides a gomock implementation of bot.Sender.
package botmock

import (
	"context"
	"reflect"

	"shopbot/internal/bot"

	"go.uber.org/mock/gomock"
)

// MockSender is a mock of the bot.Sender interface.
type MockSender struct {
	ctrl     *gomock.Controller
	recorder *MockSenderMockRecorder
}

// MockSenderMockRecorder is the mock recorder for MockSender.
type MockSenderMockRecorder struct {
	mock *MockSender
}

// NewMockSender creates a new mock instance.
func NewMockSender(ctrl *gomock.Controller) *MockSender {
	mock := &MockSender{ctrl: ctrl}
	mock.recorder = &MockSenderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSender) EXPECT() *MockSenderMockRecorder {
	return m.recorder
}

// Send mocks base method.
func (m *MockSender) Send(ctx context.Context, conversationID string, reply bot.Reply) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Send", ctx, conversationID, reply)
	ret0, _ := ret[0].(error)
	return ret0
}

// Send indicates an expected call of Send.
func (mr *MockSenderMockRecorder) Send(ctx, conversationID, reply any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Send", reflect.TypeOf((*MockSender)(nil).Send), ctx, conversationID, reply)
}

// StartTyping mocks base method.
func (m *MockSender) StartTyping(ctx context.Context, conversationID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StartTyping", ctx, conversationID)
	ret0, _ := ret[0].(error)
	return ret0
}

// StartTyping indicates an expected call of StartTyping.
func (mr *MockSenderMockRecorder) StartTyping(ctx, conversationID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StartTyping", reflect.TypeOf((*MockSender)(nil).StartTyping), ctx, conversationID)
}

// StopTyping mocks base method.
func (m *MockSender) StopTyping(ctx context.Context, conversationID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StopTyping", ctx, conversationID)
	ret0, _ := ret[0].(error)
	return ret0
}

// StopTyping indicates an expected call of StopTyping.
func (mr *MockSenderMockRecorder) StopTyping(ctx, conversationID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StopTyping", reflect.TypeOf((*MockSender)(nil).StopTyping), ctx, conversationID)
}
