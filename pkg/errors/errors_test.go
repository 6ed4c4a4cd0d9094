package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidExpr, "test message: %s", "value")

	if err.Code != ErrCodeInvalidExpr {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidExpr)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_EXPR: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeSession, cause, "start gdb")

	if err.Code != ErrCodeSession {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeSession)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeEval, "msg"), ErrCodeEval, true},
		{"different code", New(ErrCodeEval, "msg"), ErrCodeRender, false},
		{"plain error", errors.New("plain"), ErrCodeEval, false},
		{"wrapped coded error", Wrap(ErrCodeNotExtractable, errors.New("x"), "msg"), ErrCodeNotExtractable, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeProtocol, "msg")); got != ErrCodeProtocol {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeProtocol)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeEval, "cannot evaluate x")); got != "cannot evaluate x" {
		t.Errorf("UserMessage() = %q, want %q", got, "cannot evaluate x")
	}
	if got := UserMessage(errors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain failure")
	}
}
