package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStd = errors.New("standard error")

func TestNew(t *testing.T) {
	t.Parallel()

	err := New(InvalidInput, "URL 형식이 올바르지 않습니다")
	require.Error(t, err)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, InvalidInput, appErr.Type())
	assert.Equal(t, "URL 형식이 올바르지 않습니다", appErr.Message())
	assert.Equal(t, "[InvalidInput] URL 형식이 올바르지 않습니다", err.Error())
	assert.NotEmpty(t, appErr.Stack())
	assert.Equal(t, "errors_test.go", appErr.Stack()[0].File)
}

func TestNewf(t *testing.T) {
	t.Parallel()

	err := Newf(Unavailable, "HTTP %d 응답", 429)
	assert.Equal(t, "[Unavailable] HTTP 429 응답", err.Error())
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("nil 에러는 nil을 반환한다", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, Internal, "msg"))
		assert.Nil(t, Wrapf(nil, Internal, "msg %d", 1))
	})

	t.Run("원인 에러가 체인에 유지된다", func(t *testing.T) {
		err := Wrap(errStd, System, "연결 실패")
		assert.Equal(t, "[System] 연결 실패: standard error", err.Error())
		assert.True(t, errors.Is(err, errStd))
		assert.Equal(t, errStd, RootCause(err))
	})

	t.Run("Wrapf", func(t *testing.T) {
		err := Wrapf(context.DeadlineExceeded, Timeout, "%s 전략 실패", "desktop-static")
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.Contains(t, err.Error(), "desktop-static 전략 실패")
	})
}

func TestIs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{"nil 에러", nil, Internal, false},
		{"표준 에러", errStd, Internal, false},
		{"일치", New(NotFound, "x"), NotFound, true},
		{"불일치", New(NotFound, "x"), Internal, false},
		{"체인 내부 일치", Wrap(New(Forbidden, "x"), Unavailable, "y"), Forbidden, true},
		{"fmt 래핑", fmt.Errorf("wrap: %w", New(Timeout, "x")), Timeout, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Is(tt.err, tt.errType))
		})
	}
}

func TestUnderlyingType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Unknown, UnderlyingType(nil))
	assert.Equal(t, Unknown, UnderlyingType(errStd))
	assert.Equal(t, NotFound, UnderlyingType(Wrap(New(NotFound, "a"), Internal, "b")))
	assert.Equal(t, ParsingFailed, UnderlyingType(Wrap(errStd, ParsingFailed, "a")))
}

func TestRootCause(t *testing.T) {
	t.Parallel()

	assert.Nil(t, RootCause(nil))

	root := New(System, "root")
	err := Wrap(Wrap(root, Internal, "a"), Unavailable, "b")
	assert.Equal(t, root, RootCause(err))
}

func TestAppError_Format(t *testing.T) {
	t.Parallel()

	err := Wrap(New(NotFound, "inner"), Internal, "outer")

	assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
	assert.Equal(t, err.Error(), fmt.Sprintf("%v", err))
	assert.Equal(t, fmt.Sprintf("%q", err.Error()), fmt.Sprintf("%q", err))

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "[Internal] outer")
	assert.Contains(t, detailed, "Caused by:")
	assert.Contains(t, detailed, "[NotFound] inner")
	assert.Contains(t, detailed, "Stack trace:")
}

func TestErrorType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "Unavailable", Unavailable.String())
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
	assert.Equal(t, "ErrorType(-1)", ErrorType(-1).String())
}

func BenchmarkWrap(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Wrap(errStd, Internal, "wrapped message")
	}
}
