package failure

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_ErrorType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want apperrors.ErrorType
	}{
		{MalformedURL, apperrors.InvalidInput},
		{ShortLinkResolutionFailed, apperrors.Unavailable},
		{UpstreamRateLimited, apperrors.Unavailable},
		{BlockedOrEmptyPage, apperrors.Forbidden},
		{AllStrategiesExhausted, apperrors.Unavailable},
		{NoDataExtracted, apperrors.NotFound},
		{Kind("Other"), apperrors.Unknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := New(tt.kind, "메시지")
			assert.Equal(t, tt.want, tt.kind.ErrorType())
			assert.Equal(t, tt.want, apperrors.UnderlyingType(err))
		})
	}
}

func TestError_Reason(t *testing.T) {
	t.Parallel()

	err := New(AllStrategiesExhausted, "모든 전략이 실패했습니다", "static-desktop: 429", "direct: 차단 페이지")

	assert.Equal(t, "모든 전략이 실패했습니다: static-desktop: 429; direct: 차단 페이지", err.Reason())
	assert.Equal(t, "AllStrategiesExhausted: "+err.Reason(), err.Error())
	assert.Equal(t, "메시지", New(NoDataExtracted, "메시지").Reason())
}

func TestWrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("connection reset")
	err := Wrap(sentinel, UpstreamRateLimited, "요청 한도 초과")

	assert.ErrorIs(t, err, sentinel)
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))

	nilWrapped := Wrap(nil, BlockedOrEmptyPage, "차단")
	require.NotNil(t, nilWrapped)
	assert.True(t, apperrors.Is(nilWrapped, apperrors.Forbidden))
}

func TestKindOfAndIs(t *testing.T) {
	t.Parallel()

	inner := New(BlockedOrEmptyPage, "차단 페이지")
	outer := fmt.Errorf("ladder: %w", inner)

	kind, ok := KindOf(outer)
	require.True(t, ok)
	assert.Equal(t, BlockedOrEmptyPage, kind)
	assert.True(t, Is(outer, BlockedOrEmptyPage))
	assert.False(t, Is(outer, NoDataExtracted))

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, Is(nil, MalformedURL))
}
