package observable_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswap-hub/bookswap/shared/shell"
	"github.com/bookswap-hub/bookswap/shared/shell/observable"
)

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// arrange
	metrics := &metricsCollectorSpy{}
	logger := &loggerSpy{}
	wrapper, err := observable.NewQueryWrapper[testQuery, testResult](
		&queryHandlerStub{result: testResult{seq: 42}},
		observable.WithQueryMetrics[testQuery, testResult](metrics),
		observable.WithQueryContextualLogging[testQuery, testResult](logger),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), testQuery{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, uint(42), result.GetSequenceNumber())
	assert.True(t, metrics.hasCounter(shell.QueryHandlerCallsMetric, shell.LogAttrQueryType, "TestQuery"))
	assert.Equal(t, []string{shell.LogMsgQueryStarted, shell.LogMsgQueryCompleted}, logger.infos)
}

func Test_QueryWrapper_Handle_Timeout(t *testing.T) {
	// arrange
	metrics := &metricsCollectorSpy{}
	tracing := &tracingCollectorSpy{}
	wrapper, err := observable.NewQueryWrapper[testQuery, testResult](
		&queryHandlerStub{err: context.DeadlineExceeded},
		observable.WithQueryMetrics[testQuery, testResult](metrics),
		observable.WithQueryTracing[testQuery, testResult](tracing),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), testQuery{})

	// assert
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, metrics.hasCounter(shell.QueryHandlerTimeoutMetric, shell.LogAttrStatus, shell.StatusTimeout))
	assert.Equal(t, shell.StatusTimeout, tracing.finished[0].status)
}
