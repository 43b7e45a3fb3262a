package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBeforeInitIsNoop(t *testing.T) {
	metricsMu.Lock()
	saved := engineMetrics
	engineMetrics = nil
	metricsMu.Unlock()
	defer func() {
		metricsMu.Lock()
		engineMetrics = saved
		metricsMu.Unlock()
	}()

	assert.NotPanics(t, func() {
		RecordCommittedTx(2)
		RecordRejectedTx("amount_mismatch")
		RecordFee(10)
		IncreaseBlockCount()
		IncreasePanicCount()
	})
}

func TestRecordCounters(t *testing.T) {
	InitMetricsWith(prometheus.NewRegistry())
	m := current()

	RecordCommittedTx(2)
	RecordCommittedTx(3)
	RecordRejectedTx("amount_mismatch")
	RecordRejectedTx("amount_mismatch")
	RecordRejectedTx("must_pay_fee")
	RecordFee(100)
	RecordFee(23)
	IncreaseBlockCount()
	IncreasePanicCount()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.committedTxCount))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rejectedTxCount.WithLabelValues("amount_mismatch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejectedTxCount.WithLabelValues("must_pay_fee")))
	assert.Equal(t, 123.0, testutil.ToFloat64(m.feeCollected))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.blockCount))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.handlerPanics))
}
