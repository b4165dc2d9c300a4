package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStatusChange(t *testing.T) {
	before := testutil.ToFloat64(OrderStatusChanges.WithLabelValues("delivered", "cancelled"))
	RecordStatusChange("delivered", "cancelled")
	assert.Equal(t, before+1, testutil.ToFloat64(OrderStatusChanges.WithLabelValues("delivered", "cancelled")))
}

func TestRecordUploadAndPaymentResults(t *testing.T) {
	okBefore := testutil.ToFloat64(UploadsTotal.WithLabelValues("local", "ok"))
	errBefore := testutil.ToFloat64(PaymentCallsTotal.WithLabelValues("paypal", "capture", "error"))

	RecordUpload("local", nil)
	RecordPaymentCall("paypal", "capture", errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(UploadsTotal.WithLabelValues("local", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(PaymentCallsTotal.WithLabelValues("paypal", "capture", "error")))
}
