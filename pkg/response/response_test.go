package response

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"GongKe/pkg/errors"
)

func TestErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.ValidationFailed, http.StatusBadRequest},
		{errors.DateRequired, http.StatusBadRequest},
		{errors.NameRequired, http.StatusBadRequest},
		{errors.BatchEmpty, http.StatusBadRequest},
		{errors.BatchAllInvalid, http.StatusBadRequest},
		{errors.InvalidRecordID, http.StatusBadRequest},
		{errors.InvalidDateRange, http.StatusBadRequest},
		{errors.Unauthorized, http.StatusUnauthorized},
		{errors.AdminTokenUnset, http.StatusUnauthorized},
		{errors.RecordNotFound, http.StatusNotFound},
		{errors.DuplicateRecord, http.StatusConflict},
		{errors.TooManyRequests, http.StatusTooManyRequests},
		{errors.StoreUnavailable, http.StatusServiceUnavailable},
		{errors.NotConnected, http.StatusServiceUnavailable},
		{errors.Internal, http.StatusInternalServerError},
		// 非业务错误一律按 500 处理
		{stderrors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, errorToHTTPStatus(tt.err), "err=%v", tt.err)
	}
}
