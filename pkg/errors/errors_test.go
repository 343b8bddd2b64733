package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefinitionIsError(t *testing.T) {
	var err error = RecordNotFound
	assert.Equal(t, "Record not found", err.Error())
}

func TestGet(t *testing.T) {
	assert.Equal(t, StoreUnavailable, Get("STORE_UNAVAILABLE"))

	unknown := Get("NO_SUCH_CODE")
	assert.Equal(t, "NO_SUCH_CODE", unknown.Code)
	assert.Equal(t, "Unexpected error", unknown.Message)
}
