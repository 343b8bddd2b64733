package service

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"GongKe/pkg/errors"
)

func TestStoreErrorDuplicateKey(t *testing.T) {
	// InsertMany 撞 localId 唯一索引报 BulkWriteException
	bulkDup := mongo.BulkWriteException{
		WriteErrors: []mongo.BulkWriteError{
			{WriteError: mongo.WriteError{Code: 11000, Message: "E11000 duplicate key error"}},
		},
	}
	assert.ErrorIs(t, storeError(bulkDup), errors.DuplicateRecord)

	// 单条写入的重复键形态
	writeDup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	}
	assert.ErrorIs(t, storeError(writeDup), errors.DuplicateRecord)
}

func TestStoreErrorPassthrough(t *testing.T) {
	assert.NoError(t, storeError(nil))

	// 非重复键错误原样透传
	plain := stderrors.New("connection reset")
	assert.Equal(t, plain, storeError(plain))

	notDup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 121, Message: "Document failed validation"}},
	}
	assert.Equal(t, error(notDup), storeError(notDup))
}
