package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCustomer(t *testing.T) {
	tests := []struct {
		productCode string
		want        CustomerType
	}{
		{"BNDF", CustomerTypeBond},
		{"ETFF", CustomerTypeOther},
		{"STKF", CustomerTypeOther},
		{"", CustomerTypeOther},
		{"bndf", CustomerTypeOther},
		{" BNDF", CustomerTypeOther},
	}

	for _, tt := range tests {
		t.Run("code_"+tt.productCode, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCustomer(tt.productCode))
		})
	}
}

func TestNewRecommendationRequest(t *testing.T) {
	tests := []struct {
		name string
		rec  CustomerRecord
		want RecommendationRequest
	}{
		{
			name: "bond_fund_customer",
			rec:  CustomerRecord{CustomerID: "1", ProductCode: "BNDF"},
			want: RecommendationRequest{ID: "1", ProductCodes: "BNDF", CustType: "00"},
		},
		{
			name: "etf_customer",
			rec:  CustomerRecord{CustomerID: "2", ProductCode: "ETFF"},
			want: RecommendationRequest{ID: "2", ProductCodes: "ETFF", CustType: "01"},
		},
		{
			name: "stock_customer",
			rec:  CustomerRecord{CustomerID: "3", ProductCode: "STKF"},
			want: RecommendationRequest{ID: "3", ProductCodes: "STKF", CustType: "01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRecommendationRequest(tt.rec))
		})
	}
}

func TestWorkerReply_Succeeded(t *testing.T) {
	assert.True(t, WorkerReply{StatusCode: "1313"}.Succeeded())
	assert.False(t, WorkerReply{StatusCode: "500"}.Succeeded())
	assert.False(t, WorkerReply{StatusCode: "200"}.Succeeded())
	assert.False(t, WorkerReply{}.Succeeded())
}
