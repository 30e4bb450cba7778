// internal/model/customer.go
package model

// CustomerType is the coarse classification sent to the worker as cust_type.
type CustomerType string

const (
	CustomerTypeBond  CustomerType = "00"
	CustomerTypeOther CustomerType = "01"
)

// BondFundProductCode is the only product code classified as CustomerTypeBond.
const BondFundProductCode = "BNDF"

// CustomerRecord is a single row of the product code table.
type CustomerRecord struct {
	CustomerID  string `db:"customer_id" json:"customer_id"`
	ProductCode string `db:"product_code" json:"product_code"`
}

// ClassifyCustomer derives the customer type from a product code.
func ClassifyCustomer(productCode string) CustomerType {
	if productCode == BondFundProductCode {
		return CustomerTypeBond
	}
	return CustomerTypeOther
}

// RecommendationRequest is the payload posted to the worker.
type RecommendationRequest struct {
	ID           string       `json:"id"`
	ProductCodes string       `json:"product_codes"`
	CustType     CustomerType `json:"cust_type"`
}

// NewRecommendationRequest builds the worker payload for a looked up record.
func NewRecommendationRequest(rec CustomerRecord) RecommendationRequest {
	return RecommendationRequest{
		ID:           rec.CustomerID,
		ProductCodes: rec.ProductCode,
		CustType:     ClassifyCustomer(rec.ProductCode),
	}
}
