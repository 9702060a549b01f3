package quote

import "time"

// PDFFilename is the name the rendered quote is delivered under.
const PDFFilename = "quote.pdf"

// DateLayout formats the submission date as MM/dd/yyyy.
const DateLayout = "01/02/2006"

// Fields holds the scalar part of a quote form. Enumerated fields
// (ImportExport, Incoterms, SalesPerson, Unit) carry an option code.
type Fields struct {
	From         string `json:"from" validate:"required"`
	To           string `json:"to" validate:"required"`
	Customer     string `json:"customer" validate:"required"`
	CustomerID   string `json:"customerId" validate:"required"`
	Validity     string `json:"validity" validate:"required"`
	TransitTime  string `json:"transitTime" validate:"required"`
	FreeTime     string `json:"freeTime" validate:"required"`
	Incoterms    string `json:"incoterms" validate:"required"`
	Sailing      string `json:"sailing" validate:"required"`
	Commodity    string `json:"commodity" validate:"required"`
	SalesPerson  string `json:"salesPerson" validate:"required"`
	LclFclWeight string `json:"lclFclWeight" validate:"required"`
	ImportExport string `json:"importExport" validate:"required"`
	Unit         string `json:"unit" validate:"required"`
	Status       string `json:"status" validate:"required"`
	Remarks      string `json:"remarks" validate:"required"`
}

// LineItem is one billable row. Total is derived from Quantity and Price.
type LineItem struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// ItemInput seeds a new row; the total is always computed.
type ItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// ItemPatch edits an existing row. Nil fields are left unchanged.
type ItemPatch struct {
	Description *string  `json:"description,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// Submission is the payload posted to the PDF endpoint.
type Submission struct {
	Fields
	Items []LineItem `json:"items"`
	Date  string     `json:"date"`
	Total float64    `json:"total"`
}

// NewSubmission assembles the wire payload for the given moment.
func NewSubmission(fields Fields, items []LineItem, total float64, at time.Time) Submission {
	cp := make([]LineItem, len(items))
	copy(cp, items)
	return Submission{
		Fields: fields,
		Items:  cp,
		Date:   at.Format(DateLayout),
		Total:  total,
	}
}

// DefaultItems are the rows every new form starts with.
func DefaultItems() []ItemInput {
	return []ItemInput{
		{Description: "Ocean Freight", Quantity: 5, Price: 100},
		{Description: "THC", Quantity: 5, Price: 100},
		{Description: "Documentation Fee", Quantity: 5, Price: 100},
	}
}
