package quote

// Option is one entry of a dropdown list.
type Option struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Catalog groups the option lists a form chooses from. A Catalog is
// treated as read-only once handed to a form.
type Catalog struct {
	ImportExport []Option `json:"importExport"`
	Incoterms    []Option `json:"incoterms"`
	SalesPerson  []Option `json:"salesPerson"`
	Unit         []Option `json:"unit"`
}

// DefaultCatalog returns a fresh copy of the compiled-in option lists.
func DefaultCatalog() Catalog {
	return Catalog{
		ImportExport: []Option{
			{Name: "Import", Code: "IMP"},
			{Name: "Export", Code: "EXP"},
		},
		Incoterms: []Option{
			{Name: "Ex Works", Code: "EXW"},
			{Name: "Free Carrier", Code: "FCA"},
			{Name: "Free Alongside Ship", Code: "FAS"},
			{Name: "Free On Board", Code: "FOB"},
			{Name: "Cost and Freight", Code: "CFR"},
			{Name: "Cost, Insurance and Freight", Code: "CIF"},
			{Name: "Carriage Paid To", Code: "CPT"},
			{Name: "Carriage and Insurance Paid To", Code: "CIP"},
			{Name: "Delivered at Place", Code: "DAP"},
			{Name: "Delivered at Place Unloaded", Code: "DPU"},
			{Name: "Delivered Duty Paid", Code: "DDP"},
		},
		SalesPerson: []Option{
			{Name: "Sales Desk", Code: "DESK"},
			{Name: "Key Accounts", Code: "KAM"},
			{Name: "Inside Sales", Code: "ISR"},
		},
		Unit: []Option{
			{Name: "20' General Purpose", Code: "20GP"},
			{Name: "40' General Purpose", Code: "40GP"},
			{Name: "40' High Cube", Code: "40HC"},
			{Name: "45' High Cube", Code: "45HC"},
			{Name: "20' Reefer", Code: "20RF"},
			{Name: "40' Reefer", Code: "40RF"},
			{Name: "LCL (per CBM)", Code: "CBM"},
		},
	}
}

// lists maps a field wire name to the option list that constrains it.
func (c Catalog) lists() map[string][]Option {
	return map[string][]Option{
		"importExport": c.ImportExport,
		"incoterms":    c.Incoterms,
		"salesPerson":  c.SalesPerson,
		"unit":         c.Unit,
	}
}

// Allows reports whether value is acceptable for field. Fields without an
// option list accept anything; an empty value is always accepted so a
// selection can be cleared.
func (c Catalog) Allows(field, value string) bool {
	opts, ok := c.lists()[field]
	if !ok || value == "" {
		return true
	}
	for _, o := range opts {
		if o.Code == value {
			return true
		}
	}
	return false
}

// Lookup returns the option for code within field, if any.
func (c Catalog) Lookup(field, code string) (Option, bool) {
	for _, o := range c.lists()[field] {
		if o.Code == code {
			return o, true
		}
	}
	return Option{}, false
}

// Terms returns the standard conditions shown next to every quote. They
// are informational and not part of the submitted payload.
func Terms() []string {
	return []string{
		"All rates quoted are valid for 15 days.",
		"40% payment should be done in advance.",
		"No returns will be accepted after 20 days.",
		"The remaining amount should be paid within 20 days of delivery.",
	}
}
