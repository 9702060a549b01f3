package quote

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrReadOnlyField = errors.New("field is read-only")
	ErrUnknownOption = errors.New("unknown option")
	ErrItemIndex     = errors.New("item index out of range")
)

// item field names used for touched tracking and error paths
const (
	itemDescription = "description"
	itemQuantity    = "quantity"
	itemPrice       = "price"
	itemTotal       = "total"
)

var itemFieldNames = []string{itemDescription, itemQuantity, itemPrice, itemTotal}

// Form is one quote being edited. Every item mutation recomputes the
// affected row and the grand total before the lock is released, so the
// totals a caller observes are never stale. Form is safe for concurrent use.
type Form struct {
	mu         sync.RWMutex
	catalog    Catalog
	fields     Fields
	items      []LineItem
	itemMarks  []map[string]bool
	grandTotal float64
	touched    map[string]bool
}

type FormOption func(*Form)

// WithCatalog sets the option lists the form validates choices against.
func WithCatalog(c Catalog) FormOption {
	return func(f *Form) { f.catalog = c }
}

// WithCustomerID overrides the generated customer id.
func WithCustomerID(id string) FormOption {
	return func(f *Form) { f.fields.CustomerID = id }
}

// NewForm returns a form seeded with the default line items and a freshly
// generated customer id.
func NewForm(opts ...FormOption) *Form {
	f := &Form{
		catalog: DefaultCatalog(),
		touched: make(map[string]bool),
	}
	f.fields.CustomerID = NewCustomerID()
	for _, opt := range opts {
		opt(f)
	}
	f.replaceItemsLocked(DefaultItems())
	return f
}

// NewCustomerID returns a short random id such as "CUS-1A2B3C4D".
func NewCustomerID() string {
	id := uuid.New()
	return "CUS-" + strings.ToUpper(hex.EncodeToString(id[:4]))
}

// FieldNames lists the scalar fields in declaration order.
func FieldNames() []string {
	return []string{
		"from", "to", "customer", "customerId", "validity", "transitTime",
		"freeTime", "incoterms", "sailing", "commodity", "salesPerson",
		"lclFclWeight", "importExport", "unit", "status", "remarks",
	}
}

func (f *Form) fieldRef(name string) *string {
	switch name {
	case "from":
		return &f.fields.From
	case "to":
		return &f.fields.To
	case "customer":
		return &f.fields.Customer
	case "customerId":
		return &f.fields.CustomerID
	case "validity":
		return &f.fields.Validity
	case "transitTime":
		return &f.fields.TransitTime
	case "freeTime":
		return &f.fields.FreeTime
	case "incoterms":
		return &f.fields.Incoterms
	case "sailing":
		return &f.fields.Sailing
	case "commodity":
		return &f.fields.Commodity
	case "salesPerson":
		return &f.fields.SalesPerson
	case "lclFclWeight":
		return &f.fields.LclFclWeight
	case "importExport":
		return &f.fields.ImportExport
	case "unit":
		return &f.fields.Unit
	case "status":
		return &f.fields.Status
	case "remarks":
		return &f.fields.Remarks
	}
	return nil
}

// SetField assigns a scalar field by its wire name and marks it touched.
func (f *Form) SetField(name, value string) error {
	if name == "customerId" {
		return fmt.Errorf("%w: %s", ErrReadOnlyField, name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ref := f.fieldRef(name)
	if ref == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if !f.catalog.Allows(name, value) {
		return fmt.Errorf("%w: %s=%q", ErrUnknownOption, name, value)
	}
	*ref = value
	f.touched[name] = true
	return nil
}

// SetFields assigns several fields at once. Nothing is changed unless
// every name and value is acceptable.
func (f *Form) SetFields(values map[string]string) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range names {
		if name == "customerId" {
			return fmt.Errorf("%w: %s", ErrReadOnlyField, name)
		}
		if f.fieldRef(name) == nil {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		if !f.catalog.Allows(name, values[name]) {
			return fmt.Errorf("%w: %s=%q", ErrUnknownOption, name, values[name])
		}
	}
	for _, name := range names {
		*f.fieldRef(name) = values[name]
		f.touched[name] = true
	}
	return nil
}

// Field returns the value of a scalar field.
func (f *Form) Field(name string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ref := f.fieldRef(name)
	if ref == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return *ref, nil
}

func (f *Form) Fields() Fields {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fields
}

func (f *Form) CustomerID() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fields.CustomerID
}

func (f *Form) Catalog() Catalog {
	return f.catalog
}

// Items returns a copy of the line items in order.
func (f *Form) Items() []LineItem {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]LineItem, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Form) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.items)
}

func (f *Form) GrandTotal() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.grandTotal
}

// AddItem appends an empty row (quantity 1, price 0) and returns it.
func (f *Form) AddItem() LineItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appendItemLocked(ItemInput{Quantity: 1})
	f.recalculateGrandTotalLocked()
	return f.items[len(f.items)-1]
}

// RemoveItem deletes the row at index. The remaining rows keep their order.
func (f *Form) RemoveItem(index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkIndexLocked(index); err != nil {
		return err
	}
	f.items = append(f.items[:index], f.items[index+1:]...)
	f.itemMarks = append(f.itemMarks[:index], f.itemMarks[index+1:]...)
	f.recalculateGrandTotalLocked()
	return nil
}

// UpdateItem applies patch to the row at index and returns the updated row.
func (f *Form) UpdateItem(index int, patch ItemPatch) (LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkIndexLocked(index); err != nil {
		return LineItem{}, err
	}
	it := &f.items[index]
	marks := f.itemMarks[index]
	if patch.Description != nil {
		it.Description = *patch.Description
		marks[itemDescription] = true
	}
	if patch.Quantity != nil {
		it.Quantity = *patch.Quantity
		marks[itemQuantity] = true
	}
	if patch.Price != nil {
		it.Price = *patch.Price
		marks[itemPrice] = true
	}
	f.recalculateRowLocked(index)
	f.recalculateGrandTotalLocked()
	return *it, nil
}

// MoveItem relocates the row at from so that it ends up at index to.
func (f *Form) MoveItem(from, to int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkIndexLocked(from); err != nil {
		return err
	}
	if err := f.checkIndexLocked(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	it, marks := f.items[from], f.itemMarks[from]
	f.items = append(f.items[:from], f.items[from+1:]...)
	f.itemMarks = append(f.itemMarks[:from], f.itemMarks[from+1:]...)
	f.items = append(f.items[:to], append([]LineItem{it}, f.items[to:]...)...)
	f.itemMarks = append(f.itemMarks[:to], append([]map[string]bool{marks}, f.itemMarks[to:]...)...)
	f.recalculateGrandTotalLocked()
	return nil
}

// ReplaceItems swaps the whole item sequence for inputs.
func (f *Form) ReplaceItems(inputs []ItemInput) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaceItemsLocked(inputs)
}

// RecalculateRow sets the total of row i to quantity * price and refreshes
// the grand total.
func (f *Form) RecalculateRow(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkIndexLocked(i); err != nil {
		return err
	}
	f.recalculateRowLocked(i)
	f.recalculateGrandTotalLocked()
	return nil
}

// RecalculateGrandTotal re-sums every row total from zero.
func (f *Form) RecalculateGrandTotal() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recalculateGrandTotalLocked()
}

// Validate returns ValidationErrors when a required field is empty.
func (f *Form) Validate() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return validateValues(f.fields, f.items)
}

func (f *Form) Valid() bool {
	return f.Validate() == nil
}

// MarkAllTouched flags every scalar field and every item field as touched.
// Values are not changed.
func (f *Form) MarkAllTouched() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range FieldNames() {
		f.touched[name] = true
	}
	for _, marks := range f.itemMarks {
		for _, name := range itemFieldNames {
			marks[name] = true
		}
	}
}

// Touched returns the sorted paths of touched fields.
func (f *Form) Touched() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.touchedLocked()
}

func (f *Form) touchedLocked() []string {
	out := make([]string, 0, len(f.touched))
	for name, ok := range f.touched {
		if ok {
			out = append(out, name)
		}
	}
	for i, marks := range f.itemMarks {
		for name, ok := range marks {
			if ok {
				out = append(out, fmt.Sprintf("items[%d].%s", i, name))
			}
		}
	}
	sort.Strings(out)
	return out
}

// IsTouched reports whether the field at path has been touched.
func (f *Form) IsTouched(path string) bool {
	for _, p := range f.Touched() {
		if p == path {
			return true
		}
	}
	return false
}

// Submission assembles the payload for the PDF endpoint, dated at.
func (f *Form) Submission(at time.Time) Submission {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return NewSubmission(f.fields, f.items, f.grandTotal, at)
}

// Snapshot is a consistent read of the whole form.
type Snapshot struct {
	Fields     Fields           `json:"fields"`
	Items      []LineItem       `json:"items"`
	GrandTotal float64          `json:"grandTotal"`
	Valid      bool             `json:"valid"`
	Errors     ValidationErrors `json:"errors,omitempty"`
	Touched    []string         `json:"touched"`
}

func (f *Form) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	items := make([]LineItem, len(f.items))
	copy(items, f.items)
	s := Snapshot{
		Fields:     f.fields,
		Items:      items,
		GrandTotal: f.grandTotal,
		Valid:      true,
		Touched:    f.touchedLocked(),
	}
	if err := validateValues(f.fields, f.items); err != nil {
		s.Valid = false
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			s.Errors = verrs
		}
	}
	return s
}

func (f *Form) checkIndexLocked(i int) error {
	if i < 0 || i >= len(f.items) {
		return fmt.Errorf("%w: %d (have %d)", ErrItemIndex, i, len(f.items))
	}
	return nil
}

func (f *Form) appendItemLocked(in ItemInput) {
	f.items = append(f.items, LineItem{
		Description: in.Description,
		Quantity:    in.Quantity,
		Price:       in.Price,
	})
	f.itemMarks = append(f.itemMarks, make(map[string]bool))
	f.recalculateRowLocked(len(f.items) - 1)
}

func (f *Form) replaceItemsLocked(inputs []ItemInput) {
	f.items = make([]LineItem, 0, len(inputs))
	f.itemMarks = make([]map[string]bool, 0, len(inputs))
	for _, in := range inputs {
		f.appendItemLocked(in)
	}
	f.recalculateGrandTotalLocked()
}

func (f *Form) recalculateRowLocked(i int) {
	it := &f.items[i]
	it.Total = LineTotal(it.Quantity, it.Price)
}

func (f *Form) recalculateGrandTotalLocked() float64 {
	f.grandTotal = SumTotals(f.items)
	return f.grandTotal
}
