package invoice

import (
	"net/url"

	"factureme/entity"
)

// ErrorKind classifies a failed creation, it selects the HTTP status
type ErrorKind string

const (
	KindNone        ErrorKind = ""
	KindValidation  ErrorKind = "validation"
	KindAuth        ErrorKind = "authentication"
	KindBusiness    ErrorKind = "business"
	KindPersistence ErrorKind = "persistence"
)

// error codes, translated by lib/i18n
const (
	CodeRequired        = "required"
	CodeInvalidChoice   = "invalid_choice"
	CodeInvalidDate     = "invalid_date"
	CodeInvalidId       = "invalid_id"
	CodeInvalidType     = "invalid_item_type"
	CodeItemNotFound    = "item_not_found"
	CodeQuantityMin     = "quantity_min"
	CodeBreakTime       = "break_time_invalid"
	CodeEndBeforeStart  = "end_before_start"
	CodeNoItems         = "no_items"
	CodeNumberUsed      = "number_used"
	CodeValidation      = "validation_failed"
	CodeUnauthenticated = "unauthenticated"
	CodeDuplicateNumber = "duplicate_invoice_number"
	CodeDataValidation  = "data_validation_failed"
	CodeServerError     = "server_error"
	CodeInvalidItems    = "invalid_items"

	CodeBusinessNotFound = "business_not_found"
)

// ItemErrors maps a form row index to its field errors
type ItemErrors map[int]map[string][]string

func (e ItemErrors) Add(index int, field, code string) {
	fields, ok := e[index]
	if !ok {
		fields = make(map[string][]string)
		e[index] = fields
	}
	fields[field] = append(fields[field], code)
}

func (e ItemErrors) Has(index int, field string) bool {
	return len(e[index][field]) > 0
}

type FormErrors struct {
	CustomerId  []string   `json:"customerId,omitempty"`
	BusinessId  []string   `json:"businessId,omitempty"`
	InvoiceType []string   `json:"invoiceType,omitempty"`
	DateType    []string   `json:"dateType,omitempty"`
	InvoiceDate []string   `json:"invoiceDate,omitempty"`
	NumberType  []string   `json:"numberType,omitempty"`
	Number      []string   `json:"number,omitempty"`
	Items       ItemErrors `json:"items,omitempty"`
	General     []string   `json:"general,omitempty"`
}

// Add records code against a form field by its submitted name
func (e *FormErrors) Add(field, code string) {
	switch field {
	case "customerId":
		e.CustomerId = append(e.CustomerId, code)
	case "businessId":
		e.BusinessId = append(e.BusinessId, code)
	case "invoiceType":
		e.InvoiceType = append(e.InvoiceType, code)
	case "dateType":
		e.DateType = append(e.DateType, code)
	case "invoiceDate":
		e.InvoiceDate = append(e.InvoiceDate, code)
	case "numberType":
		e.NumberType = append(e.NumberType, code)
	case "number":
		e.Number = append(e.Number, code)
	default:
		e.General = append(e.General, code)
	}
}

func (e *FormErrors) AddItem(index int, field, code string) {
	if e.Items == nil {
		e.Items = make(ItemErrors)
	}
	e.Items.Add(index, field, code)
}

func (e *FormErrors) Empty() bool {
	return len(e.CustomerId) == 0 && len(e.BusinessId) == 0 && len(e.InvoiceType) == 0 &&
		len(e.DateType) == 0 && len(e.InvoiceDate) == 0 && len(e.NumberType) == 0 &&
		len(e.Number) == 0 && len(e.Items) == 0 && len(e.General) == 0
}

// Localize returns a copy with every code passed through translate
func (e *FormErrors) Localize(translate func(code string) string) *FormErrors {
	if e == nil {
		return nil
	}
	tr := func(codes []string) []string {
		if codes == nil {
			return nil
		}
		out := make([]string, len(codes))
		for i, c := range codes {
			out[i] = translate(c)
		}
		return out
	}
	out := &FormErrors{
		CustomerId:  tr(e.CustomerId),
		BusinessId:  tr(e.BusinessId),
		InvoiceType: tr(e.InvoiceType),
		DateType:    tr(e.DateType),
		InvoiceDate: tr(e.InvoiceDate),
		NumberType:  tr(e.NumberType),
		Number:      tr(e.Number),
		General:     tr(e.General),
	}
	if e.Items != nil {
		out.Items = make(ItemErrors, len(e.Items))
		for index, fields := range e.Items {
			out.Items[index] = make(map[string][]string, len(fields))
			for field, codes := range fields {
				out.Items[index][field] = tr(codes)
			}
		}
	}
	return out
}

// Result is the outcome of an invoice creation. Failed results echo the submitted form.
type Result struct {
	Errors   *FormErrors     `json:"errors,omitempty"`
	Message  string          `json:"message,omitempty"`
	FormData url.Values      `json:"formData"`
	Kind     ErrorKind       `json:"-"`
	Facture  *entity.Facture `json:"-"`
}

func (r *Result) OK() bool {
	return r.Kind == KindNone && r.Facture != nil
}

func (r *Result) fail(kind ErrorKind, message string) *Result {
	r.Kind = kind
	r.Message = message
	r.Facture = nil
	return r
}
