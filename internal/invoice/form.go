package invoice

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"factureme/entity"
	"factureme/lib/validate"
)

const (
	InvoicePersonal = "personal"
	InvoiceCompany  = "company"
	DateCurrent     = "current"
	DateFuture      = "future"
	NumberAuto      = "auto"
	NumberCustom    = "custom"

	dateLayout = "2006-01-02"
)

// Form is the invoice creation form once bound and checked
type Form struct {
	CustomerId    string `form:"customerId" validate:"required"`
	BusinessId    string `form:"businessId" validate:"required_if=InvoiceType company"`
	InvoiceType   string `form:"invoiceType" validate:"required,oneof=personal company"`
	DateType      string `form:"dateType" validate:"required,oneof=current future"`
	InvoiceDate   string `form:"invoiceDate" validate:"required_if=DateType future"`
	NumberType    string `form:"numberType" validate:"required,oneof=auto custom"`
	Number        string `form:"number" validate:"required_if=NumberType custom,max=32"`
	IncludesTaxes bool   `form:"includesTaxes"`

	Items []entity.FormItem `form:"-"`

	idClient   int64
	idBusiness *int64
	date       time.Time
}

func (f *Form) IsCompany() bool {
	return f.InvoiceType == InvoiceCompany
}

func (f *Form) IsCustomNumber() bool {
	return f.NumberType == NumberCustom
}

// ParseForm binds values and collects every field and item error
func ParseForm(values url.Values, loc *time.Location) (*Form, *FormErrors) {
	form := &Form{
		CustomerId:    strings.TrimSpace(values.Get("customerId")),
		BusinessId:    strings.TrimSpace(values.Get("businessId")),
		InvoiceType:   strings.TrimSpace(values.Get("invoiceType")),
		DateType:      strings.TrimSpace(values.Get("dateType")),
		InvoiceDate:   strings.TrimSpace(values.Get("invoiceDate")),
		NumberType:    strings.TrimSpace(values.Get("numberType")),
		Number:        strings.TrimSpace(values.Get("number")),
		IncludesTaxes: checkbox(values.Get("includesTaxes")),
	}
	errs := &FormErrors{}

	fields, err := validate.Fields(form)
	if err != nil {
		errs.Add(fieldGeneral, CodeServerError)
	}
	for _, f := range fields {
		errs.Add(f.Field, codeForTag(f.Tag))
	}

	if form.CustomerId != "" {
		id, err := strconv.ParseInt(form.CustomerId, 10, 64)
		if err != nil || id <= 0 {
			errs.Add("customerId", CodeInvalidId)
		}
		form.idClient = id
	}
	if form.IsCompany() && form.BusinessId != "" {
		id, err := strconv.ParseInt(form.BusinessId, 10, 64)
		if err != nil || id <= 0 {
			errs.Add("businessId", CodeInvalidId)
		} else {
			form.idBusiness = &id
		}
	}
	if form.DateType == DateFuture && form.InvoiceDate != "" {
		date, err := time.ParseInLocation(dateLayout, form.InvoiceDate, loc)
		if err != nil {
			errs.Add("invoiceDate", CodeInvalidDate)
		}
		form.date = date
	}
	if !form.IsCustomNumber() {
		form.Number = ""
	}

	items, itemErrors := Normalize(values)
	form.Items = items
	for index, itemFields := range itemErrors {
		for field, codes := range itemFields {
			for _, code := range codes {
				errs.AddItem(index, field, code)
			}
		}
	}
	if len(items) == 0 {
		errs.Add(fieldGeneral, CodeNoItems)
	}

	return form, errs
}

func codeForTag(tag string) string {
	switch tag {
	case "required", "required_if":
		return CodeRequired
	}
	return CodeInvalidChoice
}

func checkbox(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
