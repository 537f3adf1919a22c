package entity

import "strconv"

type ItemType string

const (
	ItemProduct ItemType = "product"
	ItemHourly  ItemType = "hourly"
)

// FormItem is one submitted invoice line: ProductItem, HourlyItem or UnknownItem.
// Consumers switch on the concrete type.
type FormItem interface {
	ItemId() int64
	ItemType() ItemType
	formItem()
}

type ProductItem struct {
	Id       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

func (p ProductItem) ItemId() int64      { return p.Id }
func (p ProductItem) ItemType() ItemType { return ItemProduct }
func (ProductItem) formItem()            {}

type HourlyItem struct {
	Id        int64   `json:"id"`
	BreakTime float64 `json:"breakTime"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
}

func (h HourlyItem) ItemId() int64      { return h.Id }
func (h HourlyItem) ItemType() ItemType { return ItemHourly }
func (HourlyItem) formItem()            {}

// UnknownItem keeps the slot of a row whose type tag is missing or not recognized
type UnknownItem struct {
	Id   int64    `json:"id"`
	Type ItemType `json:"type"`
}

func (u UnknownItem) ItemId() int64      { return u.Id }
func (u UnknownItem) ItemType() ItemType { return u.Type }
func (UnknownItem) formItem()            {}

// ItemKey identifies a catalog reference across kinds, "product-3" never matches "hourly-3"
func ItemKey(t ItemType, id int64) string {
	return string(t) + "-" + strconv.FormatInt(id, 10)
}
