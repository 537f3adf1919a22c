package invoice

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"factureme/entity"
)

const fieldGeneral = "general"

// Normalize reads items[i][...] rows until an index has neither id nor type.
// Every row produces exactly one item, invalid rows included, so items[i] and
// the errors stored under i always describe form row i.
func Normalize(values url.Values) ([]entity.FormItem, ItemErrors) {
	items := make([]entity.FormItem, 0)
	itemErrors := make(ItemErrors)

	for i := 0; ; i++ {
		field := func(name string) string {
			return strings.TrimSpace(values.Get(fmt.Sprintf("items[%d][%s]", i, name)))
		}
		rawId := field("id")
		rawType := field("type")
		if rawId == "" && rawType == "" {
			break
		}

		id, err := strconv.ParseInt(rawId, 10, 64)
		if err != nil || id <= 0 {
			itemErrors.Add(i, fieldGeneral, CodeInvalidId)
			id = 0
		}

		switch entity.ItemType(rawType) {
		case entity.ItemProduct:
			quantity, err := strconv.Atoi(field("quantity"))
			if err != nil || quantity < 1 {
				itemErrors.Add(i, "quantity", CodeQuantityMin)
				quantity = 1
			}
			items = append(items, entity.ProductItem{Id: id, Quantity: quantity})

		case entity.ItemHourly:
			item := entity.HourlyItem{
				Id:        id,
				StartTime: field("startTime"),
				EndTime:   field("endTime"),
			}
			if raw := field("breakTime"); raw != "" {
				breakTime, err := strconv.ParseFloat(raw, 64)
				if err != nil || breakTime < 0 || math.IsNaN(breakTime) || math.IsInf(breakTime, 0) {
					itemErrors.Add(i, "breakTime", CodeBreakTime)
					breakTime = 0
				}
				item.BreakTime = breakTime
			}
			if item.StartTime == "" {
				itemErrors.Add(i, "startTime", CodeRequired)
			}
			if item.EndTime == "" {
				itemErrors.Add(i, "endTime", CodeRequired)
			}
			// plain string order on ISO-like timestamps
			if item.StartTime != "" && item.EndTime != "" && item.StartTime >= item.EndTime {
				itemErrors.Add(i, "endTime", CodeEndBeforeStart)
			}
			items = append(items, item)

		default:
			itemErrors.Add(i, fieldGeneral, CodeInvalidType)
			items = append(items, entity.UnknownItem{Id: id, Type: entity.ItemType(rawType)})
		}
	}

	return items, itemErrors
}
