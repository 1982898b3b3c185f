package notifier

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	PlaceholderName          = "Không có thông tin"
	PlaceholderPhone         = "Không có số điện thoại"
	PlaceholderCustomerCount = "Không có khách hàng"
	PlaceholderRoom          = "Chưa chọn"
	PlaceholderDate          = "Chưa chọn ngày"
	PlaceholderNotes         = "Không có ghi chú"
)

var ErrInvalidTime = errors.New("not a time of day")

// Spreadsheet serial numbers count days from 1899-12-30.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"2/1/2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04:05 PM",
	"3:04PM",
}

// FormatDate renders a date cell as D/M/YYYY. Falsy cells give the placeholder.
// Text that is not a recognised date is passed through trimmed.
func FormatDate(v interface{}) string {
	if !truthy(v) {
		return PlaceholderDate
	}

	switch d := v.(type) {
	case time.Time:
		return dayMonthYear(d)
	case float64:
		return dayMonthYear(fromSerial(d))
	case int:
		return dayMonthYear(fromSerial(float64(d)))
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return dayMonthYear(t)
			}
		}
		return s
	default:
		return fmt.Sprint(v)
	}
}

// FormatClock renders a time-of-day cell as H:MM using the wall-clock hour and
// minute of the cell, with no time zone conversion.
func FormatClock(v interface{}) (string, error) {
	switch c := v.(type) {
	case time.Time:
		return clock(c.Hour(), c.Minute()), nil
	case float64:
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return "", fmt.Errorf("%w: %v", ErrInvalidTime, c)
		}
		t := fromSerial(c - math.Floor(c))
		return clock(t.Hour(), t.Minute()), nil
	case string:
		s := strings.TrimSpace(c)
		for _, layout := range clockLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return clock(t.Hour(), t.Minute()), nil
			}
		}
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, c)
	default:
		return "", fmt.Errorf("%w: %v", ErrInvalidTime, v)
	}
}

func dayMonthYear(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

func clock(hour, minute int) string {
	return fmt.Sprintf("%d:%02d", hour, minute)
}

func fromSerial(serial float64) time.Time {
	seconds := math.Round(serial * 86400)
	return serialEpoch.Add(time.Duration(seconds) * time.Second)
}

func truthy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case bool:
		return x
	case time.Time:
		return !x.IsZero()
	default:
		return true
	}
}

// text renders a cell as a string, or fallback when the cell is falsy.
func text(v interface{}, fallback string) string {
	if !truthy(v) {
		return fallback
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(v)
	}
}

// count keeps numeric cells numeric so the payload carries a JSON number.
func count(v interface{}, fallback string) interface{} {
	if !truthy(v) {
		return fallback
	}
	switch x := v.(type) {
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return int64(x)
		}
		return x
	case int:
		return x
	default:
		return text(v, fallback)
	}
}
