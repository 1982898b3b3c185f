package entity

// BookingPayload is the JSON body posted to the booking webhook.
// CustomerCount keeps a numeric cell as a number.
type BookingPayload struct {
	Name          string      `json:"name"`
	Phone         string      `json:"phone"`
	CustomerCount interface{} `json:"customerCount"`
	Room          string      `json:"room"`
	Date          string      `json:"date"`
	StartTime     string      `json:"startTime"`
	EndTime       string      `json:"endTime"`
	Notes         string      `json:"notes"`
	Email         string      `json:"email"`
	RowNumber     int         `json:"rowNumber"`
}
