package response

import "time"

// TimeLayout renders timestamps as UTC ISO 8601 with milliseconds.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

type ServiceStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

func Ok(message string) Response {
	return Response{
		Success: true,
		Message: message,
	}
}

func Error(message string) Response {
	return Response{
		Success: false,
		Error:   message,
	}
}

// At stamps the response with t.
func (r Response) At(t time.Time) Response {
	r.Timestamp = Timestamp(t)
	return r
}

func Status(service, message string, t time.Time) ServiceStatus {
	return ServiceStatus{
		Status:    "active",
		Service:   service,
		Timestamp: Timestamp(t),
		Message:   message,
	}
}

func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
