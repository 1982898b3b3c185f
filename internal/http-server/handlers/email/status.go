package email

import (
	"BookingBridge/internal/lib/api/response"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"time"
)

const (
	ServiceName   = "Discord Booking Email Service"
	StatusMessage = "Email service is running. Use POST to send emails."
)

func Status(_ *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Status(ServiceName, StatusMessage, time.Now()))
	}
}
