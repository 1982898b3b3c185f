package email

import (
	"BookingBridge/entity"
	"BookingBridge/internal/lib/api/response"
	"BookingBridge/internal/lib/sl"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	MissingFieldsMessage = "Missing required fields: to, subject, body"
	TestMessage          = "Test request successful - Apps Script is working"
)

// Send relays a JSON email request. Every outcome is answered with HTTP 200;
// failures are reported in the body.
func Send(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.email")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.EmailRequest
		if err := decodeJSON(r.Body, &req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Invalid request body: %v", err)).At(time.Now()))
			return
		}

		if err := req.Bind(r); err != nil {
			logger.With(sl.Err(err)).Warn("missing required fields")
			render.JSON(w, r, response.Error(MissingFieldsMessage))
			return
		}

		logger = logger.With(
			slog.String("to", req.To),
			slog.String("subject", req.Subject),
		)

		if req.IsTest() {
			logger.Info("test request received, not sending actual email")
			render.JSON(w, r, response.Ok(TestMessage))
			return
		}

		if handler == nil {
			logger.Error("email relay not available")
			render.JSON(w, r, response.Error("Email relay not available").At(time.Now()))
			return
		}

		if err := handler.SendEmail(r.Context(), &req); err != nil {
			logger.Error("send email", sl.Err(err))
			render.JSON(w, r, response.Error(err.Error()).At(time.Now()))
			return
		}
		logger.Info("email sent successfully")

		render.JSON(w, r, response.Ok(fmt.Sprintf("Email sent successfully to %s", req.To)).At(time.Now()))
	}
}

// decodeJSON reads exactly one JSON value from r; anything after it other
// than whitespace is an error.
func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errors.New("unexpected data after JSON value")
		}
		return err
	}
	return nil
}
