package email

import (
	"BookingBridge/entity"
	"context"
)

type Core interface {
	SendEmail(ctx context.Context, req *entity.EmailRequest) error
}
