package validate

import (
	"github.com/go-playground/validator/v10"
	"sync"
)

var (
	instance *validator.Validate
	once     sync.Once
)

func Struct(s interface{}) error {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance.Struct(s)
}
