package dto

import (
	"reflect"
	"strings"

	"treasury-ledger/pkg/types"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hexaddr", validateHexAddress)
	}
}

// validateHexAddress accepts a 32-byte hex address, optionally 0x-prefixed.
func validateHexAddress(fl validator.FieldLevel) bool {
	_, err := types.ParseAddress(fl.Field().String())
	return err == nil
}

// NormalizeStruct trims whitespace and lowercases every exported string
// field of a struct pointer, so hex addresses compare and log uniformly.
func NormalizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	rv = rv.Elem()
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.CanSet() && f.Kind() == reflect.String {
			f.SetString(strings.ToLower(strings.TrimSpace(f.String())))
		}
	}
}

// ParseAddress parses a validated hex address field.
func ParseAddress(s string) types.Address {
	addr, _ := types.ParseAddress(s)
	return addr
}
