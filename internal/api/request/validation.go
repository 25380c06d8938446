package request

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Connect holds the dashboard config form.
type Connect struct {
	APIURL   string `validate:"required,http_url"`
	APIKey   string `validate:"required"`
	Remember bool
}

// DecodeConnect reads and validates the config form.
func DecodeConnect(r *http.Request) (Connect, error) {
	if err := r.ParseForm(); err != nil {
		return Connect{}, fmt.Errorf("invalid form: %w", err)
	}
	c := Connect{
		APIURL:   strings.TrimRight(strings.TrimSpace(r.PostFormValue("api_url")), "/"),
		APIKey:   strings.TrimSpace(r.PostFormValue("api_key")),
		Remember: r.PostFormValue("remember") == "true",
	}
	if err := validate.Struct(c); err != nil {
		return c, fmt.Errorf("validation error: %w", err)
	}
	return c, nil
}
