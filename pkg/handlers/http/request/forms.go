package request

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeForm maps raw form values onto a typed form using its `form` tags.
// String values are converted to the target field types ("1" to true, etc).
func DecodeForm(values map[string]string, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "form",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create form decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to decode form: %w", err)
	}
	return nil
}

// Forms carry no required fields: an empty email still reaches the spam check.
type RegistrationForm struct {
	Email     string `form:"email"`
	Nickname  string `form:"nickname"`
	FirstName string `form:"firstname"`
	LastName  string `form:"lastname"`
	Password  string `form:"password"`
}

type OrderForm struct {
	Email     string `form:"email"`
	FirstName string `form:"firstname"`
	LastName  string `form:"lastname"`
	Note      string `form:"message"`
}

type NewsletterForm struct {
	Email     string `form:"email"`
	HookError bool   `form:"hook_error"`
}
