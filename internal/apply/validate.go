package apply

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// basicEmail is the text@text.text shape accepted by the form.
var basicEmail = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their form names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "basicemail", func(fl validator.FieldLevel) bool {
		return basicEmail.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(v, "mintrim", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// messages maps form field and failed tag to the text shown next to the field.
var messages = map[string]map[string]string{
	"fullName": {
		"required": "Full name is required",
		"notblank": "Full name is required",
	},
	"email": {
		"required":   "Email is required",
		"basicemail": "Please enter a valid email address",
	},
	"phone": {
		"required": "Phone number is required",
		"notblank": "Phone number is required",
	},
	"coverLetter": {
		"required": "Cover letter is required",
		"mintrim":  "Cover letter must be at least 100 characters",
	},
	"experience": {
		"required": "Experience is required",
		"notblank": "Experience is required",
	},
	"cvFile": {
		"required": "Please upload your CV",
	},
	"contentType": {
		"required": "CV must be a PDF, DOC, or DOCX file",
		"oneof":    "CV must be a PDF, DOC, or DOCX file",
	},
	"size": {
		"gt":  "CV file is empty",
		"max": "CV file must be 5MB or smaller",
	},
}

// fieldErrors converts validator output into the form's error list.
func fieldErrors(err error) FieldErrors {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{{Field: "form", Message: err.Error()}}
	}

	out := make(FieldErrors, 0, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		msg := messages[field][fe.Tag()]
		if field == "contentType" || field == "size" {
			field = "cvFile"
		}
		if msg == "" {
			msg = field + " is invalid"
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}
