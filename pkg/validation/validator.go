package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for passwords and avatar styles.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Configure(v)
	}
}

// Configure applies the project's tag name function, aliases and custom tags to v.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("pwd", "min=6,max=72") // bcrypt ignores bytes past 72
	v.RegisterAlias("hairstyle", "oneof=hair1 hair2 hair3 hair4")
	v.RegisterAlias("eyestyle", "oneof=eyes1 eyes2 eyes3 eyes4")
	v.RegisterAlias("mouthstyle", "oneof=mouth1 mouth2 mouth3 mouth4")
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// ToDetails converts validation/binding errors into a map[field]message for the error payload.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return map[string]string{"payload": "el cuerpo de la petición está vacío"}
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "json inválido"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fieldPath(fe)] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "datos inválidos"}
}

// fieldPath drops the top-level struct name so nested fields read "avatar.hairStyle".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required", "notblank":
		return "es requerido"
	case "email":
		return "debe ser un correo válido"
	case "url", "http_url":
		return "debe ser una URL válida"
	case "uuid", "uuid4":
		return "debe ser un identificador válido"
	case "hexcolor":
		return "debe ser un color hexadecimal"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "debe ser al menos " + param
		}
		return "debe tener al menos " + param + " caracteres"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "debe ser como máximo " + param
		}
		return "no puede exceder " + param + " caracteres"
	case "oneof":
		return "debe ser uno de: " + strings.Join(strings.Fields(param), ", ")
	case "pwd":
		return "debe tener entre 6 y 72 caracteres"
	case "hairstyle", "eyestyle", "mouthstyle":
		return "estilo no válido"
	case "gte":
		return "debe ser mayor o igual a " + param
	case "lte":
		return "debe ser menor o igual a " + param
	default:
		if param != "" {
			return fmt.Sprintf("no cumple la regla '%s' (%s)", tag, param)
		}
		return fmt.Sprintf("no cumple la regla '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
