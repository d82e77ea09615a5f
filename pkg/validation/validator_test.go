package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type avatarInput struct {
	HairStyle string `json:"hairStyle" validate:"required,hairstyle"`
	HairColor string `json:"hairColor" validate:"required,hexcolor"`
}

type sample struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,pwd"`
	Content  string      `json:"content" validate:"notblank,max=300"`
	Avatar   avatarInput `json:"avatar"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

func TestToDetails_FieldMessages(t *testing.T) {
	v := newValidator()
	err := v.Struct(sample{
		Email:    "nope",
		Password: "123",
		Content:  strings.Repeat("a", 301),
		Avatar:   avatarInput{HairStyle: "hair9", HairColor: "red"},
	})
	require.Error(t, err)

	d := ToDetails(err)
	assert.Equal(t, "debe ser un correo válido", d["email"])
	assert.Equal(t, "debe tener entre 6 y 72 caracteres", d["password"])
	assert.Equal(t, "no puede exceder 300 caracteres", d["content"])
	assert.Equal(t, "estilo no válido", d["avatar.hairStyle"])
	assert.Equal(t, "debe ser un color hexadecimal", d["avatar.hairColor"])
}

func TestNotBlank(t *testing.T) {
	v := newValidator()
	err := v.Struct(sample{
		Email:    "a@b.co",
		Password: "secret1",
		Content:  "   ",
		Avatar:   avatarInput{HairStyle: "hair1", HairColor: "#000000"},
	})
	require.Error(t, err)
	assert.Equal(t, "es requerido", ToDetails(err)["content"])
}

func TestMaxCountsRunes(t *testing.T) {
	v := newValidator()
	err := v.Struct(sample{
		Email:    "a@b.co",
		Password: "secret1",
		Content:  strings.Repeat("ñ", 300),
		Avatar:   avatarInput{HairStyle: "hair1", HairColor: "#000"},
	})
	assert.NoError(t, err)
}

func TestToDetails_JSONErrors(t *testing.T) {
	var dst map[string]any
	err := json.Unmarshal([]byte("{bad"), &dst)
	assert.Equal(t, map[string]string{"payload": "json inválido"}, ToDetails(err))
	assert.Nil(t, ToDetails(nil))
}
