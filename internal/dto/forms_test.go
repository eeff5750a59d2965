package dto

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegisterForm(t *testing.T) {
	r := httptest.NewRequest("POST", "/register",
		strings.NewReader(url.Values{
			"email":    {" alice@example.com "},
			"username": {"alice"},
			"password": {"pw123456"},
		}.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form := ParseRegisterForm(r)
	assert.Equal(t, "alice@example.com", form.Email)
	assert.Equal(t, "alice", form.Username)
	assert.Equal(t, "pw123456", form.Password)
	require.NoError(t, form.Validate())
}

func TestRegisterFormValidate(t *testing.T) {
	tests := []struct {
		name string
		form RegisterForm
		want string
	}{
		{"missing fields", RegisterForm{}, "required"},
		{"bad email", RegisterForm{Email: "not-an-email", Username: "alice", Password: "pw123456"}, "email"},
		{"short username", RegisterForm{Email: "a@x.com", Username: "ab", Password: "pw123456"}, "Username"},
		{"short password", RegisterForm{Email: "a@x.com", Username: "alice", Password: "pw"}, "Password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	require.NoError(t, RegisterForm{Email: "a@x.com", Username: "alice", Password: "pw123456"}.Validate())
}

func TestParseProductForm(t *testing.T) {
	r := httptest.NewRequest("POST", "/",
		strings.NewReader(url.Values{
			"product.name":     {"Milk"},
			"product.category": {"Dairy"},
			"product.qty":      {"3"},
		}.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form, err := ParseProductForm(r)
	require.NoError(t, err)
	assert.Equal(t, ProductForm{Name: "Milk", Category: "Dairy", Qty: 3}, form)
}

func TestParseProductForm_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"missing name", url.Values{"product.category": {"Dairy"}, "product.qty": {"1"}}},
		{"non-numeric qty", url.Values{"product.name": {"Milk"}, "product.category": {"Dairy"}, "product.qty": {"lots"}}},
		{"negative qty", url.Values{"product.name": {"Milk"}, "product.category": {"Dairy"}, "product.qty": {"-1"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.values.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			_, err := ParseProductForm(r)
			require.Error(t, err)
		})
	}
}
