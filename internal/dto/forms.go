// Package dto defines the HTML form payloads and their validation.
package dto

import (
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
)

// RegisterForm represents the submitted registration form
type RegisterForm struct {
	Email    string
	Username string
	Password string
}

// ParseRegisterForm reads the registration fields from the request body.
func ParseRegisterForm(r *http.Request) RegisterForm {
	return RegisterForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
}

// Validate checks the submitted fields and returns a user-facing error for
// the first problem found.
func (f RegisterForm) Validate() error {
	if f.Email == "" || f.Username == "" || f.Password == "" {
		return errors.New("Email, username, and password are required")
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return errors.New("Invalid email address")
	}
	if len(f.Username) < 3 || len(f.Username) > 50 {
		return errors.New("Username must be between 3 and 50 characters")
	}
	if len(f.Password) < 8 {
		return errors.New("Password must be at least 8 characters")
	}
	return nil
}

// LoginForm represents the submitted login form
type LoginForm struct {
	Username string
	Password string
}

// ParseLoginForm reads the login fields from the request body.
func ParseLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
}

// Validate checks that both credentials were submitted.
func (f LoginForm) Validate() error {
	if f.Username == "" || f.Password == "" {
		return errors.New("Username and password are required")
	}
	return nil
}

// ProductForm represents the submitted new-product form. Field names keep
// the product.* prefix the forms have always used.
type ProductForm struct {
	Name     string
	Category string
	Qty      int
}

// ParseProductForm reads and validates the product fields from the request
// body.
func ParseProductForm(r *http.Request) (ProductForm, error) {
	form := ProductForm{
		Name:     strings.TrimSpace(r.PostFormValue("product.name")),
		Category: strings.TrimSpace(r.PostFormValue("product.category")),
	}
	if form.Name == "" || form.Category == "" {
		return form, errors.New("Name and category are required")
	}

	qty, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("product.qty")))
	if err != nil {
		return form, errors.New("Quantity must be a whole number")
	}
	if qty < 0 {
		return form, errors.New("Quantity cannot be negative")
	}
	form.Qty = qty

	return form, nil
}
