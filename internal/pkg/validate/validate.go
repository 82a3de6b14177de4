package validate

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{6,15}$`)
)

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

func Email(value string) bool {
	return emailPattern.MatchString(strings.TrimSpace(value))
}

func Phone(value string) bool {
	return phonePattern.MatchString(strings.TrimSpace(value))
}

// Register checks a registration payload and returns per-field messages.
func Register(email, password, whatsappNumber string) map[string]string {
	errors := map[string]string{}

	if !Required(email) {
		errors["email"] = "Email is required"
	} else if !Email(email) {
		errors["email"] = "Invalid email format"
	}

	if password == "" {
		errors["password"] = "Password is required"
	} else if len(password) < 8 {
		errors["password"] = "Password must be at least 8 characters"
	}

	if Required(whatsappNumber) && !Phone(whatsappNumber) {
		errors["whatsapp_number"] = "Invalid phone number"
	}

	return errors
}

func Login(email, password string) map[string]string {
	errors := map[string]string{}
	if !Required(email) {
		errors["email"] = "Email is required"
	}
	if password == "" {
		errors["password"] = "Password is required"
	}
	return errors
}
