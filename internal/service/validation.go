package service

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/pageza/workwise/backend/internal/models"
	"github.com/pageza/workwise/backend/internal/types"
)

const (
	nameMinLength    = 2
	nameMaxLength    = 50
	summaryMinLength = 50
	summaryMaxLength = 500
	phoneMinDigits   = 7
	phoneMaxDigits   = 15
	minAge           = 18
	maxAge           = 100

	dateLayout = "2006-01-02"
)

var validate = validator.New()

// ValidationErrors maps a form field to the message shown next to it
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, v[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateSignup checks the whole form and returns every violation found.
// Email and password are only checked when the session carries no identity.
func ValidateSignup(form types.SignupForm, session types.SessionContext, now time.Time) ValidationErrors {
	errs := ValidationErrors{}

	name := strings.TrimSpace(form.Name)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		errs["name"] = "Name is required"
	case n < nameMinLength || n > nameMaxLength:
		errs["name"] = fmt.Sprintf("Name must be between %d and %d characters", nameMinLength, nameMaxLength)
	}

	if !session.Authenticated() {
		email := strings.TrimSpace(form.Email)
		if email == "" {
			errs["email"] = "Email is required"
		} else if validate.Var(email, "email") != nil {
			errs["email"] = "Please enter a valid email address"
		}

		switch {
		case form.Password == "":
			errs["password"] = "Password is required"
		case utf8.RuneCountInString(form.Password) < minPasswordLength:
			errs["password"] = fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
		}
		if form.ConfirmPassword != "" && form.ConfirmPassword != form.Password {
			errs["confirm_password"] = "Passwords do not match"
		}
	}

	if strings.TrimSpace(form.DateOfBirth) == "" {
		errs["date_of_birth"] = "Date of birth is required"
	} else if dob, err := time.Parse(dateLayout, strings.TrimSpace(form.DateOfBirth)); err != nil {
		errs["date_of_birth"] = "Please enter a valid date"
	} else if age := AgeAt(dob, now); dob.After(now) || age < minAge || age > maxAge {
		errs["date_of_birth"] = fmt.Sprintf("You must be between %d and %d years old", minAge, maxAge)
	}

	if form.EducationLevel == "" {
		errs["education_level"] = "Education level is required"
	} else if !models.ValidEducationLevel(form.EducationLevel) {
		errs["education_level"] = "Please choose an education level from the list"
	}

	summary := strings.TrimSpace(form.Summary)
	switch n := utf8.RuneCountInString(summary); {
	case n == 0:
		errs["summary"] = "Summary is required"
	case n < summaryMinLength || n > summaryMaxLength:
		errs["summary"] = fmt.Sprintf("Summary must be between %d and %d characters", summaryMinLength, summaryMaxLength)
	}

	if strings.TrimSpace(form.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if digits, ok := NormalizePhone(form.Phone); !ok || len(digits) < phoneMinDigits || len(digits) > phoneMaxDigits {
		errs["phone"] = "Please enter a valid phone number"
	}

	links := map[string]string{
		"linkedin":  form.LinkedIn,
		"facebook":  form.Facebook,
		"instagram": form.Instagram,
		"twitter":   form.Twitter,
		"website":   form.Website,
	}
	for field, link := range links {
		if link = strings.TrimSpace(link); link != "" && !validLink(link) {
			errs[field] = "Please enter a full link starting with http:// or https://"
		}
	}

	if !form.TermsAccepted {
		errs["terms_accepted"] = "You must accept the terms and conditions"
	}

	if form.Photo == nil && session.ProviderPhotoURL() == "" {
		errs["photo"] = "Please upload a profile photo"
	}

	return errs
}

// AgeAt returns the age in whole years of someone born on dob at time now
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// NormalizePhone strips formatting and returns the digits.
// ok is false when anything other than digits remains.
func NormalizePhone(phone string) (digits string, ok bool) {
	phone = strings.TrimSpace(phone)
	phone = strings.TrimPrefix(phone, "+")

	var b strings.Builder
	for _, r := range phone {
		switch {
		case r == ' ' || r == '-' || r == '(' || r == ')':
			continue
		case unicode.IsDigit(r) && r < utf8.RuneSelf:
			b.WriteRune(r)
		default:
			return "", false
		}
	}
	return b.String(), true
}

func validLink(link string) bool {
	if validate.Var(link, "url") != nil {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
