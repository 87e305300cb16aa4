package testhelpers

import (
	"strings"

	"github.com/pageza/workwise/backend/internal/types"
)

// PNGBytes is enough of a PNG for content sniffing
var PNGBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

// ValidSignupForm returns a form that passes validation for a caller without a session
func ValidSignupForm() types.SignupForm {
	return types.SignupForm{
		Name:            "Amina Yusuf",
		Email:           "amina@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		DateOfBirth:     "1990-04-12",
		EducationLevel:  "bachelor",
		Summary:         strings.Repeat("Reliable handyman with ten years of experience. ", 2),
		Phone:           "+254 (712) 345-678",
		LinkedIn:        "https://www.linkedin.com/in/amina",
		TermsAccepted:   true,
		Photo: &types.PhotoFile{
			Filename:    "me.png",
			ContentType: "image/png",
			Data:        PNGBytes,
		},
	}
}
