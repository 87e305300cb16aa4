package types

// SignupForm is the sign-up form as submitted by the browser.
// Email and password are only used when no session identity exists.
type SignupForm struct {
	Name            string `form:"name" json:"name"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
	DateOfBirth     string `form:"date_of_birth" json:"date_of_birth"`
	EducationLevel  string `form:"education_level" json:"education_level"`
	Summary         string `form:"summary" json:"summary"`
	Phone           string `form:"phone" json:"phone"`
	LinkedIn        string `form:"linkedin" json:"linkedin"`
	Facebook        string `form:"facebook" json:"facebook"`
	Instagram       string `form:"instagram" json:"instagram"`
	Twitter         string `form:"twitter" json:"twitter"`
	Website         string `form:"website" json:"website"`
	TermsAccepted   bool   `form:"terms_accepted" json:"terms_accepted"`

	// Photo is the locally selected profile photo, nil when none was chosen
	Photo *PhotoFile `form:"-" json:"-"`
}

// PhotoFile is an uploaded image held in memory
type PhotoFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the photo size in bytes
func (p *PhotoFile) Size() int64 {
	if p == nil {
		return 0
	}
	return int64(len(p.Data))
}

// OAuthSignInRequest carries the credential returned by the provider's client SDK
type OAuthSignInRequest struct {
	Token string `json:"token" binding:"required"`
}

// LoginRequest is an email/password sign-in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
