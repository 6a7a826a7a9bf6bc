package domain

// ProfileField names a single independently editable profile attribute.
type ProfileField string

const (
	FieldUsername   ProfileField = "username"
	FieldEmail      ProfileField = "email"
	FieldFirstName  ProfileField = "firstName"
	FieldMiddleName ProfileField = "middleName"
	FieldLastName   ProfileField = "lastName"
	FieldPassword   ProfileField = "password"
	FieldCity       ProfileField = "city"
)

// TextFields are the profile fields sent as a single {"value": ...} body.
var TextFields = []ProfileField{
	FieldUsername,
	FieldEmail,
	FieldFirstName,
	FieldMiddleName,
	FieldLastName,
	FieldPassword,
}

// FieldRules are the validator tags checked before a text field is saved.
var FieldRules = map[ProfileField]string{
	FieldUsername:  "required",
	FieldEmail:     "required,email",
	FieldFirstName: "required",
	FieldLastName:  "required",
}

// ParseProfileField maps a form or route name onto a ProfileField.
func ParseProfileField(s string) (ProfileField, bool) {
	f := ProfileField(s)
	switch f {
	case FieldUsername, FieldEmail, FieldFirstName, FieldMiddleName, FieldLastName, FieldPassword, FieldCity:
		return f, true
	}
	return "", false
}

// City is a named place with its coordinates.
type City struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UserProfile is the user as the backend reports it. Password is write-only
// and never part of it.
type UserProfile struct {
	UserID         string  `json:"user_id,omitempty"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	FirstName      string  `json:"firstName"`
	MiddleName     string  `json:"middleName"`
	LastName       string  `json:"lastName"`
	City           string  `json:"city"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	ProfilePicture string  `json:"profilePicture,omitempty"`
}

// FullName joins the non-empty name parts.
func (u UserProfile) FullName() string {
	name := ""
	for _, part := range []string{u.FirstName, u.MiddleName, u.LastName} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// Text returns the current value of a text field.
func (u UserProfile) Text(f ProfileField) string {
	switch f {
	case FieldUsername:
		return u.Username
	case FieldEmail:
		return u.Email
	case FieldFirstName:
		return u.FirstName
	case FieldMiddleName:
		return u.MiddleName
	case FieldLastName:
		return u.LastName
	case FieldCity:
		return u.City
	}
	return ""
}

// WithText returns a copy of u with field f set to v.
func (u UserProfile) WithText(f ProfileField, v string) UserProfile {
	switch f {
	case FieldUsername:
		u.Username = v
	case FieldEmail:
		u.Email = v
	case FieldFirstName:
		u.FirstName = v
	case FieldMiddleName:
		u.MiddleName = v
	case FieldLastName:
		u.LastName = v
	case FieldCity:
		u.City = v
	}
	return u
}

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up form. ConfirmPassword never leaves the client.
type Registration struct {
	Username        string  `json:"username"    validate:"required"`
	Email           string  `json:"email"       validate:"required,email"`
	FirstName       string  `json:"first_name"  validate:"required"`
	MiddleName      string  `json:"middle_name"`
	LastName        string  `json:"last_name"   validate:"required"`
	Password        string  `json:"password"    validate:"required"`
	ConfirmPassword string  `json:"-"           validate:"eqfield=Password"`
	City            string  `json:"user_city"`
	Latitude        float64 `json:"latitude"    validate:"min=-90,max=90"`
	Longitude       float64 `json:"longitude"   validate:"min=-180,max=180"`
}

// CityDraft is validated before the city is sent.
type CityDraft struct {
	Name      string  `validate:"required"`
	Latitude  float64 `validate:"min=-90,max=90"`
	Longitude float64 `validate:"min=-180,max=180"`
}

// PasswordChange is the password draft of the profile page.
type PasswordChange struct {
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"eqfield=Password"`
}
