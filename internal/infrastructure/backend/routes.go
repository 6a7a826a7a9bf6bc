package backend

import "github.com/matchme/matchme-web/internal/core/domain"

// Backend REST routes.
const (
	PathLogin    = "/api/login"
	PathRegister = "/api/register"
	PathUser     = "/api/user"

	PathAboutGet    = "/api/biog/aboutget"
	PathAbout       = "/api/biog/about"
	PathBirthdayGet = "/api/biog/birthdayget"
	PathBirthday    = "/api/biog/birthday"

	PathPreferenceCatalog   = "/pref/mapget"
	PathPreferenceSelection = "/pref/get"

	PathWeights = "/api/wigh/get"
)

var editPaths = map[domain.ProfileField]string{
	domain.FieldUsername:   "/edit/user",
	domain.FieldEmail:      "/edit/email",
	domain.FieldFirstName:  "/edit/first",
	domain.FieldMiddleName: "/edit/middle",
	domain.FieldLastName:   "/edit/last",
	domain.FieldPassword:   "/edit/pass",
	domain.FieldCity:       "/edit/city",
}

var preferencePaths = map[domain.Category]string{
	domain.CategoryFood:  "/pref/food",
	domain.CategoryHobby: "/pref/hobby",
	domain.CategoryMusic: "/pref/music",
}

var weightPaths = map[domain.WeightKind]string{
	domain.WeightDistance: "/api/wigh/dist",
	domain.WeightAge:      "/api/wigh/age",
	domain.WeightFood:     "/api/wigh/food",
	domain.WeightHobbies:  "/api/wigh/hobby",
	domain.WeightMusic:    "/api/wigh/music",
}

// EditPath returns the write route of a profile field.
func EditPath(f domain.ProfileField) (string, bool) {
	p, ok := editPaths[f]
	return p, ok
}

// PreferencePath returns the toggle route of a preference category.
func PreferencePath(c domain.Category) (string, bool) {
	p, ok := preferencePaths[c]
	return p, ok
}

// WeightPath returns the write route of a weight kind.
func WeightPath(k domain.WeightKind) (string, bool) {
	p, ok := weightPaths[k]
	return p, ok
}
