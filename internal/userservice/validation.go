package userservice

import (
	"regexp"

	"github.com/sushihentaime/blogapp/internal/common"
)

var (
	emailRX    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRX = regexp.MustCompile("^[a-zA-Z0-9]+$")

	// a password needs one match of each
	passwordClassRXs = []*regexp.Regexp{
		regexp.MustCompile("[A-Z]"),
		regexp.MustCompile("[a-z]"),
		regexp.MustCompile("[0-9]"),
		regexp.MustCompile(`[#?!@$%^&*_\\-]`),
	}
)

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(v.CheckStringLength(username, 3, 25), "username", "must be between 3 and 25 characters long")
	v.Check(usernameRX.MatchString(username), "username", "must only contain letters and numbers")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(emailRX.MatchString(email), "email", "must be a valid email address")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")

	// bcrypt ignores everything past 72 bytes
	ok := v.CheckStringLength(password, 8, 72) && len(password) <= 72
	for _, rx := range passwordClassRXs {
		ok = ok && rx.MatchString(password)
	}
	v.Check(ok, "password", "must be between 8 and 72 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one symbol")
}

// validateCredentials only checks presence so a login never reveals the password rules.
func validateCredentials(v *common.Validator, username, password string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
}

func validateToken(v *common.Validator, token string) {
	v.Check(token != "", "token", "must be provided")
	v.Check(len(token) == tokenLength, "token", "invalid token")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
