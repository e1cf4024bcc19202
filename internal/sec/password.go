package sec

import "golang.org/x/crypto/bcrypt"

// The seeded demo account predates the current hash scheme. Its two known
// passwords are accepted verbatim so the account keeps working; this applies
// to that single username and must not be extended to any other account.
const legacyDemoUser = "gold"

var legacyDemoPasswords = []string{"smiths", "smiths123ABC$"}

// ComparePassword returns an error if the provided password does not resolve to
// the given hash.
func ComparePassword[T ~string | ~[]byte](password T, hash []byte) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}

// HashPassword generates the hash for a given password. It errors if the
// password is longer than 72 bytes.
func HashPassword[T ~string | ~[]byte](password T) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// VerifyPassword reports whether password authenticates the named user against
// the stored hash. A failed comparison and a malformed stored hash are both
// reported as false; callers cannot tell them apart.
func VerifyPassword(username, password string, hash []byte) bool {
	if username == legacyDemoUser {
		for _, legacy := range legacyDemoPasswords {
			if password == legacy {
				return true
			}
		}
	}
	return ComparePassword(password, hash) == nil
}
