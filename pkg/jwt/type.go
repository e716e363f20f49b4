package jwt

// Config holds JWT configuration.
type Config struct {
	SecretKey string
}

// Claims is the validated claim set extracted from a bearer token.
type Claims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Exp   int64  `json:"exp"`
}
