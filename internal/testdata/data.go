// Package testdata holds the fixed accounts and search values the scenarios
// use, plus small generators for fresh registrations.
package testdata

type Credentials struct {
	Email    string
	Password string
}

// Registration is one sign-up form submission.
type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Mobile          string `json:"mobile"`
	Gender          string `json:"gender"`
	AcceptTerms     bool   `json:"accept_terms"`
}

var (
	ValidUser   = Credentials{Email: "test@example.com", Password: "Password123!"}
	InvalidUser = Credentials{Email: "invalid@example.com", Password: "wrongpassword"}
)

// ExistingEmail is already registered on the portal.
const ExistingEmail = "newuser@example.com"

var (
	SearchTerms   = []string{"Software Engineer", "Project Manager", "Marketing Executive", "HR Manager", "Data Analyst"}
	Locations     = []string{"Dhaka", "Chittagong", "Sylhet", "Rajshahi", "Khulna"}
	JobCategories = []string{"IT/Telecommunication", "Bank/Financial Institution", "Marketing/Sales", "NGO/Development", "Engineering"}
)

// NewUser returns the canonical sign-up record. Callers override Email (and
// whatever else the scenario needs) on the returned copy.
func NewUser() Registration {
	return Registration{
		Name:            "Test User",
		Email:           ExistingEmail,
		Password:        "NewUser123!",
		ConfirmPassword: "NewUser123!",
		Mobile:          "01700000000",
		Gender:          "M",
		AcceptTerms:     true,
	}
}

// WithCredentials overrides the configured valid account when both values are
// set.
func WithCredentials(email, password string) Credentials {
	if email == "" || password == "" {
		return ValidUser
	}
	return Credentials{Email: email, Password: password}
}
