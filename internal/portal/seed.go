package portal

import (
	"fmt"
	"time"
)

type jobSeed struct {
	title, company, category, salary string
}

var jobSeeds = []jobSeed{
	{"Software Engineer", "BrainStation 23", "IT/Telecommunication", "Tk. 60,000 - 90,000"},
	{"Senior Software Engineer", "Kaz Software", "IT/Telecommunication", "Tk. 1,20,000 - 1,60,000"},
	{"Project Manager", "BRAC", "NGO/Development", ""},
	{"Marketing Executive", "Square Group", "Marketing/Sales", "Tk. 30,000 - 40,000"},
	{"HR Manager", "Pran-RFL Group", "Engineering", "Negotiable"},
	{"Data Analyst", "bKash Limited", "Bank/Financial Institution", ""},
	{"Relationship Manager", "BRAC Bank", "Bank/Financial Institution", "Tk. 45,000 - 70,000"},
	{"Civil Engineer", "Concord Group", "Engineering", "Tk. 40,000 - 55,000"},
	{"Field Officer", "Save the Children", "NGO/Development", ""},
	{"Sales Executive", "Walton", "Marketing/Sales", "Tk. 20,000 - 30,000"},
	{"QA Engineer", "Therap BD", "IT/Telecommunication", "Tk. 50,000 - 80,000"},
	{"Network Engineer", "Grameenphone", "IT/Telecommunication", ""},
}

var (
	seedLocations  = []string{"Dhaka", "Chittagong", "Sylhet", "Rajshahi", "Khulna"}
	seedExperience = []string{"Fresher", "1-3 Years", "3-5 Years", "5+ Years"}
)

// SeededUsers are the accounts every fresh portal knows.
var SeededUsers = []User{
	{Name: "Test User", Email: "test@example.com", Password: "Password123!", Mobile: "01711111111", Gender: "M"},
	{Name: "New User", Email: "newuser@example.com", Password: "NewUser123!", Mobile: "01700000000", Gender: "F"},
}

// NewSeededStore returns a store with three rounds of the job seeds spread
// over every location and experience level, the seeded users, and a few
// applied and saved jobs for the first user.
func NewSeededStore() *Store {
	s := NewStore()
	epoch := time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)

	n := 0
	for round := range 3 {
		for i, js := range jobSeeds {
			s.AddJob(Job{
				Title:            js.title,
				Company:          js.company,
				Category:         js.category,
				Location:         seedLocations[(i+round)%len(seedLocations)],
				Experience:       seedExperience[(i+round)%len(seedExperience)],
				Salary:           js.salary,
				Requirements:     fmt.Sprintf("Bachelor's degree. %s experience in a similar role.", seedExperience[(i+round)%len(seedExperience)]),
				Responsibilities: fmt.Sprintf("Deliver the day-to-day work of a %s at %s.", js.title, js.company),
				Featured:         round == 0 && i < 4,
				PostedAt:         epoch.Add(-time.Duration(n) * time.Hour),
			})
			n++
		}
	}

	for _, u := range SeededUsers {
		_ = s.Register(u)
	}
	_ = s.Apply(SeededUsers[0].Email, 1)
	_ = s.Apply(SeededUsers[0].Email, 4)
	_ = s.Save(SeededUsers[0].Email, 2)
	return s
}
