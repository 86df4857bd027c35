package portal

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go-bdjobs-e2e/internal/textmatch"

	"github.com/google/uuid"
)

const PageSize = 10

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrJobNotFound        = errors.New("job not found")
)

type Job struct {
	ID               int
	Title            string
	Company          string
	Category         string
	Location         string
	Experience       string
	Salary           string
	Requirements     string
	Responsibilities string
	Featured         bool
	PostedAt         time.Time
}

type User struct {
	Name     string
	Email    string
	Password string
	Mobile   string
	Gender   string
}

// Query is a job search. Empty fields do not filter.
type Query struct {
	Keyword    string
	Category   string
	Location   string
	Experience string
	Sort       string
	Page       int
}

// Results is one page of a search.
type Results struct {
	Jobs       []Job
	Total      int
	Page       int
	TotalPages int
}

// Store is the in-memory state of the portal. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	jobs     []Job
	users    map[string]*User
	sessions map[string]string
	applied  map[string][]int
	saved    map[string][]int
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*User),
		sessions: make(map[string]string),
		applied:  make(map[string][]int),
		saved:    make(map[string][]int),
	}
}

func (s *Store) AddJob(job Job) Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.ID = len(s.jobs) + 1
	s.jobs = append(s.jobs, job)
	return job
}

func (s *Store) Job(id int) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 1 || id > len(s.jobs) {
		return Job{}, ErrJobNotFound
	}
	return s.jobs[id-1], nil
}

func (s *Store) Featured() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Job
	for _, j := range s.jobs {
		if j.Featured {
			out = append(out, j)
		}
	}
	return out
}

// Categories returns the distinct job categories in first-seen order.
func (s *Store) Categories() []string {
	return s.distinct(func(j Job) string { return j.Category })
}

func (s *Store) Locations() []string {
	return s.distinct(func(j Job) string { return j.Location })
}

func (s *Store) ExperienceLevels() []string {
	return s.distinct(func(j Job) string { return j.Experience })
}

func (s *Store) distinct(field func(Job) string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, j := range s.jobs {
		if v := field(j); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// Search filters by every set field of q. Adding a filter never grows the
// result set.
func (s *Store) Search(q Query) Results {
	s.mu.RLock()
	var matched []Job
	for _, j := range s.jobs {
		if q.matches(j) {
			matched = append(matched, j)
		}
	}
	s.mu.RUnlock()

	sortJobs(matched, q.Sort)

	res := Results{Total: len(matched), TotalPages: (len(matched) + PageSize - 1) / PageSize}
	res.Page = min(max(q.Page, 1), max(res.TotalPages, 1))
	start := (res.Page - 1) * PageSize
	if start < len(matched) {
		res.Jobs = matched[start:min(start+PageSize, len(matched))]
	}
	return res
}

func (q Query) matches(j Job) bool {
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		if !textmatch.Contains(j.Title+" "+j.Company+" "+j.Category, kw) {
			return false
		}
	}
	for _, f := range []struct{ want, got string }{
		{q.Category, j.Category},
		{q.Location, j.Location},
		{q.Experience, j.Experience},
	} {
		if f.want != "" && textmatch.Normalize(f.want) != textmatch.Normalize(f.got) {
			return false
		}
	}
	return true
}

func sortJobs(jobs []Job, by string) {
	switch by {
	case "oldest":
		slices.SortStableFunc(jobs, func(a, b Job) int { return a.PostedAt.Compare(b.PostedAt) })
	case "title":
		slices.SortStableFunc(jobs, func(a, b Job) int { return strings.Compare(a.Title, b.Title) })
	default:
		slices.SortStableFunc(jobs, func(a, b Job) int { return b.PostedAt.Compare(a.PostedAt) })
	}
}

// Register adds u. Emails are case-insensitive.
func (s *Store) Register(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(strings.TrimSpace(u.Email))
	if _, ok := s.users[key]; ok {
		return fmt.Errorf("%w: %s", ErrEmailTaken, u.Email)
	}
	u.Email = key
	s.users[key] = &u
	return nil
}

func (s *Store) EmailTaken(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Login checks the credentials and opens a session, returning its token.
func (s *Store) Login(email, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok || u.Password != password {
		return "", ErrInvalidCredentials
	}
	token := uuid.NewString()
	s.sessions[token] = u.Email
	return token, nil
}

func (s *Store) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// UserBySession returns a copy of the signed-in user.
func (s *Store) UserBySession(token string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email, ok := s.sessions[token]
	if !ok {
		return User{}, false
	}
	u, ok := s.users[email]
	if !ok {
		return User{}, false
	}
	return *u, true
}

func (s *Store) UpdateProfile(email, name, mobile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return fmt.Errorf("unknown user %s", email)
	}
	if name != "" {
		u.Name = name
	}
	if mobile != "" {
		u.Mobile = mobile
	}
	return nil
}

func (s *Store) Apply(email string, jobID int) error {
	return s.track(s.applied, email, jobID)
}

func (s *Store) Save(email string, jobID int) error {
	return s.track(s.saved, email, jobID)
}

func (s *Store) track(list map[string][]int, email string, jobID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if jobID < 1 || jobID > len(s.jobs) {
		return ErrJobNotFound
	}
	if !slices.Contains(list[email], jobID) {
		list[email] = append(list[email], jobID)
	}
	return nil
}

func (s *Store) AppliedJobs(email string) []Job {
	return s.lookup(s.applied, email)
}

func (s *Store) SavedJobs(email string) []Job {
	return s.lookup(s.saved, email)
}

func (s *Store) lookup(list map[string][]int, email string) []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Job, 0, len(list[email]))
	for _, id := range list[email] {
		out = append(out, s.jobs[id-1])
	}
	return out
}
