package portal

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var mobileRegex = regexp.MustCompile(`^01[3-9]\d{8}$`)

var countPrinter = message.NewPrinter(language.English)

// Registration validation messages, shown as .error-message paragraphs.
const (
	msgNameRequired  = "Full name is required"
	msgEmailInvalid  = "Please enter a valid email address"
	msgEmailExists   = "An account with this email already exists"
	msgPasswordShort = "Password must be at least 8 characters"
	msgPasswordMatch = "Password and confirm password do not match"
	msgMobileInvalid = "Please enter a valid mobile number"
	msgGenderMissing = "Please select your gender"
	msgTermsRequired = "You must accept the terms and conditions"
	msgLoginFailed   = "Invalid email or password"
)

type handlers struct {
	store *Store
	log   *zap.Logger
}

type link struct {
	Label  string
	URL    string
	Active bool
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

type sortOption struct {
	Value    string
	Label    string
	Selected bool
}

func currentUser(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(sessionCookie); err == nil {
			if u, ok := store.UserBySession(token); ok {
				c.Set("user", &u)
			}
		}
		c.Next()
	}
}

func requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userFrom(c) == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func userFrom(c *gin.Context) *User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	u, _ := v.(*User)
	return u
}

func (h *handlers) render(c *gin.Context, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["User"] = userFrom(c)
	c.HTML(http.StatusOK, name, data)
}

func (h *handlers) home(c *gin.Context) {
	var cats []link
	for _, cat := range h.store.Categories() {
		cats = append(cats, link{Label: cat, URL: "/jobs?" + url.Values{"category": {cat}}.Encode()})
	}
	h.render(c, "home.html", "Home", gin.H{
		"Categories": cats,
		"Featured":   h.store.Featured(),
	})
}

func (h *handlers) loginForm(c *gin.Context) {
	h.render(c, "login.html", "Sign in", nil)
}

func (h *handlers) login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	token, err := h.store.Login(email, c.PostForm("password"))
	if err != nil {
		h.log.Info("login rejected", zap.String("email", email))
		h.render(c, "login.html", "Sign in", gin.H{"Error": msgLoginFailed, "Email": email})
		return
	}
	h.startSession(c, token)
	c.Redirect(http.StatusSeeOther, "/my-bdjobs/my-profile")
}

func (h *handlers) startSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
}

func (h *handlers) logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		h.store.Logout(token)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handlers) forgotPasswordForm(c *gin.Context) {
	h.render(c, "forgot_password.html", "Forgot Password", nil)
}

func (h *handlers) forgotPassword(c *gin.Context) {
	h.render(c, "forgot_password.html", "Forgot Password", gin.H{
		"Sent":  true,
		"Email": c.PostForm("email"),
	})
}

func (h *handlers) registerForm(c *gin.Context) {
	h.render(c, "register.html", "Create Account", gin.H{"Form": User{}})
}

func (h *handlers) register(c *gin.Context) {
	form := User{
		Name:     strings.TrimSpace(c.PostForm("name")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
		Mobile:   strings.TrimSpace(c.PostForm("mobile")),
		Gender:   c.PostForm("gender"),
	}
	errs := h.validateRegistration(form, c.PostForm("confirmPassword"), c.PostForm("terms") != "")

	if len(errs) == 0 {
		if err := h.store.Register(form); err != nil {
			if !errors.Is(err, ErrEmailTaken) {
				c.AbortWithError(http.StatusInternalServerError, err)
				return
			}
			errs = append(errs, msgEmailExists)
		}
	}
	if len(errs) > 0 {
		h.render(c, "register.html", "Create Account", gin.H{"Form": form, "Errors": errs})
		return
	}

	token, err := h.store.Login(form.Email, form.Password)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	h.log.Info("user registered", zap.String("email", form.Email))
	h.startSession(c, token)
	c.Redirect(http.StatusSeeOther, "/my-bdjobs/my-profile")
}

// validateRegistration returns the form errors in the order the fields appear.
func (h *handlers) validateRegistration(form User, confirm string, terms bool) []string {
	var errs []string
	if form.Name == "" {
		errs = append(errs, msgNameRequired)
	}
	if _, err := mail.ParseAddress(form.Email); err != nil {
		errs = append(errs, msgEmailInvalid)
	} else if h.store.EmailTaken(form.Email) {
		errs = append(errs, msgEmailExists)
	}
	if len(form.Password) < 8 {
		errs = append(errs, msgPasswordShort)
	}
	if form.Password != confirm {
		errs = append(errs, msgPasswordMatch)
	}
	if !mobileRegex.MatchString(form.Mobile) {
		errs = append(errs, msgMobileInvalid)
	}
	switch form.Gender {
	case "M", "F", "O":
	default:
		errs = append(errs, msgGenderMissing)
	}
	if !terms {
		errs = append(errs, msgTermsRequired)
	}
	return errs
}

func (h *handlers) jobs(c *gin.Context) {
	params := c.Request.URL.Query()
	page, _ := strconv.Atoi(params.Get("page"))
	q := Query{
		Keyword:    params.Get("keyword"),
		Category:   params.Get("category"),
		Location:   params.Get("location"),
		Experience: params.Get("experience"),
		Sort:       params.Get("sort"),
		Page:       page,
	}
	res := h.store.Search(q)

	hidden := map[string]string{}
	for _, key := range []string{"keyword", "category", "location", "experience"} {
		if v := params.Get(key); v != "" {
			hidden[key] = v
		}
	}

	var pages []pageLink
	for n := 1; n <= res.TotalPages; n++ {
		pages = append(pages, pageLink{Number: n, URL: withParam(params, "page", strconv.Itoa(n)), Current: n == res.Page})
	}

	var sorts []sortOption
	for _, o := range []sortOption{{Value: "newest", Label: "Newest first"}, {Value: "oldest", Label: "Oldest first"}, {Value: "title", Label: "Title (A-Z)"}} {
		o.Selected = o.Value == q.Sort
		sorts = append(sorts, o)
	}

	h.render(c, "jobs.html", "Jobs", gin.H{
		"Jobs":              res.Jobs,
		"TotalText":         countPrinter.Sprintf("%d", res.Total),
		"CategoryFilters":   filterLinks(params, "category", h.store.Categories()),
		"LocationFilters":   filterLinks(params, "location", h.store.Locations()),
		"ExperienceFilters": filterLinks(params, "experience", h.store.ExperienceLevels()),
		"Hidden":            hidden,
		"SortOptions":       sorts,
		"Pages":             pages,
	})
}

// filterLinks builds one link per value that sets key while keeping every
// other parameter. The active value links back to the unfiltered listing.
func filterLinks(params url.Values, key string, values []string) []link {
	current := params.Get(key)
	out := make([]link, 0, len(values))
	for _, v := range values {
		l := link{Label: v, Active: v == current}
		if l.Active {
			l.URL = withParam(params, key, "")
		} else {
			l.URL = withParam(params, key, v)
		}
		out = append(out, l)
	}
	return out
}

// withParam copies params with key set to value (removed when empty). The
// page number is reset unless it is the key being set.
func withParam(params url.Values, key, value string) string {
	next := url.Values{}
	for k, vs := range params {
		next[k] = append([]string(nil), vs...)
	}
	if key != "page" {
		next.Del("page")
	}
	if value == "" {
		next.Del(key)
	} else {
		next.Set(key, value)
	}
	if len(next) == 0 {
		return "/jobs"
	}
	return "/jobs?" + next.Encode()
}

func (h *handlers) jobFromParam(c *gin.Context) (Job, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "job not found")
		return Job{}, false
	}
	job, err := h.store.Job(id)
	if err != nil {
		c.String(http.StatusNotFound, "job not found")
		return Job{}, false
	}
	return job, true
}

func (h *handlers) job(c *gin.Context) {
	job, ok := h.jobFromParam(c)
	if !ok {
		return
	}
	h.render(c, "job.html", job.Title, gin.H{"Job": job})
}

func (h *handlers) apply(c *gin.Context) {
	job, ok := h.jobFromParam(c)
	if !ok {
		return
	}
	u := userFrom(c)
	if err := h.store.Apply(u.Email, job.ID); err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	h.log.Info("job applied", zap.String("email", u.Email), zap.Int("job_id", job.ID))
	c.Redirect(http.StatusSeeOther, "/my-bdjobs/applied-jobs")
}

func (h *handlers) save(c *gin.Context) {
	job, ok := h.jobFromParam(c)
	if !ok {
		return
	}
	u := userFrom(c)
	if err := h.store.Save(u.Email, job.ID); err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/my-bdjobs/saved-jobs")
}

var genderNames = map[string]string{"M": "Male", "F": "Female", "O": "Other"}

func (h *handlers) profile(c *gin.Context) {
	u := userFrom(c)
	h.render(c, "profile.html", "My Profile", gin.H{
		"Gender":       genderNames[u.Gender],
		"AppliedCount": len(h.store.AppliedJobs(u.Email)),
		"SavedCount":   len(h.store.SavedJobs(u.Email)),
	})
}

func (h *handlers) editProfileForm(c *gin.Context) {
	h.render(c, "edit_profile.html", "Edit Profile", nil)
}

func (h *handlers) editProfile(c *gin.Context) {
	u := userFrom(c)
	if err := h.store.UpdateProfile(u.Email, strings.TrimSpace(c.PostForm("name")), strings.TrimSpace(c.PostForm("mobile"))); err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/my-bdjobs/my-profile")
}

func (h *handlers) resume(c *gin.Context) {
	u := userFrom(c)
	c.Header("Content-Disposition", `attachment; filename="resume.txt"`)
	c.String(http.StatusOK, fmt.Sprintf("%s\n%s\n%s\n", u.Name, u.Email, u.Mobile))
}

func (h *handlers) appliedJobs(c *gin.Context) {
	u := userFrom(c)
	h.render(c, "job_history.html", "Applied Jobs", gin.H{
		"Section": "applied-jobs",
		"Jobs":    h.store.AppliedJobs(u.Email),
	})
}

func (h *handlers) savedJobs(c *gin.Context) {
	u := userFrom(c)
	h.render(c, "job_history.html", "Saved Jobs", gin.H{
		"Section": "saved-jobs",
		"Jobs":    h.store.SavedJobs(u.Email),
	})
}
