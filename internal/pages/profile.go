package pages

import (
	"go-bdjobs-e2e/internal/locator"
)

// ProfilePath is where the portal sends a signed-in user.
const ProfilePath = "my-bdjobs/my-profile"

type profileLocators struct {
	profileName       locator.Locator
	editProfileButton locator.Locator
	profileSections   locator.Locator
	downloadResume    locator.Locator
	appliedJobsTab    locator.Locator
	savedJobsTab      locator.Locator
	logoutButton      locator.Locator
}

var profileLoc = profileLocators{
	profileName:       locator.New(".profile-name"),
	editProfileButton: locator.MustHasText(locator.New("button"), "Edit Profile"),
	profileSections:   locator.New(".profile-section"),
	downloadResume:    locator.MustHasText(locator.New("button"), "Download Resume"),
	appliedJobsTab:    locator.MustHasText(locator.New("a"), "Applied Jobs"),
	savedJobsTab:      locator.MustHasText(locator.New("a"), "Saved Jobs"),
	logoutButton:      locator.MustHasText(locator.New("button"), "Logout"),
}

type ProfilePage struct {
	BasePage
}

func NewProfilePage(base BasePage) *ProfilePage {
	return &ProfilePage{BasePage: base}
}

func (p *ProfilePage) Navigate() error {
	if err := p.BasePage.Navigate(ProfilePath); err != nil {
		return err
	}
	return p.WaitForLoad()
}

func (p *ProfilePage) ProfileName() (string, error) {
	return p.TextContent(profileLoc.profileName)
}

func (p *ProfilePage) ProfileSectionCount() (int, error) {
	return p.Count(profileLoc.profileSections)
}

func (p *ProfilePage) ClickEditProfile() error {
	return p.clickAndWait(profileLoc.editProfileButton)
}

func (p *ProfilePage) ClickDownloadResume() error {
	return p.Click(profileLoc.downloadResume)
}

func (p *ProfilePage) ViewAppliedJobs() error {
	return p.clickAndWait(profileLoc.appliedJobsTab)
}

func (p *ProfilePage) ViewSavedJobs() error {
	return p.clickAndWait(profileLoc.savedJobsTab)
}

func (p *ProfilePage) Logout() error {
	return p.clickAndWait(profileLoc.logoutButton)
}

func (p *ProfilePage) clickAndWait(loc locator.Locator) error {
	if err := p.Click(loc); err != nil {
		return err
	}
	return p.WaitForLoad()
}
