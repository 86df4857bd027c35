package pages

import (
	"fmt"

	"go-bdjobs-e2e/internal/locator"
)

type homeLocators struct {
	searchBox        locator.Locator
	searchButton     locator.Locator
	loginLink        locator.Locator
	registrationLink locator.Locator
	categoryLinks    locator.Locator
	featuredJobs     locator.Locator
}

var homeLoc = homeLocators{
	searchBox:        locator.New("input[name='keyword']"),
	searchButton:     locator.New("button.search-btn"),
	loginLink:        locator.New("a.loginText"),
	registrationLink: locator.New("a.signupText"),
	categoryLinks:    locator.New(".category-name"),
	featuredJobs:     locator.New(".featured-jobs"),
}

// HomePage is the portal landing page.
type HomePage struct {
	BasePage
}

func NewHomePage(base BasePage) *HomePage {
	return &HomePage{BasePage: base}
}

func (p *HomePage) Navigate() error {
	if err := p.BasePage.Navigate(""); err != nil {
		return err
	}
	return p.WaitForLoad()
}

// SearchJob submits keyword from the hero search box.
func (p *HomePage) SearchJob(keyword string) error {
	if err := p.Fill(homeLoc.searchBox, keyword); err != nil {
		return err
	}
	if err := p.Click(homeLoc.searchButton); err != nil {
		return err
	}
	return p.WaitForLoad()
}

func (p *HomePage) ClickLogin() error {
	if err := p.Click(homeLoc.loginLink); err != nil {
		return err
	}
	return p.WaitForLoad()
}

func (p *HomePage) ClickRegistration() error {
	if err := p.Click(homeLoc.registrationLink); err != nil {
		return err
	}
	return p.WaitForLoad()
}

// SelectJobCategory opens the category whose link text contains category.
func (p *HomePage) SelectJobCategory(category string) error {
	loc, err := locator.HasText(homeLoc.categoryLinks, category)
	if err != nil {
		return fmt.Errorf("select job category: %w", err)
	}
	if err := p.Click(loc); err != nil {
		return err
	}
	return p.WaitForLoad()
}

func (p *HomePage) FeaturedJobsVisible() bool {
	return p.IsVisible(homeLoc.featuredJobs)
}

// CategoryNames lists the category links in page order.
func (p *HomePage) CategoryNames() ([]string, error) {
	return p.AllTextContents(homeLoc.categoryLinks)
}
