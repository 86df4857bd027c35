package pages

import (
	"go-bdjobs-e2e/internal/locator"
)

type detailsLocators struct {
	jobTitle         locator.Locator
	companyName      locator.Locator
	applyButton      locator.Locator
	requirements     locator.Locator
	responsibilities locator.Locator
	salaryInfo       locator.Locator
}

var detailsLoc = detailsLocators{
	jobTitle:         locator.New(".job-title"),
	companyName:      locator.New(".company-name"),
	applyButton:      locator.MustHasText(locator.New("button"), "Apply Now"),
	requirements:     locator.New(".job-requirements"),
	responsibilities: locator.New(".job-responsibilities"),
	salaryInfo:       locator.New(".salary-info"),
}

type JobDetailsPage struct {
	BasePage
}

func NewJobDetailsPage(base BasePage) *JobDetailsPage {
	return &JobDetailsPage{BasePage: base}
}

func (p *JobDetailsPage) JobTitle() (string, error) {
	return p.TextContent(detailsLoc.jobTitle)
}

func (p *JobDetailsPage) CompanyName() (string, error) {
	return p.TextContent(detailsLoc.companyName)
}

func (p *JobDetailsPage) Requirements() (string, error) {
	return p.TextContent(detailsLoc.requirements)
}

func (p *JobDetailsPage) Responsibilities() (string, error) {
	return p.TextContent(detailsLoc.responsibilities)
}

func (p *JobDetailsPage) ClickApply() error {
	if err := p.Click(detailsLoc.applyButton); err != nil {
		return err
	}
	return p.WaitForLoad()
}

func (p *JobDetailsPage) SalaryVisible() bool {
	return p.IsVisible(detailsLoc.salaryInfo)
}
