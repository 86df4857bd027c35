package pages

import (
	"fmt"
	"strconv"

	"go-bdjobs-e2e/internal/locator"
	"go-bdjobs-e2e/internal/textmatch"
)

type searchLocators struct {
	resultsContainer locator.Locator
	jobTitles        locator.Locator
	filterPanel      locator.Locator
	categoryFilter   locator.Locator
	locationFilter   locator.Locator
	experienceFilter locator.Locator
	sortDropdown     locator.Locator
	pagination       locator.Locator
	totalJobsCount   locator.Locator
}

var searchLoc = searchLocators{
	resultsContainer: locator.New(".search-results-container"),
	jobTitles:        locator.New(".job-title-text"),
	filterPanel:      locator.New(".filter-panel"),
	categoryFilter:   locator.New(".category-filter"),
	locationFilter:   locator.New(".location-filter"),
	experienceFilter: locator.New(".experience-filter"),
	sortDropdown:     locator.New("select.sort-options"),
	pagination:       locator.New(".pagination"),
	totalJobsCount:   locator.New(".total-jobs-count"),
}

// JobSearchPage is the search results listing with its filter panel.
type JobSearchPage struct {
	BasePage
}

func NewJobSearchPage(base BasePage) *JobSearchPage {
	return &JobSearchPage{BasePage: base}
}

// Navigate opens the unfiltered listing.
func (p *JobSearchPage) Navigate() error {
	if err := p.BasePage.Navigate("jobs"); err != nil {
		return err
	}
	return p.WaitForLoad()
}

// SearchResultsCount parses the total shown in the results header, e.g.
// "1,234 jobs found" is 1234. Text without a number counts as 0.
func (p *JobSearchPage) SearchResultsCount() (int, error) {
	text, err := p.TextContent(searchLoc.totalJobsCount)
	if err != nil {
		return 0, err
	}
	n, ok, err := textmatch.FirstInt(text)
	if err != nil {
		return 0, fmt.Errorf("search results count: %w", err)
	}
	if !ok {
		return 0, nil
	}
	return n, nil
}

func (p *JobSearchPage) FilterByCategory(category string) error {
	return p.applyFilter(searchLoc.categoryFilter, category)
}

func (p *JobSearchPage) FilterByLocation(location string) error {
	return p.applyFilter(searchLoc.locationFilter, location)
}

func (p *JobSearchPage) FilterByExperience(experience string) error {
	return p.applyFilter(searchLoc.experienceFilter, experience)
}

func (p *JobSearchPage) applyFilter(group locator.Locator, value string) error {
	loc, err := locator.HasText(locator.Within(group, "label"), value)
	if err != nil {
		return fmt.Errorf("filter by %q: %w", value, err)
	}
	if err := p.Click(loc); err != nil {
		return err
	}
	return p.WaitForLoad()
}

// SortBy selects option in the sort dropdown by value or label.
func (p *JobSearchPage) SortBy(option string) error {
	if err := p.SelectOption(searchLoc.sortDropdown, option); err != nil {
		return err
	}
	return p.WaitForLoad()
}

// ClickJobByIndex opens the index-th (0-based) job of the current page.
func (p *JobSearchPage) ClickJobByIndex(index int) error {
	loc, err := locator.At(searchLoc.jobTitles, index)
	if err != nil {
		return fmt.Errorf("click job: %w", err)
	}
	if err := p.Click(loc); err != nil {
		return err
	}
	return p.WaitForLoad()
}

// NavigateToPage clicks the pagination link labelled pageNumber.
func (p *JobSearchPage) NavigateToPage(pageNumber int) error {
	if pageNumber < 1 {
		return fmt.Errorf("navigate to page: page number must be positive, got %d", pageNumber)
	}
	loc, err := locator.TextIs(locator.Within(searchLoc.pagination, "a"), strconv.Itoa(pageNumber))
	if err != nil {
		return fmt.Errorf("navigate to page: %w", err)
	}
	if err := p.Click(loc); err != nil {
		return err
	}
	return p.WaitForLoad()
}

// JobTitles lists the job titles on the current page in display order.
func (p *JobSearchPage) JobTitles() ([]string, error) {
	return p.AllTextContents(searchLoc.jobTitles)
}

func (p *JobSearchPage) ResultsVisible() bool {
	return p.IsVisible(searchLoc.resultsContainer)
}

func (p *JobSearchPage) FilterPanelVisible() bool {
	return p.IsVisible(searchLoc.filterPanel)
}
