package pages

import (
	"go-bdjobs-e2e/internal/locator"
	"go-bdjobs-e2e/internal/testdata"
)

type registrationLocators struct {
	nameInput            locator.Locator
	emailInput           locator.Locator
	passwordInput        locator.Locator
	confirmPasswordInput locator.Locator
	mobileInput          locator.Locator
	genderSelect         locator.Locator
	registerButton       locator.Locator
	termsCheckbox        locator.Locator
	errorMessages        locator.Locator
}

var registrationLoc = registrationLocators{
	nameInput:            locator.New("input[name='name']"),
	emailInput:           locator.New("input[name='email']"),
	passwordInput:        locator.New("input[name='password']"),
	confirmPasswordInput: locator.New("input[name='confirmPassword']"),
	mobileInput:          locator.New("input[name='mobile']"),
	genderSelect:         locator.New("select[name='gender']"),
	registerButton:       locator.New("button[type='submit']"),
	termsCheckbox:        locator.New("input[type='checkbox'][name='terms']"),
	errorMessages:        locator.New(".error-message"),
}

type RegistrationPage struct {
	BasePage
}

func NewRegistrationPage(base BasePage) *RegistrationPage {
	return &RegistrationPage{BasePage: base}
}

func (p *RegistrationPage) Navigate() error {
	if err := p.BasePage.Navigate("register"); err != nil {
		return err
	}
	return p.WaitForLoad()
}

// RegisterUser fills and submits the sign-up form. The terms box is only
// ticked when reg.AcceptTerms is set.
func (p *RegistrationPage) RegisterUser(reg testdata.Registration) error {
	fields := []struct {
		loc   locator.Locator
		value string
	}{
		{registrationLoc.nameInput, reg.Name},
		{registrationLoc.emailInput, reg.Email},
		{registrationLoc.passwordInput, reg.Password},
		{registrationLoc.confirmPasswordInput, reg.ConfirmPassword},
		{registrationLoc.mobileInput, reg.Mobile},
	}
	for _, f := range fields {
		if err := p.Fill(f.loc, f.value); err != nil {
			return err
		}
	}
	if err := p.SelectOption(registrationLoc.genderSelect, reg.Gender); err != nil {
		return err
	}
	if reg.AcceptTerms {
		if err := p.Check(registrationLoc.termsCheckbox); err != nil {
			return err
		}
	}
	if err := p.Click(registrationLoc.registerButton); err != nil {
		return err
	}
	return p.WaitForLoad()
}

// ErrorMessages returns every validation message in DOM order.
func (p *RegistrationPage) ErrorMessages() ([]string, error) {
	msgs, err := p.AllTextContents(registrationLoc.errorMessages)
	if err != nil {
		return nil, err
	}
	out := msgs[:0]
	for _, m := range msgs {
		if m != "" {
			out = append(out, m)
		}
	}
	return out, nil
}
