package pages

import (
	"go-bdjobs-e2e/internal/locator"
)

type loginLocators struct {
	emailInput     locator.Locator
	passwordInput  locator.Locator
	loginButton    locator.Locator
	errorMessage   locator.Locator
	forgotPassword locator.Locator
}

var loginLoc = loginLocators{
	emailInput:     locator.New("input[name='email']"),
	passwordInput:  locator.New("input[name='password']"),
	loginButton:    locator.New("button[type='submit']"),
	errorMessage:   locator.New(".error-message"),
	forgotPassword: locator.MustHasText(locator.New("a"), "Forgot Password"),
}

type LoginPage struct {
	BasePage
}

func NewLoginPage(base BasePage) *LoginPage {
	return &LoginPage{BasePage: base}
}

func (p *LoginPage) Navigate() error {
	if err := p.BasePage.Navigate("login"); err != nil {
		return err
	}
	return p.WaitForLoad()
}

func (p *LoginPage) Login(email, password string) error {
	if err := p.Fill(loginLoc.emailInput, email); err != nil {
		return err
	}
	if err := p.Fill(loginLoc.passwordInput, password); err != nil {
		return err
	}
	if err := p.Click(loginLoc.loginButton); err != nil {
		return err
	}
	return p.WaitForLoad()
}

// ErrorMessage reads the login error banner. ok is false when no banner is
// shown, in which case the message is empty and err is nil.
func (p *LoginPage) ErrorMessage() (msg string, ok bool, err error) {
	if !p.IsVisible(loginLoc.errorMessage) {
		return "", false, nil
	}
	msg, err = p.TextContent(loginLoc.errorMessage)
	if err != nil {
		return "", false, err
	}
	return msg, true, nil
}

func (p *LoginPage) ClickForgotPassword() error {
	if err := p.Click(loginLoc.forgotPassword); err != nil {
		return err
	}
	return p.WaitForLoad()
}
