package handlers

import (
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var legalPage = template.Must(template.New("legal").Parse(`<!DOCTYPE html>
<html><head><title>{{.Title}} - {{.AppName}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>
</head><body>
<h1>{{.Title}}</h1>
<p>Last updated: October 2026</p>
{{range .Sections}}<h2>{{.Heading}}</h2>
<p>{{.Body}}</p>
{{end}}</body></html>`))

type legalSection struct {
	Heading string
	Body    string
}

type LegalHandler struct {
	appName string
}

func NewLegalHandler(appName string) *LegalHandler {
	return &LegalHandler{appName: appName}
}

func (h *LegalHandler) render(c *fiber.Ctx, title string, sections []legalSection) error {
	var sb strings.Builder
	err := legalPage.Execute(&sb, struct {
		Title    string
		AppName  string
		Sections []legalSection
	}{title, h.appName, sections})
	if err != nil {
		return err
	}
	return c.Type("html").SendString(sb.String())
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return h.render(c, "Privacy Policy", []legalSection{
		{"Information We Collect", "We receive your name, email address and profile picture from Google when you sign in. You may add a hostel and a phone number to your profile."},
		{"How We Use Your Information", "Item posts and their photos are shown to other users according to the visibility you choose. Your phone number and email are only shared with the owner of a found item after they approve your claim."},
		{"Data Storage", "Item photos are stored in private object storage and served through short-lived signed links. We do not sell your personal information."},
		{"Moderation", "Reports you file are visible to moderators. Items that collect several reports are hidden until a moderator reviews them."},
	})
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return h.render(c, "Terms of Service", []legalSection{
		{"Acceptable Use", "Only post items you genuinely lost or found. Do not claim items that are not yours."},
		{"Claims", "Claims are reviewed by the person who posted the found item. An approved claim does not transfer the post; arrange the hand-over directly."},
		{"Enforcement", "Moderators may hide or remove posts and may warn or suspend accounts that break these terms."},
	})
}
