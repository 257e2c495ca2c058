package routes

import (
	"github.com/gofiber/fiber/v3"
)

type registrar interface {
	RegisterRoutes(fiber.Router)
}

func RegisterV1(r fiber.Router, h Handlers, protect fiber.Handler) {
	if r == nil {
		return
	}

	if h.Health != nil {
		h.Health.RegisterRoutes(r)
	}
	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	protected := r
	if protect != nil {
		protected = r.Group("", protect)
	}

	groups := []struct {
		prefix string
		h      registrar
		set    bool
	}{
		{"/companies", h.Companies, h.Companies != nil},
		{"/applications", h.Applications, h.Applications != nil},
		{"/contacts", h.Contacts, h.Contacts != nil},
		{"/events", h.Events, h.Events != nil},
		{"/reminders", h.Reminders, h.Reminders != nil},
		{"/learning", h.Learning, h.Learning != nil},
		{"/resources", h.Resources, h.Resources != nil},
		{"/resumes", h.Resumes, h.Resumes != nil},
		{"/email-templates", h.EmailTemplates, h.EmailTemplates != nil},
		{"/analytics", h.Analytics, h.Analytics != nil},
		{"/calendar", h.Calendar, h.Calendar != nil},
	}
	for _, g := range groups {
		if !g.set {
			continue
		}
		g.h.RegisterRoutes(protected.Group(g.prefix))
	}
}
