package emailtemplate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryColdOutreach    Category = "COLD_OUTREACH"
	CategoryFollowUp        Category = "FOLLOW_UP"
	CategoryThankYou        Category = "THANK_YOU"
	CategoryReferralRequest Category = "REFERRAL_REQUEST"
	CategoryNetworking      Category = "NETWORKING"
	CategoryOther           Category = "OTHER"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryColdOutreach, CategoryFollowUp, CategoryThankYou, CategoryReferralRequest, CategoryNetworking, CategoryOther:
		return true
	}
	return false
}

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown email template category %q", raw)
	}
	return c, nil
}

type Template struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Rendered struct {
	Subject      string   `json:"subject"`
	Body         string   `json:"body"`
	Placeholders []string `json:"placeholders"`
	Missing      []string `json:"missing"`
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// Render substitutes {{ key }} placeholders. Keys without a value stay in the
// output and are listed in Missing, sorted and de-duplicated.
func (t Template) Render(vars map[string]string) Rendered {
	missing := map[string]struct{}{}
	sub := func(s string) string {
		return placeholder.ReplaceAllStringFunc(s, func(m string) string {
			key := placeholder.FindStringSubmatch(m)[1]
			if v, ok := vars[key]; ok {
				return v
			}
			missing[key] = struct{}{}
			return m
		})
	}

	out := Rendered{
		Subject:      sub(t.Subject),
		Body:         sub(t.Body),
		Placeholders: t.Placeholders(),
		Missing:      make([]string, 0, len(missing)),
	}
	for k := range missing {
		out.Missing = append(out.Missing, k)
	}
	sort.Strings(out.Missing)
	return out
}

// Placeholders lists the distinct keys referenced by the template.
func (t Template) Placeholders() []string {
	seen := map[string]struct{}{}
	keys := []string{}
	for _, src := range []string{t.Subject, t.Body} {
		for _, m := range placeholder.FindAllStringSubmatch(src, -1) {
			if _, ok := seen[m[1]]; ok {
				continue
			}
			seen[m[1]] = struct{}{}
			keys = append(keys, m[1])
		}
	}
	sort.Strings(keys)
	return keys
}

type Filter struct {
	Category *Category
}
