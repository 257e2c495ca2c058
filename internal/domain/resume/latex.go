package resume

import (
	"sort"
	"strings"
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// urlEscaper escapes % and # inside hyperref's \url and percent-encodes
// characters that would unbalance its argument.
var urlEscaper = strings.NewReplacer(
	`%`, `\%`,
	`#`, `\#`,
	`{`, `\%7B`,
	`}`, `\%7D`,
	`\`, `\%5C`,
	` `, `\%20`,
)

// EscapeLaTeX escapes characters with special meaning in LaTeX body text.
func EscapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}

const preamble = `\documentclass[letterpaper,11pt]{article}
\usepackage[empty]{fullpage}
\usepackage[hidelinks]{hyperref}
\usepackage{enumitem}
\usepackage{titlesec}
\titleformat{\section}{\large\bfseries}{}{0em}{}[\titlerule]
\setlist[itemize]{leftmargin=*,noitemsep}
\begin{document}
`

// RenderLaTeX produces a complete document. Plain fields are escaped, *Latex
// fields are copied verbatim and empty sections are left out.
func RenderLaTeX(f Full) string {
	var b strings.Builder
	b.WriteString(preamble)

	if h := strings.TrimSpace(f.HeaderLatex); h != "" {
		b.WriteString(h)
		b.WriteString("\n")
	}

	exps := append([]Experience(nil), f.Experiences...)
	sort.SliceStable(exps, func(i, j int) bool { return exps[i].SortOrder < exps[j].SortOrder })
	if len(exps) > 0 {
		b.WriteString("\n\\section{Experience}\n")
		for _, e := range exps {
			b.WriteString("\\noindent\\textbf{" + EscapeLaTeX(e.Company) + "}")
			if e.Location != "" {
				b.WriteString(" \\hfill " + EscapeLaTeX(e.Location))
			}
			b.WriteString("\\\\\n")
			b.WriteString("\\textit{" + EscapeLaTeX(e.Role) + "}")
			if span := dateRange(e.StartDate, e.EndDate); span != "" {
				b.WriteString(" \\hfill " + span)
			}
			b.WriteString("\n")
			writeBlock(&b, e.BulletsLatex)
		}
	}

	projs := append([]Project(nil), f.Projects...)
	sort.SliceStable(projs, func(i, j int) bool { return projs[i].SortOrder < projs[j].SortOrder })
	if len(projs) > 0 {
		b.WriteString("\n\\section{Projects}\n")
		for _, p := range projs {
			b.WriteString("\\noindent\\textbf{" + EscapeLaTeX(p.Name) + "}")
			if p.TechStack != "" {
				b.WriteString(" $|$ \\textit{" + EscapeLaTeX(p.TechStack) + "}")
			}
			if p.Link != "" {
				b.WriteString(" \\hfill \\url{" + urlEscaper.Replace(p.Link) + "}")
			}
			b.WriteString("\n")
			writeBlock(&b, p.BulletsLatex)
		}
	}

	skills := append([]SkillCategory(nil), f.Skills...)
	sort.SliceStable(skills, func(i, j int) bool { return skills[i].SortOrder < skills[j].SortOrder })
	if len(skills) > 0 {
		b.WriteString("\n\\section{Skills}\n")
		b.WriteString("\\begin{itemize}\n")
		for _, s := range skills {
			b.WriteString("  \\item \\textbf{" + EscapeLaTeX(s.Name) + "}: " + EscapeLaTeX(s.Skills) + "\n")
		}
		b.WriteString("\\end{itemize}\n")
	}

	edu := append([]Education(nil), f.Education...)
	sort.SliceStable(edu, func(i, j int) bool { return edu[i].SortOrder < edu[j].SortOrder })
	if len(edu) > 0 {
		b.WriteString("\n\\section{Education}\n")
		for _, e := range edu {
			b.WriteString("\\noindent\\textbf{" + EscapeLaTeX(e.Institution) + "}")
			if e.Location != "" {
				b.WriteString(" \\hfill " + EscapeLaTeX(e.Location))
			}
			b.WriteString("\\\\\n")
			degree := e.Degree
			if e.Field != "" {
				if degree != "" {
					degree += ", "
				}
				degree += e.Field
			}
			b.WriteString("\\textit{" + EscapeLaTeX(degree) + "}")
			if span := dateRange(e.StartDate, e.EndDate); span != "" {
				b.WriteString(" \\hfill " + span)
			}
			b.WriteString("\n")
			writeBlock(&b, e.DetailsLatex)
		}
	}

	b.WriteString("\n\\end{document}\n")
	return b.String()
}

func dateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return EscapeLaTeX(start) + " -- Present"
	case start == "":
		return EscapeLaTeX(end)
	}
	return EscapeLaTeX(start) + " -- " + EscapeLaTeX(end)
}

func writeBlock(b *strings.Builder, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		b.WriteString("\n")
		return
	}
	b.WriteString(raw)
	b.WriteString("\n\n")
}
