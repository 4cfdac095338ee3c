package portfolio

import "strings"

// Project is a portfolio card. The loader passes it through untouched.
type Project struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Img         string   `json:"img,omitempty"`
	Link        string   `json:"link,omitempty"`
	Github      string   `json:"github,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ExperienceType is the engagement kind shown as a badge.
type ExperienceType string

const (
	Internship   ExperienceType = "Internship"
	PartTime     ExperienceType = "Part-time"
	Organization ExperienceType = "Organization"
	FullTime     ExperienceType = "Full-time"
)

// BadgeClass returns the badge styling for t, matched case-insensitively.
func (t ExperienceType) BadgeClass() string {
	switch strings.ToLower(string(t)) {
	case "internship":
		return "bg-blue-500/10 text-blue-400 border-blue-500/20"
	case "part-time":
		return "bg-amber-500/10 text-amber-400 border-amber-500/20"
	case "organization":
		return "bg-emerald-500/10 text-emerald-400 border-emerald-500/20"
	case "full-time":
		return "bg-purple-500/10 text-purple-400 border-purple-500/20"
	default:
		return "bg-slate-500/10 text-slate-400 border-slate-500/20"
	}
}

type Experience struct {
	ID            int64          `json:"id"`
	Role          string         `json:"role"`
	Company       string         `json:"company"`
	Type          ExperienceType `json:"type"`
	Period        string         `json:"period"`
	Description   string         `json:"description"`
	Documentation []string       `json:"documentation,omitempty"`
}

// Bullets splits the description into one point per line.
func (e Experience) Bullets() []string {
	if e.Description == "" {
		return nil
	}
	return strings.Split(e.Description, "\n")
}

// TechStack is one icon in the tech stack grid.
type TechStack struct {
	Icon     string `json:"icon"`
	Language string `json:"language"`
}

// Monogram is the short text badge shown in place of the icon.
func (t TechStack) Monogram() string {
	words := strings.FieldsFunc(t.Language, func(r rune) bool {
		return r == ' ' || r == '.' || r == '-'
	})
	switch len(words) {
	case 0:
		return "?"
	case 1:
		r := []rune(strings.ToUpper(words[0]))
		if len(r) > 2 {
			r = r[:2]
		}
		return string(r)
	default:
		return strings.ToUpper(string([]rune(words[0])[:1]) + string([]rune(words[1])[:1]))
	}
}

var TechStacks = []TechStack{
	{Icon: "html.svg", Language: "HTML"},
	{Icon: "css.svg", Language: "CSS"},
	{Icon: "javascript.svg", Language: "JavaScript"},
	{Icon: "tailwind.svg", Language: "Tailwind CSS"},
	{Icon: "reactjs.svg", Language: "ReactJS"},
	{Icon: "vue.svg", Language: "VueJs"},
	{Icon: "nodejs.svg", Language: "Node JS"},
	{Icon: "supabase.svg", Language: "Supabase"},
	{Icon: "streamlit.svg", Language: "Streamlit"},
	{Icon: "vercel.svg", Language: "Vercel"},
	{Icon: "python.svg", Language: "Python"},
	{Icon: "c.svg", Language: "C"},
	{Icon: "csharp.svg", Language: "C Sharp"},
	{Icon: "aspnet.svg", Language: "ASP.NET"},
	{Icon: "golang.svg", Language: "Golang"},
	{Icon: "postgresql.svg", Language: "PostgreSQL"},
	{Icon: "drawio.svg", Language: "Draw.io"},
	{Icon: "git.svg", Language: "Git"},
	{Icon: "excel.svg", Language: "Excel"},
	{Icon: "word.svg", Language: "Word"},
}
