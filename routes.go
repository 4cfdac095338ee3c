package main

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/showcase/internal/cache"
	"github.com/Zachkp/showcase/internal/portfolio"
	"github.com/Zachkp/showcase/internal/presence"
)

// desktopWidth is assumed when the visitor's viewport width is unknown.
const desktopWidth = 1280

type app struct {
	cfg      Config
	loader   *portfolio.Loader
	poller   *presence.Poller
	store    *cache.SQLite
	visitors *visitorLog
}

type tabLink struct {
	Index  int
	Label  string
	URL    string
	Active bool
}

type portfolioData struct {
	View                  *portfolio.View
	Width                 int
	Tabs                  []tabLink
	Projects              []portfolio.Project
	Experiences           []portfolio.Experience
	TechStacks            []portfolio.TechStack
	ShowProjectsToggle    bool
	ShowExperiencesToggle bool
	ProjectsToggleURL     string
	ExperiencesToggleURL  string
	EmptyProjects         string
	EmptyExperiences      string
}

type presenceCard struct {
	presence.Activity
	Badge     string
	Palette   presence.Palette
	Thumb     string
	ThumbIcon string
	Glyph     template.HTML
	Marker    template.HTML
}

var tabLabels = [...]string{"Projects", "Experience", "Tech Stack"}

// viewportWidth reads the width from the vw query param or client hints.
func viewportWidth(c *gin.Context) int {
	for _, v := range []string{c.Query("vw"), c.GetHeader("Sec-CH-Viewport-Width"), c.GetHeader("Viewport-Width")} {
		if w, err := strconv.Atoi(v); err == nil && w > 0 {
			return w
		}
	}
	return desktopWidth
}

func viewFromRequest(c *gin.Context) (*portfolio.View, int) {
	width := viewportWidth(c)
	v := portfolio.NewView(width)
	tab, _ := strconv.Atoi(c.Query("tab"))
	v.SelectTab(tab)
	v.ProjectsExpanded = c.Query("projects") == "all"
	v.ExperiencesExpanded = c.Query("experiences") == "all"
	return v, width
}

func portfolioURL(tab int, projectsExpanded, experiencesExpanded bool, width int) string {
	q := url.Values{}
	q.Set("tab", strconv.Itoa(tab))
	if projectsExpanded {
		q.Set("projects", "all")
	}
	if experiencesExpanded {
		q.Set("experiences", "all")
	}
	q.Set("vw", strconv.Itoa(width))
	return "/portfolio?" + q.Encode()
}

func (a *app) portfolioData(v *portfolio.View, width int) portfolioData {
	projects, experiences := a.loader.Snapshot()

	tabs := make([]tabLink, len(tabLabels))
	for i, label := range tabLabels {
		tabs[i] = tabLink{
			Index:  i,
			Label:  label,
			URL:    portfolioURL(i, v.ProjectsExpanded, v.ExperiencesExpanded, width),
			Active: v.Tab == i,
		}
	}

	return portfolioData{
		View:                  v,
		Width:                 width,
		Tabs:                  tabs,
		Projects:              v.VisibleProjects(projects),
		Experiences:           v.VisibleExperiences(experiences),
		TechStacks:            portfolio.TechStacks,
		ShowProjectsToggle:    v.ShowToggle(len(projects)),
		ShowExperiencesToggle: v.ShowToggle(len(experiences)),
		ProjectsToggleURL:     portfolioURL(v.Tab, !v.ProjectsExpanded, v.ExperiencesExpanded, width),
		ExperiencesToggleURL:  portfolioURL(v.Tab, v.ProjectsExpanded, !v.ExperiencesExpanded, width),
		EmptyProjects:         EmptyProjects,
		EmptyExperiences:      EmptyExperiences,
	}
}

func presenceCards(activities []presence.Activity) []presenceCard {
	cards := make([]presenceCard, 0, len(activities))
	for _, act := range activities {
		card := presenceCard{
			Activity: act,
			Badge:    act.Label(),
			Palette:  act.Colors(),
		}
		switch kind, src := act.Visual(); kind {
		case presence.VisualImage:
			card.Thumb = src
		case presence.VisualIconImage:
			card.ThumbIcon = src
		default:
			card.Glyph = template.HTML(src)
		}
		if act.IsSpotify() {
			card.Marker = template.HTML(presence.Glyph(presence.IconSpotify))
		}
		cards = append(cards, card)
	}
	return cards
}

func (a *app) setupRoutes(r *gin.Engine) {
	r.Static("/static", "./static")

	r.GET("/", func(c *gin.Context) {
		v, width := viewFromRequest(c)
		c.Header("Accept-CH", "Sec-CH-Viewport-Width")
		c.HTML(http.StatusOK, "index.html", gin.H{
			"title":          ShowcaseTitle,
			"intro":          ShowcaseIntro,
			"portfolio":      a.portfolioData(v, width),
			"cards":          presenceCards(a.poller.Activities()),
			"pollIntervalMs": a.cfg.PresenceInterval.Milliseconds(),
		})
	})

	// HTMX partial: tabs and panels
	r.GET("/portfolio", func(c *gin.Context) {
		v, width := viewFromRequest(c)
		c.HTML(http.StatusOK, "portfolio.html", a.portfolioData(v, width))
	})

	// HTMX partial: presence cards, empty when nothing is active
	r.GET("/presence", func(c *gin.Context) {
		c.HTML(http.StatusOK, "presence.html", presenceCards(a.poller.Activities()))
	})

	r.GET("/api/portfolio", func(c *gin.Context) {
		projects, experiences := a.loader.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"projects":    projects,
			"experiences": experiences,
			"tech_stack":  portfolio.TechStacks,
		})
	})

	r.GET("/api/presence", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"activities": a.poller.Activities()})
	})

	a.setupStatusRoutes(r)
}
