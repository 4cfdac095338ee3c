package main

var (
	ShowcaseTitle = `Portfolio Showcase`

	ShowcaseIntro = `Explore my journey through projects, professional experiences, and
	technical expertise.`

	EmptyProjects = `No projects to show yet.`

	EmptyExperiences = `No experience entries to show yet.`
)
