package portfolio

// MobileBreakpoint is the viewport width below which a visitor counts as mobile.
const MobileBreakpoint = 768

const (
	TabProjects = iota
	TabExperience
	TabTechStack
)

// List names one of the two expandable lists.
type List int

const (
	ProjectsList List = iota
	ExperiencesList
)

// InitialItems is how many entries a collapsed list shows for a viewport width.
func InitialItems(width int) int {
	if width < MobileBreakpoint {
		return 4
	}
	return 6
}

// View is one visitor's tab and show-more state. The width is sampled once
// when the view is created; later resizes are not tracked.
type View struct {
	Tab                 int
	ProjectsExpanded    bool
	ExperiencesExpanded bool

	initialItems int
}

func NewView(width int) *View {
	return &View{initialItems: InitialItems(width)}
}

func (v *View) InitialItems() int { return v.initialItems }

// SelectTab switches the visible panel. Unknown indices fall back to projects.
func (v *View) SelectTab(i int) {
	if i < TabProjects || i > TabTechStack {
		i = TabProjects
	}
	v.Tab = i
}

// Toggle flips the expanded flag of one list only.
func (v *View) Toggle(l List) {
	switch l {
	case ProjectsList:
		v.ProjectsExpanded = !v.ProjectsExpanded
	case ExperiencesList:
		v.ExperiencesExpanded = !v.ExperiencesExpanded
	}
}

// Visible is the number of entries to show from a list of n.
func (v *View) Visible(n int, expanded bool) int {
	if expanded || n < v.initialItems {
		return n
	}
	return v.initialItems
}

// ShowToggle reports whether a list of n needs the show-more control.
func (v *View) ShowToggle(n int) bool {
	return n > v.initialItems
}

func (v *View) VisibleProjects(all []Project) []Project {
	return all[:v.Visible(len(all), v.ProjectsExpanded)]
}

func (v *View) VisibleExperiences(all []Experience) []Experience {
	return all[:v.Visible(len(all), v.ExperiencesExpanded)]
}
