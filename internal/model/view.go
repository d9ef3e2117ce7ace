package model

import "time"

const (
	summaryDateLayout = "1/2/2006"
	detailDateLayout  = "Monday, January 2, 2006"

	emptyGalleryMessage = "No crewmates yet"
)

type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type HomeView struct {
	Title string  `json:"title"`
	Links []*Link `json:"links"`
}

func NewHomeView() *HomeView {
	return &HomeView{
		Title: "Crewmate Creator",
		Links: []*Link{
			{Rel: "home", Href: HomePath},
			{Rel: "create", Href: CreatePath},
			{Rel: "gallery", Href: GalleryPath},
		},
	}
}

type CrewmateSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SpeedLabel     string `json:"speed_label"`
	Color          string `json:"color"`
	ColorEmoji     string `json:"color_emoji"`
	SpecialAbility string `json:"special_ability"`
	CreatedOn      string `json:"created_on"`
	DetailURL      string `json:"detail_url"`
	EditURL        string `json:"edit_url"`
}

func NewCrewmateSummary(c *Crewmate) *CrewmateSummary {
	return &CrewmateSummary{
		ID:             c.ID,
		Name:           c.Name,
		SpeedLabel:     c.Speed.Label(),
		Color:          c.Color,
		ColorEmoji:     Color(c.Color).Emoji(),
		SpecialAbility: c.SpecialAbility,
		CreatedOn:      c.CreatedAt.Format(summaryDateLayout),
		DetailURL:      DetailPath(c.ID),
		EditURL:        EditPath(c.ID),
	}
}

type GalleryView struct {
	State     ViewState          `json:"state"`
	Count     int                `json:"count"`
	Crewmates []*CrewmateSummary `json:"crewmates"`
	Message   string             `json:"message,omitempty"`
	CreateURL string             `json:"create_url"`
}

// NewGalleryView renders an already-ordered list. An empty list is the
// "empty" state, not an error.
func NewGalleryView(crewmates []*Crewmate) *GalleryView {
	v := &GalleryView{
		State:     StateLoaded,
		Count:     len(crewmates),
		Crewmates: make([]*CrewmateSummary, 0, len(crewmates)),
		CreateURL: CreatePath,
	}
	if len(crewmates) == 0 {
		v.State = StateEmpty
		v.Message = emptyGalleryMessage
	}
	for _, c := range crewmates {
		v.Crewmates = append(v.Crewmates, NewCrewmateSummary(c))
	}
	return v
}

type DetailView struct {
	State              ViewState `json:"state"`
	Crewmate           *Crewmate `json:"crewmate,omitempty"`
	SpeedLabel         string    `json:"speed_label,omitempty"`
	SpeedDescription   string    `json:"speed_description,omitempty"`
	ColorEmoji         string    `json:"color_emoji,omitempty"`
	ColorDescription   string    `json:"color_description,omitempty"`
	AbilityDescription string    `json:"ability_description,omitempty"`
	DaysActive         int       `json:"days_active"`
	CreatedOn          string    `json:"created_on,omitempty"`
	EditURL            string    `json:"edit_url,omitempty"`
	GalleryURL         string    `json:"gallery_url"`
}

// NewDetailView derives the presentation-only values for c as of now.
func NewDetailView(c *Crewmate, now time.Time) *DetailView {
	return &DetailView{
		State:              StateLoaded,
		Crewmate:           c,
		SpeedLabel:         c.Speed.Label(),
		SpeedDescription:   c.Speed.Description(),
		ColorEmoji:         Color(c.Color).Emoji(),
		ColorDescription:   Color(c.Color).Description(),
		AbilityDescription: Ability(c.SpecialAbility).Description(),
		DaysActive:         DaysActive(c.CreatedAt, now),
		CreatedOn:          c.CreatedAt.Format(detailDateLayout),
		EditURL:            EditPath(c.ID),
		GalleryURL:         GalleryPath,
	}
}

func NewNotFoundDetailView() *DetailView {
	return &DetailView{State: StateNotFound, GalleryURL: GalleryPath}
}

type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

type FormView struct {
	Mode     FormMode      `json:"mode"`
	State    ViewState     `json:"state"`
	ID       string        `json:"id,omitempty"`
	Form     *CrewmateForm `json:"form,omitempty"`
	Crewmate *Crewmate     `json:"crewmate,omitempty"`
	Redirect string        `json:"redirect,omitempty"`
	Options  *Options      `json:"options,omitempty"`
}
