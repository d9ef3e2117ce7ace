package model

import "time"

type Crewmate struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Speed          Speed     `json:"speed"`
	Color          string    `json:"color"`
	SpecialAbility string    `json:"special_ability"`
	CreatedAt      time.Time `json:"created_at"`
}

// CrewmateForm is the create/edit form as the client submits it. Speed holds
// the option value ("slow", "fast", ...), not the stored number.
type CrewmateForm struct {
	Name           string `json:"name"`
	Speed          string `json:"speed"`
	Color          string `json:"color"`
	SpecialAbility string `json:"special_ability"`
}

// FormFromCrewmate pre-populates an edit form from a stored record.
func FormFromCrewmate(c *Crewmate) *CrewmateForm {
	return &CrewmateForm{
		Name:           c.Name,
		Speed:          c.Speed.OptionValue(),
		Color:          c.Color,
		SpecialAbility: c.SpecialAbility,
	}
}

const day = 24 * time.Hour

// DaysActive is floor((now - createdAt) / one day).
func DaysActive(createdAt, now time.Time) int {
	d := now.Sub(createdAt)
	days := d / day
	if d < 0 && d%day != 0 {
		days--
	}
	return int(days)
}
