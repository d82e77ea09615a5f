package entity

import (
	"slices"
	"time"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash and never leaves the service layer.
// Matches is ordered by match time and never contains the user's own ID.
type User struct {
	ID           string
	Name         string
	Email        string
	Password     string
	Major        string
	IGUser       string
	IGProfileURL string
	Avatar       Avatar
	Matches      []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) HasMatch(id string) bool {
	return slices.Contains(u.Matches, id)
}

// Avatar is the flat descriptor the client renders; no image is stored.
type Avatar struct {
	BodyColor       string `json:"bodyColor"`
	HairStyle       string `json:"hairStyle"`
	HairColor       string `json:"hairColor"`
	EyeStyle        string `json:"eyeStyle"`
	MouthStyle      string `json:"mouthStyle"`
	BackgroundColor string `json:"backgroundColor"`
}

func DefaultAvatar() Avatar {
	return Avatar{
		BodyColor:       "#ffd7ba",
		HairStyle:       "hair1",
		HairColor:       "#2c1b18",
		EyeStyle:        "eyes1",
		MouthStyle:      "mouth1",
		BackgroundColor: "#e0f2fe",
	}
}

// WithDefaults fills empty fields from DefaultAvatar.
func (a Avatar) WithDefaults() Avatar {
	d := DefaultAvatar()
	if a.BodyColor == "" {
		a.BodyColor = d.BodyColor
	}
	if a.HairStyle == "" {
		a.HairStyle = d.HairStyle
	}
	if a.HairColor == "" {
		a.HairColor = d.HairColor
	}
	if a.EyeStyle == "" {
		a.EyeStyle = d.EyeStyle
	}
	if a.MouthStyle == "" {
		a.MouthStyle = d.MouthStyle
	}
	if a.BackgroundColor == "" {
		a.BackgroundColor = d.BackgroundColor
	}
	return a
}
