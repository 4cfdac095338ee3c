// Package presence polls the local presence service and turns its reported
// activities into display cards.
package presence

import "fmt"

// MaxActivities is how many reported activities are kept per poll.
const MaxActivities = 2

// Kind is the closed set of activity types with dedicated styling.
type Kind string

const (
	KindSpotify Kind = "spotify"
	KindCoding  Kind = "coding"
	KindGaming  Kind = "gaming"
)

// Icon names a built-in glyph.
type Icon string

const (
	IconSpotify Icon = "spotify"
	IconVSCode  Icon = "vscode"
	IconGaming  Icon = "gaming"
)

// RawActivity is one entry of the presence service response. Which fields are
// set depends on Type.
type RawActivity struct {
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Artist    string `json:"artist,omitempty"`
	Image     string `json:"image,omitempty"`
	Details   string `json:"details,omitempty"`
	State     string `json:"state,omitempty"`
	App       string `json:"app,omitempty"`
	Name      string `json:"name,omitempty"`
	IconImage string `json:"iconImage,omitempty"`
}

// Response is the presence service payload.
type Response struct {
	Activities []RawActivity `json:"activities"`
}

// Activity is a normalized display record.
type Activity struct {
	Key       string `json:"key"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Image     string `json:"image,omitempty"`
	Icon      Icon   `json:"icon"`
	IconImage string `json:"iconImage,omitempty"`
}

// Normalize maps one raw activity at position idx to its display record.
func Normalize(a RawActivity, idx int) Activity {
	switch Kind(a.Type) {
	case KindSpotify:
		return Activity{
			Key:       fmt.Sprintf("spotify-%d", idx),
			Type:      string(KindSpotify),
			Title:     a.Title,
			Subtitle:  a.Artist,
			Image:     a.Image,
			Icon:      IconSpotify,
			IconImage: a.IconImage,
		}
	case KindCoding:
		return Activity{
			Key:       fmt.Sprintf("coding-%d", idx),
			Type:      string(KindCoding),
			Title:     or(a.Details, "Coding"),
			Subtitle:  or(a.State, a.App),
			Icon:      IconVSCode,
			IconImage: a.IconImage,
		}
	default:
		return Activity{
			Key:       fmt.Sprintf("activity-%d", idx),
			Type:      or(a.Type, "unknown"),
			Title:     or(a.Name, "Playing a Game"),
			Subtitle:  or(a.State, a.Type),
			Icon:      IconGaming,
			IconImage: a.IconImage,
		}
	}
}

// NormalizeAll normalizes at most the first MaxActivities entries.
func NormalizeAll(raws []RawActivity) []Activity {
	if len(raws) > MaxActivities {
		raws = raws[:MaxActivities]
	}
	out := make([]Activity, 0, len(raws))
	for i, a := range raws {
		out = append(out, Normalize(a, i))
	}
	return out
}

func or(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
