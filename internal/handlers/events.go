package handlers

import (
	"net/http"

	"github.com/planovahq/planova-api/internal/models"
	pkghttp "github.com/planovahq/planova-api/pkg/http"
)

// showcaseEvents is the static gallery served on the events page.
var showcaseEvents = []models.Event{
	{
		ID:          1,
		Title:       "Elegant Garden Wedding",
		Description: "A romantic outdoor ceremony with floral arches, fairy lights and a live string quartet.",
		Category:    "wedding",
		Image:       "/images/events/garden-wedding.jpg",
	},
	{
		ID:          2,
		Title:       "Corporate Annual Gala",
		Description: "A black-tie evening for 300 guests with stage production, catering and branded decor.",
		Category:    "corporate",
		Image:       "/images/events/corporate-gala.jpg",
	},
	{
		ID:          3,
		Title:       "Vintage Birthday Soiree",
		Description: "A themed birthday celebration with retro styling, custom backdrops and a dessert bar.",
		Category:    "birthday",
		Image:       "/images/events/vintage-birthday.jpg",
	},
	{
		ID:          4,
		Title:       "Traditional Engagement Ceremony",
		Description: "An intimate engagement with traditional decor, mandap styling and full catering.",
		Category:    "engagement",
		Image:       "/images/events/engagement.jpg",
	},
	{
		ID:          5,
		Title:       "Launch Party Rooftop Event",
		Description: "A product launch on a rooftop venue with LED walls, DJ and signature cocktails.",
		Category:    "corporate",
		Image:       "/images/events/launch-party.jpg",
	},
	{
		ID:          6,
		Title:       "Winter Wonderland Wedding",
		Description: "An indoor winter-themed wedding with white florals, crystal centerpieces and snow effects.",
		Category:    "wedding",
		Image:       "/images/events/winter-wedding.jpg",
	},
}

// EventsHandler serves the static event showcase
type EventsHandler struct{}

func NewEventsHandler() *EventsHandler {
	return &EventsHandler{}
}

// ListEvents returns the showcase gallery
func (h *EventsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, showcaseEvents)
}
