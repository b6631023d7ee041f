package wizard

import "sort"

const (
	KindPostMissing   = "pet-post-missing"
	KindPostEmergency = "pet-post-emergency"
	KindPostWounded   = "pet-post-wounded"
	KindAdoption      = "adoption"
	KindFoster        = "foster"
	KindAlert         = "alert"
)

var locationStep = Step{
	Name:     "location",
	Title:    "Where",
	Fields:   []string{"address", "city", "state", "latitude", "longitude"},
	Required: []string{"address"},
}

func petPostDefinition(kind, detailField string) Definition {
	details := Step{
		Name:     "details",
		Title:    "What happened",
		Fields:   []string{"description", "contactPhone", "lastSeenDate", "injuryDescription", "images"},
		Required: []string{"description"},
	}
	if detailField != "" {
		details.Required = append(details.Required, detailField)
	}
	return Definition{
		Kind: kind,
		Steps: []Step{
			{
				Name:     "pet",
				Title:    "About the pet",
				Fields:   []string{"petName", "petType", "petBreed", "petColor", "petAge", "petGender", "petSize"},
				Required: []string{"petType"},
			},
			details,
			locationStep,
		},
	}
}

var definitions = map[string]Definition{
	KindPostMissing:   petPostDefinition(KindPostMissing, "lastSeenDate"),
	KindPostEmergency: petPostDefinition(KindPostEmergency, "contactPhone"),
	KindPostWounded:   petPostDefinition(KindPostWounded, "injuryDescription"),
	KindAdoption: {
		Kind: KindAdoption,
		Steps: []Step{
			{
				Name:     "basic",
				Title:    "Basic information",
				Fields:   []string{"petName", "petType", "petBreed", "petAge", "petGender", "petSize", "petColor"},
				Required: []string{"petName", "petType"},
			},
			{
				Name:     "details",
				Title:    "Health and behaviour",
				Fields:   []string{"description", "healthNotes", "isVaccinated", "isNeutered", "isHouseTrained", "goodWithKids", "goodWithPets", "images"},
				Required: []string{"description"},
			},
			{
				Name:     "requirements",
				Title:    "Adoption terms",
				Fields:   []string{"adoptionFee", "requirements", "contactPhone", "contactEmail", "address", "city", "state"},
				Required: []string{"city", "state"},
			},
		},
	},
	KindFoster: {
		Kind: KindFoster,
		Steps: []Step{
			{
				Name:     "basic",
				Title:    "Basic information",
				Fields:   []string{"petName", "petType", "petBreed", "petAge", "petGender", "petSize"},
				Required: []string{"petName", "petType"},
			},
			{
				Name:     "care",
				Title:    "Care needed",
				Fields:   []string{"description", "specialNeeds", "duration", "startDate", "endDate", "isVaccinated", "goodWithKids", "goodWithPets"},
				Required: []string{"description", "duration", "startDate"},
			},
			{
				Name:     "contact",
				Title:    "Location and contact",
				Fields:   []string{"address", "city", "state", "contactPhone", "contactEmail", "requirements"},
				Required: []string{"city", "state"},
			},
		},
	},
	KindAlert: {
		Kind: KindAlert,
		Steps: []Step{
			{
				Name:     "alert",
				Title:    "Alert",
				Fields:   []string{"type", "title", "description", "urgency", "targetAudience"},
				Required: []string{"title", "description"},
			},
			{
				Name:     "area",
				Title:    "Affected area",
				Fields:   []string{"address", "city", "state", "latitude", "longitude", "radius"},
				Required: []string{"address", "city", "state"},
			},
			{
				Name:   "pet",
				Title:  "Pet details",
				Fields: []string{"petName", "petType", "petBreed", "petColor", "contactPhone", "contactEmail", "expiresAt"},
			},
		},
	},
}

// Lookup returns the definition registered for kind.
func Lookup(kind string) (Definition, error) {
	def, ok := definitions[kind]
	if !ok {
		return Definition{}, ErrUnknownForm
	}
	return def, nil
}

// PostKind maps a pet post type to its form kind.
func PostKind(postType string) string {
	return "pet-post-" + postType
}

func Kinds() []string {
	kinds := make([]string, 0, len(definitions))
	for k := range definitions {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
